package usecase

import (
	"context"

	"BidSnapper/internal/domain/models"
	drepo "BidSnapper/internal/domain/repository"
	mid "BidSnapper/internal/middleware"
)

// DealCollector collects boards from the detection stream and processes them.
type DealCollector struct {
	stream  drepo.DealStream
	proc    *DealProcessor
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

// NewDealCollector creates a new DealCollector instance.
func NewDealCollector(stream drepo.DealStream, proc *DealProcessor, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *DealCollector {
	return &DealCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the detection stream is connected.
func (c *DealCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *DealCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	bCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, bCh, errCh)
	return nil
}

func (c *DealCollector) consume(ctx context.Context, bCh <-chan *models.Board, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case b := <-bCh:
			if b == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, b)
			} else {
				_ = c.proc.Process(ctx, b)
			}
		}
	}
}

func (c *DealCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying DealProcessor for lifecycle management.
func (c *DealCollector) Processor() *DealProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *DealCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
