package classifier

import (
	"context"
	"fmt"
	"time"

	"BidSnapper/pkg/config"
	xhttp "BidSnapper/pkg/http"
)

// httpBase centralizes client construction and JSON POST handling for the
// model-serving sidecar.
type httpBase struct {
	baseURL string
	client  *xhttp.Client
}

func newHTTPBase(cfg *config.Config) *httpBase {
	timeout := cfg.Classifier.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &httpBase{
		baseURL: cfg.Classifier.ServiceURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// postJSON posts the payload to `path` under baseURL and decodes JSON into dest.
func (b *httpBase) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("classifier http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// postJSONWithRetry retries transient failures with linear backoff.
func (b *httpBase) postJSONWithRetry(ctx context.Context, path string, payload interface{}, dest interface{}, attempts int) error {
	if attempts <= 1 {
		return b.postJSON(ctx, path, payload, dest)
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.postJSON(ctx, path, payload, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
