package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"BidSnapper/internal/domain/models"
	drepo "BidSnapper/internal/domain/repository"

	"github.com/gorilla/websocket"
)

// Client implements a DealStream backed by the detection service WebSocket.
type Client struct {
	apiKey         string
	websocketURL   string
	tables         []string
	reconnectDelay time.Duration
	pingInterval   time.Duration

	conn      *websocket.Conn
	connected bool
}

// New creates a new detection-feed DealStream.
func New(apiKey, websocketURL string, tables []string, reconnectDelay, pingInterval time.Duration) drepo.DealStream {
	return &Client{
		apiKey:         apiKey,
		websocketURL:   websocketURL,
		tables:         tables,
		reconnectDelay: reconnectDelay,
		pingInterval:   pingInterval,
	}
}

// Connect establishes the WebSocket connection.
func (c *Client) Connect(ctx context.Context) error {
	u := fmt.Sprintf("%s?token=%s", c.websocketURL, c.apiKey)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("detect connect: %w", err)
	}
	c.conn = conn
	c.connected = true
	log.Printf("detect: connected")
	return nil
}

// Subscribe subscribes to configured tables.
func (c *Client) Subscribe(ctx context.Context) error {
	if c.conn == nil || !c.connected {
		return fmt.Errorf("detect not connected")
	}
	for _, t := range c.tables {
		msg := map[string]string{"type": "subscribe", "table": t}
		if err := c.conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
		log.Printf("detect: subscribed %s", t)
	}
	return nil
}

type dtBoard struct {
	ID       string   `json:"id"`
	Table    string   `json:"table"`
	Hand1    []string `json:"hand1"`
	Hand2    []string `json:"hand2"`
	Contract string   `json:"contract"`
	T        int64    `json:"t"` // ms
}

type dtMessage struct {
	Type string    `json:"type"`
	Data []dtBoard `json:"data"`
}

// normalizeCards drops malformed and duplicate detections and orders the rest
// by suit (SHDC) then rank, matching the layout downstream parsers expect.
func normalizeCards(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	cards := make([]models.Card, 0, len(tokens))
	for _, t := range tokens {
		c, err := models.ParseCard(t)
		if err != nil || seen[c.String()] {
			continue
		}
		seen[c.String()] = true
		cards = append(cards, c)
	}
	models.SortSHDC(cards)
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Read streams Board events and errors.
func (c *Client) Read(ctx context.Context) (<-chan *models.Board, <-chan error) {
	boards := make(chan *models.Board, 1024)
	errs := make(chan error, 1)

	// ping loop
	go func() {
		ticker := time.NewTicker(c.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.conn != nil {
					_ = c.conn.WriteMessage(websocket.PingMessage, nil)
				}
			}
		}
	}()

	// read loop
	go func() {
		defer close(boards)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if c.conn == nil {
					errs <- fmt.Errorf("detect conn nil")
					return
				}
				_, b, err := c.conn.ReadMessage()
				if err != nil {
					errs <- fmt.Errorf("detect read: %w", err)
					return
				}
				var m dtMessage
				if err := json.Unmarshal(b, &m); err != nil {
					// ignore non-deal frames
					continue
				}
				if m.Type != "deal" {
					continue
				}
				for _, d := range m.Data {
					board := &models.Board{
						ID:         d.ID,
						Table:      d.Table,
						Hand1:      normalizeCards(d.Hand1),
						Hand2:      normalizeCards(d.Hand2),
						Contract:   d.Contract,
						DetectedAt: d.T / 1000,
					}
					select {
					case boards <- board:
					default:
						// drop on backpressure
					}
				}
			}
		}
	}()

	return boards, errs
}

// Reconnect closes and reconnects.
func (c *Client) Reconnect(ctx context.Context) error {
	_ = c.Close()
	time.Sleep(c.reconnectDelay)
	if err := c.Connect(ctx); err != nil {
		return err
	}
	return c.Subscribe(ctx)
}

// Close closes the WS connection.
func (c *Client) Close() error {
	c.connected = false
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected indicates status.
func (c *Client) IsConnected() bool { return c.connected }
