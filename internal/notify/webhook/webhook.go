// Package webhook delivers fired alert events to an HTTP endpoint as JSON.
// The receiving side is typically the companion app's push relay.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/harken/internal/sound"
)

const httpTimeout = 10 * time.Second

// Notifier posts alert events to a webhook URL.
type Notifier struct {
	url    string
	client *http.Client
}

// New creates a webhook notifier. If url is empty, Notify is a no-op.
func New(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: httpTimeout},
	}
}

// payload is the wire shape of one notification.
type payload struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Tier       string    `json:"tier"`
	Confidence float64   `json:"confidence"`
	At         float64   `json:"at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notify posts one fired event to the configured webhook.
// If no URL is configured, it returns nil immediately.
func (n *Notifier) Notify(ctx context.Context, ev *sound.Event) error {
	if n.url == "" {
		return nil
	}

	body, err := json.Marshal(payload{
		ID:         ev.ID,
		Category:   ev.Category,
		Tier:       ev.Tier.String(),
		Confidence: ev.Confidence,
		At:         ev.At,
		CreatedAt:  ev.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("webhook: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req) //nolint:gosec // G704: url is from trusted config, not user input
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook: returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
