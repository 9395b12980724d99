// Package notify
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"diskmon/internal/domain"
	"diskmon/internal/logger"
)

// Webhook posts raised alerts to a configured URL. Delivery is
// best-effort: the caller logs failures and goes on with the cycle.
type Webhook struct {
	url    string
	client *http.Client
	log    logger.Logger
}

func NewWebhook(url string, log logger.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type webhookPayload struct {
	Alerts []domain.Alert `json:"alerts"`
}

func (wh *Webhook) Deliver(ctx context.Context, alerts []domain.Alert) error {
	body, err := json.Marshal(webhookPayload{Alerts: alerts})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}

	wh.log.Debug("webhook delivered", "alerts", len(alerts))

	return nil
}
