package notifiers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/daniacca/rdmc/internal/rxn"
)

// CompileIDHeader carries the compile ID of every webhook delivery.
const CompileIDHeader = "X-Rdmc-Compile-Id"

// WebhookNotifier posts probability notices to a webhook URL
type WebhookNotifier struct {
	id           string
	url          string
	client       *http.Client
	headers      map[string]string
	warningsOnly bool
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(id, url string) *WebhookNotifier {
	return &WebhookNotifier{
		id:      id,
		url:     url,
		client:  &http.Client{Timeout: 5 * time.Second},
		headers: make(map[string]string),
	}
}

// SetHeader sets a custom header to include in webhook requests
func (wn *WebhookNotifier) SetHeader(key, value string) {
	if wn.headers == nil {
		wn.headers = make(map[string]string)
	}
	wn.headers[key] = value
}

// SetWarningsOnly drops plain notices and delivers only warnings.
func (wn *WebhookNotifier) SetWarningsOnly(v bool) {
	wn.warningsOnly = v
}

func (wn *WebhookNotifier) ID() string   { return wn.id }
func (wn *WebhookNotifier) Type() string { return "webhook" }

// URL returns the target URL.
func (wn *WebhookNotifier) URL() string { return wn.url }

// Notify posts the event as JSON.
func (wn *WebhookNotifier) Notify(ctx context.Context, event rxn.NotificationEvent) error {
	if wn.warningsOnly && event.Level != "warning" {
		return nil
	}

	jsonData, err := event.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wn.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if event.CompileID != "" {
		req.Header.Set(CompileIDHeader, event.CompileID)
	}
	for key, value := range wn.headers {
		req.Header.Set(key, value)
	}

	resp, err := wn.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Close is a no-op for webhooks.
func (wn *WebhookNotifier) Close() error {
	return nil
}
