package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultWebhookTimeout bounds a single webhook delivery.
const DefaultWebhookTimeout = 10 * time.Second

// Submitter delivers a validated submission.
//
// Implementations must be safe for concurrent use.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// LogSubmitter records submissions in the log and delivers nothing.
type LogSubmitter struct {
	Logger *slog.Logger
}

// Submit logs the submission.
func (l LogSubmitter) Submit(_ context.Context, s Submission) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("contact form submitted",
		"id", s.ID,
		"contact_type", string(s.Type),
		"email", s.Email,
		"organization", s.Organization,
		"subject", s.Subject,
		"message_len", len(s.Message),
	)
	return nil
}

// WebhookSubmitter posts each submission as JSON to a URL.
//
// Any non-2xx response is a failure. There are no retries; the visitor sees
// the error and can resend.
type WebhookSubmitter struct {
	url     string
	headers map[string]string
	client  *http.Client
}

// NewWebhookSubmitter creates a submitter for url. A timeout of zero means
// [DefaultWebhookTimeout].
func NewWebhookSubmitter(url string, headers map[string]string, timeout time.Duration) (*WebhookSubmitter, error) {
	if url == "" {
		return nil, errors.New("webhook url is required")
	}
	if timeout < 0 {
		return nil, fmt.Errorf("webhook timeout must be positive, got %s", timeout)
	}
	if timeout == 0 {
		timeout = DefaultWebhookTimeout
	}
	return &WebhookSubmitter{
		url:     url,
		headers: headers,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Submit posts s and reports a failure for transport errors and non-2xx
// statuses.
func (w *WebhookSubmitter) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", s.ID)
	for k, v := range w.headers {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver submission: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("deliver submission: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
