package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/submit"
)

// SubmissionIDHeader carries a fresh id per delivery.
const SubmissionIDHeader = "X-Submission-ID"

const maxResponseBytes = 64 * 1024

// Client posts payloads as JSON to a single endpoint. It implements
// submit.Transport and performs exactly one attempt per Send.
type Client struct {
	url        string
	http       *http.Client
	timeout    time.Duration
	headers    map[string]string
	userAgent  string
	logger     *zap.Logger
	onDelivery DeliveryHook
	newID      func() string
}

var _ submit.Transport = (*Client)(nil)

// New validates endpoint and builds a Client.
func New(endpoint string, opts ...Option) (*Client, error) {
	if err := validateURL(endpoint); err != nil {
		return nil, err
	}

	c := &Client{
		url:       endpoint,
		http:      &http.Client{},
		timeout:   15 * time.Second,
		headers:   make(map[string]string),
		userAgent: DefaultUserAgent,
		logger:    zap.NewNop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// URL returns the configured endpoint.
func (c *Client) URL() string {
	return c.url
}

// Send posts payload. A 2xx response whose body decodes as JSON counts as
// accepted. Any other status returns ErrUnexpectedStatus and an undecodable
// body returns ErrMalformedResponse.
func (c *Client) Send(ctx context.Context, payload submit.Payload) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("webhook: encode payload: %w", err)
	}

	result := c.deliver(ctx, body)
	if c.onDelivery != nil {
		c.onDelivery(result)
	}

	if result.Error != nil {
		c.logger.Warn("webhook delivery failed",
			zap.String("submission_id", result.SubmissionID),
			zap.Int("status", result.StatusCode),
			zap.Duration("duration", result.Duration),
			zap.Error(result.Error),
		)
		return false, result.Error
	}

	c.logger.Info("webhook delivered",
		zap.String("submission_id", result.SubmissionID),
		zap.Int("status", result.StatusCode),
		zap.Duration("duration", result.Duration),
	)
	return true, nil
}

func (c *Client) deliver(ctx context.Context, body []byte) DeliveryResult {
	start := time.Now()
	result := DeliveryResult{SubmissionID: c.newID()}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Errorf("webhook: build request: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(SubmissionIDHeader, result.SubmissionID)

	resp, err := c.http.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			result.Error = fmt.Errorf("%w: %w", ErrTimeout, err)
		} else {
			result.Error = fmt.Errorf("%w: %w", ErrDelivery, err)
		}
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Error = fmt.Errorf("%w: %d%s", ErrUnexpectedStatus, resp.StatusCode, excerpt(raw))
		return result
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		result.Error = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		return result
	}
	result.Response = decoded
	return result
}

func validateURL(endpoint string) error {
	if strings.TrimSpace(endpoint) == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}

// excerpt flattens a response body for log-safe error messages.
func excerpt(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	text := strings.ReplaceAll(string(body), "\n", " ")
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return ": " + text
}
