package webhook

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultUserAgent is sent when no WithUserAgent option is given.
const DefaultUserAgent = "go-formsteps-webhook/1.0"

// DeliveryResult describes one delivery attempt.
type DeliveryResult struct {
	SubmissionID string
	StatusCode   int
	Duration     time.Duration
	Response     any
	Error        error
}

// DeliveryHook is called after every delivery attempt.
type DeliveryHook func(result DeliveryResult)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero or negative values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithHeader adds a header to every request. Content-Type and the submission
// id header cannot be overridden.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" && value != "" {
			c.headers[key] = value
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent != "" {
			c.userAgent = agent
		}
	}
}

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDeliveryHook registers a callback invoked after each attempt.
func WithDeliveryHook(hook DeliveryHook) Option {
	return func(c *Client) {
		c.onDelivery = hook
	}
}

// WithIDGenerator overrides how submission ids are produced.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}
