package submit

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/definition"
)

const tracerName = "github.com/goliatone/go-formsteps/pkg/submit"

var (
	// ErrEmptyPayload is the failure detail when nothing was filled in.
	ErrEmptyPayload = errors.New("submit: empty payload")
	// ErrRejected is the failure detail when the transport reports false.
	ErrRejected = errors.New("submit: rejected by transport")
	// ErrNoTransport is the failure detail when no transport is configured.
	ErrNoTransport = errors.New("submit: transport is not configured")
)

// Kind distinguishes the two terminal submission outcomes.
type Kind int

const (
	// Failure is the zero value so an unset Result never reads as success.
	Failure Kind = iota
	Success
)

func (k Kind) String() string {
	if k == Success {
		return "success"
	}
	return "failure"
}

// Result is the outcome of one submission. Message is the text shown to the
// user; Detail carries the underlying cause for diagnostics only.
type Result struct {
	Kind        Kind
	Message     string
	Detail      error
	ClearFields bool
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Kind == Success
}

// Option customises a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer overrides the tracer used for the submission span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithMessages sets the user-facing success and failure texts. Empty entries
// keep the defaults.
func WithMessages(messages definition.Messages) Option {
	return func(c *Coordinator) {
		if messages.Success != "" {
			c.messages.Success = messages.Success
		}
		if messages.Failure != "" {
			c.messages.Failure = messages.Failure
		}
	}
}

// Coordinator hands payloads to a Transport and maps every outcome to a
// Result.
type Coordinator struct {
	transport Transport
	logger    *zap.Logger
	tracer    trace.Tracer
	messages  definition.Messages
}

// NewCoordinator constructs a Coordinator around transport.
func NewCoordinator(transport Transport, opts ...Option) *Coordinator {
	c := &Coordinator{
		transport: transport,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		messages: definition.Messages{
			Success: "Form submitted successfully.",
			Failure: "The form could not be submitted.",
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Submit delivers payload. An empty payload fails without reaching the
// transport. A transport error and a rejection both surface as the same
// generic failure; the cause is only logged and kept in Result.Detail.
func (c *Coordinator) Submit(ctx context.Context, payload Payload) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "submit.Submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("payload.fields", len(payload))),
	)
	defer span.End()

	var detail error
	switch {
	case payload.Empty():
		detail = ErrEmptyPayload
	case c.transport == nil:
		detail = ErrNoTransport
	default:
		ok, err := c.transport.Send(ctx, payload)
		switch {
		case err != nil:
			detail = fmt.Errorf("submit: deliver: %w", err)
		case !ok:
			detail = ErrRejected
		}
	}

	if detail != nil {
		span.RecordError(detail)
		span.SetStatus(codes.Error, detail.Error())
		c.logger.Warn("submission failed",
			zap.Int("fields", len(payload)),
			zap.Error(detail),
		)
		return Result{Kind: Failure, Message: c.messages.Failure, Detail: detail}
	}

	span.SetStatus(codes.Ok, "")
	c.logger.Info("submission delivered", zap.Int("fields", len(payload)))
	return Result{Kind: Success, Message: c.messages.Success, ClearFields: true}
}

// SubmitAsync runs Submit on its own goroutine. The returned channel receives
// exactly one Result and is then closed. The payload is copied before the
// goroutine starts.
func (c *Coordinator) SubmitAsync(ctx context.Context, payload Payload) <-chan Result {
	payload = maps.Clone(payload)
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- c.Submit(ctx, payload)
	}()
	return out
}
