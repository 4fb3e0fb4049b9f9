package sink

import (
	"context"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/contract"
)

// DefaultMaxBodyBytes bounds the request body read by the handler.
const DefaultMaxBodyBytes int64 = 1 << 20

// GuardFunc rejects a request before the body is read. Returning an error that
// implements HTTPError selects the status code; anything else is a 403.
type GuardFunc func(r *http.Request) error

// ReceiveFunc is called for every accepted submission. An error turns the
// response into a 500 so the sender reports a failure.
type ReceiveFunc func(ctx context.Context, receipt Receipt) error

// Receipt is one accepted submission.
type Receipt struct {
	ID         string            `json:"id"`
	Payload    map[string]string `json:"payload"`
	ReceivedAt time.Time         `json:"receivedAt"`
}

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Schema       *openapi3.Schema
	Guard        GuardFunc
	OnReceive    ReceiveFunc
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    contract.DefaultPath,
		MaxBodyBytes: DefaultMaxBodyBytes,
		IDGenerator:  uuid.NewString,
		Now:          time.Now,
		Logger:       zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = contract.DefaultPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = uuid.NewString
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

// WithSchema validates every payload against schema, typically the one built
// by contract.Schema. Failures answer 422.
func WithSchema(schema *openapi3.Schema) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schema = schema
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithOnReceive(fn ReceiveFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnReceive = fn
	}
}

func WithIDGenerator(fn func() string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IDGenerator = fn
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
