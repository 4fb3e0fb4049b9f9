package sink

import (
	"context"
	"net/http"
	"sync"
)

// Component bundles the sink handler with an in-memory record of accepted
// submissions. A hook configured through WithOnReceive runs after recording.
type Component struct {
	opts Options

	mu       sync.RWMutex
	receipts []Receipt
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	c := &Component{}
	opts := NewOptions(fns...)
	next := opts.OnReceive
	opts.OnReceive = func(ctx context.Context, receipt Receipt) error {
		c.record(receipt)
		if next != nil {
			return next(ctx, receipt)
		}
		return nil
	}
	c.opts = opts
	return c
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler that accepts submissions.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}

// Receipts returns the accepted submissions in arrival order.
func (c *Component) Receipts() []Receipt {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Receipt(nil), c.receipts...)
}

// Last returns the most recent submission.
func (c *Component) Last() (Receipt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.receipts) == 0 {
		return Receipt{}, false
	}
	return c.receipts[len(c.receipts)-1], true
}

func (c *Component) record(receipt Receipt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.receipts = append(c.receipts, receipt)
}
