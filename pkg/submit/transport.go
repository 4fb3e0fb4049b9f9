package submit

import "context"

// Transport delivers a payload to the remote system. It returns true when the
// remote side accepted the payload, false when it rejected it, and an error
// when delivery itself failed.
type Transport interface {
	Send(ctx context.Context, payload Payload) (bool, error)
}

// TransportFunc adapts a function into a Transport.
type TransportFunc func(ctx context.Context, payload Payload) (bool, error)

// Send delegates to the underlying function.
func (fn TransportFunc) Send(ctx context.Context, payload Payload) (bool, error) {
	return fn(ctx, payload)
}
