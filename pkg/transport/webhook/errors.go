package webhook

import "errors"

// Configuration errors fail at construction; delivery errors are returned by
// Send and surface to the user as a generic submission failure.
var (
	ErrInvalidURL        = errors.New("webhook: invalid URL")
	ErrUnexpectedStatus  = errors.New("webhook: unexpected response status")
	ErrMalformedResponse = errors.New("webhook: malformed response body")
	ErrTimeout           = errors.New("webhook: request timeout")
	ErrDelivery          = errors.New("webhook: delivery failed")
)
