// Package webhook is the HTTP transport for form submissions: one JSON POST
// per payload, no retries.
package webhook
