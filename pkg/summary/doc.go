// Package summary builds the read-only review shown on the last step. The
// aggregate is derived on demand from the form and never cached.
package summary
