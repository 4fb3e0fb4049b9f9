// Package validation implements the per-step gate used by the sequencer.
//
// A hidden field can never fail validation, whatever its required flag says.
package validation
