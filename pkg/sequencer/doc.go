// Package sequencer is the step state machine of a form session.
//
// The sequencer holds the current ordinal, always within [0, N). Advance is
// gated by the validator; Retreat and JumpTo are not. Landing on the last step
// builds the summary, and every transition reports progress (current+1)/N to
// the Observer. Inputs can be fed either through the methods directly or as
// Event values through Dispatch.
package sequencer
