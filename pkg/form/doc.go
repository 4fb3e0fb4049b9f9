// Package form holds the live state of a multi-step form: the immutable step
// list and, per field, the current value, the dynamic required and visible
// flags, and the visual error marker.
//
// A Form is owned by a single sequencer and is not safe for concurrent use.
package form
