// Package template defines the engine-agnostic template contract used by the
// HTML summary renderer.
package template
