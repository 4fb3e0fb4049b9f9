// Package definition loads the form definition that drives the step
// sequencer: the ordered steps, the fields each step owns, the discriminant
// selection that hides the business-only fields, and the two submission
// messages. Definitions are plain JSON or YAML documents; Default returns the
// bundled closed-deal onboarding form.
package definition
