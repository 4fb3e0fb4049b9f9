package sequencer

// Event is an input dispatched to the Sequencer.
type Event interface {
	eventName() string
}

// FieldChanged carries a raw value typed into a field.
type FieldChanged struct {
	Field string
	Value string
}

// AdvanceRequested asks to move to the next step.
type AdvanceRequested struct{}

// RetreatRequested asks to move to the previous step.
type RetreatRequested struct{}

// JumpRequested asks to move straight to Target, bypassing validation.
type JumpRequested struct {
	Target int
}

// SubmitRequested asks to deliver the collected values.
type SubmitRequested struct{}

// ResetRequested asks to clear the form and return to the first step.
type ResetRequested struct{}

func (FieldChanged) eventName() string { return "field_changed" }
func (AdvanceRequested) eventName() string { return "advance_requested" }
func (RetreatRequested) eventName() string { return "retreat_requested" }
func (JumpRequested) eventName() string { return "jump_requested" }
func (SubmitRequested) eventName() string { return "submit_requested" }
func (ResetRequested) eventName() string { return "reset_requested" }
