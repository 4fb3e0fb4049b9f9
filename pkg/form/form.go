package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formsteps/pkg/definition"
)

var (
	// ErrUnknownField is returned when an operation names a field the form
	// does not own.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnknownOption is returned when a select or choice field receives a
	// value outside its option list.
	ErrUnknownOption = errors.New("form: unknown option")
)

// Field is the live state of one input. Required and Visible start from the
// definition and are changed by the visibility rules; Invalid is the visual
// error marker set by the validator.
type Field struct {
	def      definition.Field
	step     int
	Value    string
	Required bool
	Visible  bool
	Invalid  bool
}

// ID returns the field identifier.
func (f *Field) ID() string { return f.def.ID }

// Label returns the display label.
func (f *Field) Label() string { return f.def.Label }

// Kind returns the field kind.
func (f *Field) Kind() definition.FieldKind { return f.def.Kind }

// Format returns the formatting rule name, empty when none.
func (f *Field) Format() string { return f.def.Format }

// Step returns the ordinal of the step owning the field.
func (f *Field) Step() int { return f.step }

// Definition returns the static configuration.
func (f *Field) Definition() definition.Field { return f.def }

// Options returns the selectable options of a select or choice field.
func (f *Field) Options() []definition.Option {
	return append([]definition.Option(nil), f.def.Options...)
}

// IsChoice reports whether the field is an exclusive-choice group.
func (f *Field) IsChoice() bool { return f.def.Kind == definition.KindChoice }

// Step is one ordered section of the form. Steps never change after New.
type Step struct {
	ID      string
	Title   string
	Ordinal int
	Fields  []string
}

// Form owns every field value for one session.
type Form struct {
	def    definition.Definition
	steps  []Step
	fields map[string]*Field
	order  []string
}

// New builds the runtime form from a validated definition.
func New(def definition.Definition) (*Form, error) {
	if err := definition.Validate(def); err != nil {
		return nil, err
	}

	f := &Form{
		def:    def,
		steps:  make([]Step, len(def.Steps)),
		fields: make(map[string]*Field),
	}
	for ordinal, stepDef := range def.Steps {
		step := Step{
			ID:      stepDef.ID,
			Title:   stepDef.Title,
			Ordinal: ordinal,
		}
		for _, fieldDef := range stepDef.Fields {
			f.fields[fieldDef.ID] = &Field{
				def:      fieldDef,
				step:     ordinal,
				Required: fieldDef.Required,
				Visible:  true,
			}
			f.order = append(f.order, fieldDef.ID)
			step.Fields = append(step.Fields, fieldDef.ID)
		}
		f.steps[ordinal] = step
	}
	return f, nil
}

// Definition returns the definition the form was built from.
func (f *Form) Definition() definition.Definition {
	return f.def
}

// Len returns the number of steps.
func (f *Form) Len() int {
	return len(f.steps)
}

// Steps returns a copy of the ordered steps.
func (f *Form) Steps() []Step {
	out := make([]Step, len(f.steps))
	for i, step := range f.steps {
		step.Fields = append([]string(nil), step.Fields...)
		out[i] = step
	}
	return out
}

// Step returns the step at ordinal.
func (f *Form) Step(ordinal int) (Step, bool) {
	if ordinal < 0 || ordinal >= len(f.steps) {
		return Step{}, false
	}
	step := f.steps[ordinal]
	step.Fields = append([]string(nil), step.Fields...)
	return step, true
}

// Fields returns the live fields of the step at ordinal in definition order.
func (f *Form) Fields(ordinal int) []*Field {
	if ordinal < 0 || ordinal >= len(f.steps) {
		return nil
	}
	ids := f.steps[ordinal].Fields
	out := make([]*Field, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.fields[id])
	}
	return out
}

// All returns every live field in definition order.
func (f *Form) All() []*Field {
	out := make([]*Field, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.fields[id])
	}
	return out
}

// Field looks up a live field.
func (f *Form) Field(id string) (*Field, bool) {
	field, ok := f.fields[id]
	return field, ok
}

// Value returns the current value of a field, empty when unknown.
func (f *Form) Value(id string) string {
	if field, ok := f.fields[id]; ok {
		return field.Value
	}
	return ""
}

// Set stores value on a field. Select and choice fields only accept one of
// their option values, or the empty string to clear the selection.
func (f *Form) Set(id, value string) error {
	field, ok := f.fields[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	if field.def.Kind != definition.KindText && value != "" && !field.def.HasOption(value) {
		return fmt.Errorf("%w: %q for field %q", ErrUnknownOption, value, id)
	}
	field.Value = value
	return nil
}

// OptionLabel returns the label of the option currently stored in a select or
// choice field. Text fields return their value.
func (f *Form) OptionLabel(id string) string {
	field, ok := f.fields[id]
	if !ok {
		return ""
	}
	if field.def.Kind == definition.KindText || field.Value == "" {
		return field.Value
	}
	return field.def.OptionLabel(field.Value)
}

// SetVisibility updates the visible and required flags of a field.
func (f *Form) SetVisibility(id string, visible, required bool) error {
	field, ok := f.fields[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	field.Visible = visible
	field.Required = required
	if !visible {
		field.Invalid = false
	}
	return nil
}

// Mark sets or clears the visual error marker on a field.
func (f *Form) Mark(id string, invalid bool) {
	if field, ok := f.fields[id]; ok {
		field.Invalid = invalid
	}
}

// Invalid returns the ids of fields currently carrying an error marker.
func (f *Form) Invalid() []string {
	var out []string
	for _, id := range f.order {
		if f.fields[id].Invalid {
			out = append(out, id)
		}
	}
	return out
}

// Clear empties every value and error marker. Required and visible flags are
// left for the visibility rules to re-derive.
func (f *Form) Clear() {
	for _, field := range f.fields {
		field.Value = ""
		field.Invalid = false
	}
}
