package validation

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/form"
)

// ErrStepOutOfRange is returned when the requested ordinal does not exist.
var ErrStepOutOfRange = errors.New("validation: step out of range")

// Reason classifies why a field failed validation.
type Reason string

const (
	// ReasonRequired marks a visible required field whose trimmed value is
	// empty.
	ReasonRequired Reason = "required"
	// ReasonNoSelection marks an exclusive-choice group with nothing selected.
	ReasonNoSelection Reason = "no_selection"
)

// Issue represents one failing field.
type Issue struct {
	Field  string `json:"field"`
	Label  string `json:"label,omitempty"`
	Reason Reason `json:"reason"`
}

// Result captures the outcome of validating one step.
type Result struct {
	Step   int     `json:"step"`
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Fields returns the ids of the failing fields in step order.
func (r Result) Fields() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Field)
	}
	return out
}

// Option customises a Validator.
type Option func(*Validator)

// WithLogger sets the logger used to report failed steps.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator checks one step at a time and maintains the error markers of the
// fields it inspects.
type Validator struct {
	logger *zap.Logger
}

// New constructs a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks the step at ordinal. Hidden fields are skipped entirely.
// Visible required fields fail when their trimmed value is empty, and every
// visible exclusive-choice group fails when nothing is selected. Markers are
// set on failing fields and cleared on checked fields that pass.
func (v *Validator) Validate(f *form.Form, ordinal int) (Result, error) {
	if f == nil || ordinal < 0 || ordinal >= f.Len() {
		return Result{Step: ordinal}, fmt.Errorf("%w: %d", ErrStepOutOfRange, ordinal)
	}

	result := Result{Step: ordinal, Valid: true}
	for _, field := range f.Fields(ordinal) {
		if !field.Visible {
			continue
		}

		var reason Reason
		switch {
		case field.IsChoice():
			if field.Value == "" {
				reason = ReasonNoSelection
			}
		case field.Required:
			if strings.TrimSpace(field.Value) == "" {
				reason = ReasonRequired
			}
		default:
			continue
		}

		if reason == "" {
			f.Mark(field.ID(), false)
			continue
		}
		f.Mark(field.ID(), true)
		result.Valid = false
		result.Issues = append(result.Issues, Issue{
			Field:  field.ID(),
			Label:  field.Label(),
			Reason: reason,
		})
	}

	if !result.Valid {
		v.logger.Debug("step validation failed",
			zap.Int("step", ordinal),
			zap.Strings("fields", result.Fields()),
		)
	}
	return result, nil
}
