package sequencer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/format"
	"github.com/goliatone/go-formsteps/pkg/submit"
	"github.com/goliatone/go-formsteps/pkg/summary"
	"github.com/goliatone/go-formsteps/pkg/validation"
	"github.com/goliatone/go-formsteps/pkg/visibility"
)

var (
	// ErrStepOutOfRange is returned by JumpTo for an ordinal outside the form.
	ErrStepOutOfRange = errors.New("sequencer: step out of range")
	// ErrUnknownEvent is returned by Dispatch for an unsupported event type.
	ErrUnknownEvent = errors.New("sequencer: unknown event")
)

// Sequencer owns the current step of one form session. It is not safe for
// concurrent use; every method is expected to run on the goroutine handling
// input events.
type Sequencer struct {
	form        *form.Form
	formats     *format.Registry
	engine      *visibility.Engine
	validator   *validation.Validator
	builder     *summary.Builder
	coordinator *submit.Coordinator
	observer    Observer
	logger      *zap.Logger

	current    int
	summary    summary.Aggregate
	hasSummary bool
}

// New builds a Sequencer positioned on the first step. Every format rule named
// by the form must be known to the formatter registry. Visibility is derived
// once before New returns.
func New(f *form.Form, opts ...Option) (*Sequencer, error) {
	if f == nil {
		return nil, errors.New("sequencer: form is required")
	}

	s := &Sequencer{
		form:     f,
		observer: NopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.formats == nil {
		s.formats = format.NewRegistry()
	}
	if s.engine == nil {
		s.engine = visibility.FromDefinition(f.Definition())
	}
	if s.validator == nil {
		s.validator = validation.New(validation.WithLogger(s.logger))
	}
	if s.builder == nil {
		s.builder = summary.NewBuilder(summary.WithLogger(s.logger))
	}
	if s.coordinator == nil {
		s.coordinator = submit.NewCoordinator(nil,
			submit.WithLogger(s.logger),
			submit.WithMessages(f.Definition().Messages),
		)
	}

	for _, field := range f.All() {
		if !s.formats.Has(field.Format()) {
			return nil, fmt.Errorf("sequencer: field %q: %w: %q", field.ID(), format.ErrUnknownRule, field.Format())
		}
	}
	if _, err := s.engine.Apply(f); err != nil {
		return nil, fmt.Errorf("sequencer: initial visibility: %w", err)
	}
	return s, nil
}

// Form returns the form the sequencer drives.
func (s *Sequencer) Form() *form.Form {
	return s.form
}

// Current returns the ordinal of the visible step.
func (s *Sequencer) Current() int {
	return s.current
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	return s.form.Len()
}

// Step returns the visible step.
func (s *Sequencer) Step() form.Step {
	step, _ := s.form.Step(s.current)
	return step
}

// IsLast reports whether the visible step is the terminal one.
func (s *Sequencer) IsLast() bool {
	return s.current == s.form.Len()-1
}

// Progress returns (current+1)/N.
func (s *Sequencer) Progress() float64 {
	return float64(s.current+1) / float64(s.form.Len())
}

// Summary returns the most recently built summary. The second result is false
// until the terminal step has been reached once.
func (s *Sequencer) Summary() (summary.Aggregate, bool) {
	return s.summary, s.hasSummary
}

// SetField formats raw with the field's rule, stores the result, and returns
// it. Changing a watched field re-derives visibility.
func (s *Sequencer) SetField(id, raw string) (string, error) {
	field, ok := s.form.Field(id)
	if !ok {
		return "", fmt.Errorf("sequencer: %w: %q", form.ErrUnknownField, id)
	}

	value, err := s.formats.Apply(field.Format(), raw)
	if err != nil {
		return "", fmt.Errorf("sequencer: format %q: %w", id, err)
	}
	if err := s.form.Set(id, value); err != nil {
		return "", fmt.Errorf("sequencer: %w", err)
	}

	if s.engine.Watches(id) {
		decisions, err := s.engine.Apply(s.form)
		if err != nil {
			return value, fmt.Errorf("sequencer: visibility: %w", err)
		}
		s.logger.Debug("visibility re-evaluated",
			zap.String("field", id),
			zap.Int("decisions", len(decisions)),
		)
	}
	return value, nil
}

// Validate checks the visible step without moving.
func (s *Sequencer) Validate() validation.Result {
	result, err := s.validator.Validate(s.form, s.current)
	if err != nil {
		// current is always in range; an error here means the form changed
		// underneath the sequencer.
		s.logger.Error("validate current step", zap.Error(err))
		return validation.Result{Step: s.current}
	}
	return result
}

// Advance moves to the next step when the visible step validates. It returns
// false, leaving the state unchanged, when validation fails or the visible
// step is the last one.
func (s *Sequencer) Advance() bool {
	if s.IsLast() {
		return false
	}
	result := s.Validate()
	if !result.Valid {
		s.observer.ValidationFailed(result)
		return false
	}
	s.transition(s.current + 1)
	return true
}

// Retreat moves to the previous step without validating. It returns false on
// the first step.
func (s *Sequencer) Retreat() bool {
	if s.current == 0 {
		return false
	}
	s.transition(s.current - 1)
	return true
}

// JumpTo moves to target without validating. Landing on the last step
// rebuilds the summary.
func (s *Sequencer) JumpTo(target int) error {
	if target < 0 || target >= s.form.Len() {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, target)
	}
	s.transition(target)
	return nil
}

// Reset clears every value and marker, re-derives visibility, and returns to
// the first step.
func (s *Sequencer) Reset() {
	s.form.Clear()
	if _, err := s.engine.Apply(s.form); err != nil {
		s.logger.Error("reset visibility", zap.Error(err))
	}
	s.summary = summary.Aggregate{}
	s.hasSummary = false

	if s.current != 0 {
		s.transition(0)
		return
	}
	s.observer.ProgressChanged(s.current, s.form.Len(), s.Progress())
	s.logger.Debug("form reset")
}

// Submit collects the payload and delivers it through the coordinator. On
// success the field values are cleared and the visible step is kept.
func (s *Sequencer) Submit(ctx context.Context) submit.Result {
	payload := submit.Collect(s.form)
	result := s.coordinator.Submit(ctx, payload)
	if result.ClearFields {
		s.form.Clear()
		if _, err := s.engine.Apply(s.form); err != nil {
			s.logger.Error("clear visibility", zap.Error(err))
		}
	}
	s.observer.SubmissionFinished(result)
	return result
}

// Dispatch routes an event to the matching operation. Validation failures and
// bounded no-ops are not errors; submission outcomes reach the observer.
func (s *Sequencer) Dispatch(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case FieldChanged:
		_, err := s.SetField(e.Field, e.Value)
		return err
	case AdvanceRequested:
		s.Advance()
	case RetreatRequested:
		s.Retreat()
	case JumpRequested:
		return s.JumpTo(e.Target)
	case SubmitRequested:
		s.Submit(ctx)
	case ResetRequested:
		s.Reset()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
	return nil
}

func (s *Sequencer) transition(target int) {
	from := s.Step()
	s.observer.StepExited(from)

	s.current = target
	to := s.Step()
	s.logger.Debug("step transition",
		zap.String("from", from.ID),
		zap.String("to", to.ID),
		zap.Int("ordinal", target),
	)
	s.observer.StepEntered(to)
	s.observer.ProgressChanged(s.current, s.form.Len(), s.Progress())

	if s.IsLast() {
		s.summary = s.builder.Build(s.form)
		s.hasSummary = true
		s.observer.SummaryReady(s.summary)
	}
}
