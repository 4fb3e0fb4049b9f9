package sequencer

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/format"
	"github.com/goliatone/go-formsteps/pkg/submit"
	"github.com/goliatone/go-formsteps/pkg/summary"
	"github.com/goliatone/go-formsteps/pkg/validation"
	"github.com/goliatone/go-formsteps/pkg/visibility"
)

// Option customises a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger. Collaborators built by default inherit it.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver registers the presentation observer.
func WithObserver(observer Observer) Option {
	return func(s *Sequencer) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithFormats overrides the formatter registry.
func WithFormats(registry *format.Registry) Option {
	return func(s *Sequencer) {
		s.formats = registry
	}
}

// WithVisibility overrides the visibility engine.
func WithVisibility(engine *visibility.Engine) Option {
	return func(s *Sequencer) {
		s.engine = engine
	}
}

// WithValidator overrides the step validator.
func WithValidator(validator *validation.Validator) Option {
	return func(s *Sequencer) {
		s.validator = validator
	}
}

// WithSummaryBuilder overrides the summary builder.
func WithSummaryBuilder(builder *summary.Builder) Option {
	return func(s *Sequencer) {
		s.builder = builder
	}
}

// WithCoordinator sets the submission coordinator.
func WithCoordinator(coordinator *submit.Coordinator) Option {
	return func(s *Sequencer) {
		s.coordinator = coordinator
	}
}
