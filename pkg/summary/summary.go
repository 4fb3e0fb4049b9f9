package summary

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
)

// Line is one label/value pair shown in a section.
type Line struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups the lines of one data-entry step. EditTarget is the ordinal
// the sequencer jumps to when the section's edit affordance is used.
type Section struct {
	StepID     string `json:"stepId"`
	Title      string `json:"title"`
	EditTarget int    `json:"editTarget"`
	Lines      []Line `json:"lines"`
}

// Aggregate is the read-only projection shown on the terminal step.
type Aggregate struct {
	FormID   string    `json:"formId"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Lookup returns the line for field, searching every section.
func (a Aggregate) Lookup(field string) (Line, bool) {
	for _, section := range a.Sections {
		for _, line := range section.Lines {
			if line.Field == field {
				return line, true
			}
		}
	}
	return Line{}, false
}

// Option customises a Builder.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder assembles an Aggregate from the live form state.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build reads the current values of f. Steps without fields, such as the
// summary step itself, produce no section. Select and choice values are shown
// through their option label. The discriminant's dependents are omitted when
// the individual value is selected, fields hidden by their own visibleWhen
// rule are omitted, and omitEmpty fields are omitted while empty.
func (b *Builder) Build(f *form.Form) Aggregate {
	if f == nil {
		return Aggregate{}
	}
	def := f.Definition()
	agg := Aggregate{FormID: def.ID, Title: def.Title}

	omitted := dependentsToOmit(def, f)
	for _, step := range f.Steps() {
		if len(step.Fields) == 0 {
			continue
		}
		section := Section{
			StepID:     step.ID,
			Title:      step.Title,
			EditTarget: step.Ordinal,
		}
		for _, field := range f.Fields(step.Ordinal) {
			if _, skip := omitted[field.ID()]; skip {
				continue
			}
			if field.Definition().VisibleWhen != "" && !field.Visible {
				continue
			}
			if field.Definition().OmitEmpty && field.Value == "" {
				continue
			}
			section.Lines = append(section.Lines, Line{
				Field: field.ID(),
				Label: field.Label(),
				Value: f.OptionLabel(field.ID()),
			})
		}
		agg.Sections = append(agg.Sections, section)
	}

	b.logger.Debug("summary built",
		zap.String("form", def.ID),
		zap.Int("sections", len(agg.Sections)),
	)
	return agg
}

func dependentsToOmit(def definition.Definition, f *form.Form) map[string]struct{} {
	if !def.Discriminant.Enabled() {
		return nil
	}
	if f.Value(def.Discriminant.Field) != def.Discriminant.Individual {
		return nil
	}
	out := make(map[string]struct{}, len(def.Discriminant.Dependents))
	for _, id := range def.Discriminant.Dependents {
		out[id] = struct{}{}
	}
	return out
}
