package visibility

import (
	"fmt"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/visibility/expr"
)

// Decision is the visible/required outcome for one field.
type Decision struct {
	Field    string
	Visible  bool
	Required bool
}

// Context provides the inputs a Rule reads. Values holds the current field
// values keyed by field id.
type Context struct {
	Values map[string]string
}

// Rule derives field decisions from the current context.
type Rule interface {
	// Watches reports whether a change to field may alter the rule's output.
	Watches(field string) bool
	Evaluate(ctx Context) []Decision
}

// RuleFunc adapts a function into a Rule that watches a single field.
type RuleFunc struct {
	Field string
	Fn    func(ctx Context) []Decision
}

// Watches reports whether field is the watched field.
func (r RuleFunc) Watches(field string) bool { return field == r.Field }

// Evaluate delegates to the underlying function.
func (r RuleFunc) Evaluate(ctx Context) []Decision {
	if r.Fn == nil {
		return nil
	}
	return r.Fn(ctx)
}

// DiscriminantRule hides its dependents when the discriminant holds the
// individual value and requires them otherwise. An empty selection shows and
// requires the dependents.
type DiscriminantRule struct {
	Field      string
	Individual string
	Dependents []string
}

// Watches reports whether field is the discriminant.
func (r DiscriminantRule) Watches(field string) bool { return field == r.Field }

// Evaluate returns one decision per dependent field.
func (r DiscriminantRule) Evaluate(ctx Context) []Decision {
	show := ctx.Values[r.Field] != r.Individual
	out := make([]Decision, 0, len(r.Dependents))
	for _, id := range r.Dependents {
		out = append(out, Decision{Field: id, Visible: show, Required: show})
	}
	return out
}

// ExprRule shows a field while its compiled visibleWhen program holds. A
// visible field keeps its definition's required flag; a hidden one is never
// required.
type ExprRule struct {
	Field    string
	Required bool
	Program  *expr.Program
}

// Watches reports whether the program reads field.
func (r ExprRule) Watches(field string) bool {
	for _, id := range r.Program.Fields() {
		if id == field {
			return true
		}
	}
	return false
}

// Evaluate returns the single decision for the rule's field.
func (r ExprRule) Evaluate(ctx Context) []Decision {
	show := r.Program.Eval(ctx.Values)
	return []Decision{{Field: r.Field, Visible: show, Required: show && r.Required}}
}

// Target is the state a decision list is applied to.
type Target interface {
	Value(id string) string
	SetVisibility(id string, visible, required bool) error
}

// Engine evaluates a fixed list of rules against a form.
type Engine struct {
	rules  []Rule
	fields []string
}

// NewEngine builds an engine over rules. fields lists the ids whose values are
// copied into the Context on Apply.
func NewEngine(rules []Rule, fields ...string) *Engine {
	return &Engine{
		rules:  append([]Rule(nil), rules...),
		fields: append([]string(nil), fields...),
	}
}

// FromDefinition builds an engine carrying the definition's discriminant rule
// followed by one ExprRule per field with a visibleWhen rule, so a field's own
// rule overrides the discriminant. Rules that do not compile are skipped;
// form.New rejects such definitions before they get here.
func FromDefinition(def definition.Definition) *Engine {
	var (
		rules  []Rule
		fields []string
	)
	if def.Discriminant.Enabled() {
		rules = append(rules, DiscriminantRule{
			Field:      def.Discriminant.Field,
			Individual: def.Discriminant.Individual,
			Dependents: append([]string(nil), def.Discriminant.Dependents...),
		})
		fields = append(fields, def.Discriminant.Field)
	}
	for _, step := range def.Steps {
		for _, field := range step.Fields {
			if field.VisibleWhen == "" {
				continue
			}
			program, err := expr.Compile(field.VisibleWhen)
			if err != nil {
				continue
			}
			rules = append(rules, ExprRule{Field: field.ID, Required: field.Required, Program: program})
			fields = append(fields, program.Fields()...)
		}
	}
	return NewEngine(rules, fields...)
}

// Watches reports whether a change to field should trigger re-evaluation.
func (e *Engine) Watches(field string) bool {
	if e == nil {
		return false
	}
	for _, rule := range e.rules {
		if rule.Watches(field) {
			return true
		}
	}
	return false
}

// Evaluate runs every rule in order. Later decisions for the same field win.
func (e *Engine) Evaluate(ctx Context) []Decision {
	if e == nil {
		return nil
	}
	var out []Decision
	for _, rule := range e.rules {
		out = append(out, rule.Evaluate(ctx)...)
	}
	return out
}

// Apply evaluates the rules against target's current values and writes the
// decisions back.
func (e *Engine) Apply(target Target) ([]Decision, error) {
	if e == nil || target == nil {
		return nil, nil
	}
	ctx := Context{Values: make(map[string]string, len(e.fields))}
	for _, id := range e.fields {
		if id != "" {
			ctx.Values[id] = target.Value(id)
		}
	}
	decisions := e.Evaluate(ctx)
	for _, d := range decisions {
		if err := target.SetVisibility(d.Field, d.Visible, d.Required); err != nil {
			return decisions, fmt.Errorf("visibility: apply %q: %w", d.Field, err)
		}
	}
	return decisions, nil
}
