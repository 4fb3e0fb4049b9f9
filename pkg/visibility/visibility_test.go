package visibility

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
)

const individual = "282d3766-260f-4358-9e3d-fe5495df0239"

func TestDiscriminantRule_Evaluate(t *testing.T) {
	rule := DiscriminantRule{
		Field:      "cliente_tipo",
		Individual: individual,
		Dependents: []string{"cnpj", "business_name"},
	}

	tests := []struct {
		name      string
		selection string
		show      bool
	}{
		{name: "individual hides dependents", selection: individual, show: false},
		{name: "business shows dependents", selection: "juridica", show: true},
		{name: "no selection fails open", selection: "", show: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rule.Evaluate(Context{Values: map[string]string{"cliente_tipo": tt.selection}})
			want := []Decision{
				{Field: "cnpj", Visible: tt.show, Required: tt.show},
				{Field: "business_name", Visible: tt.show, Required: tt.show},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("decisions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEngine_ApplyToForm(t *testing.T) {
	f, err := form.New(definition.Default())
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	engine := FromDefinition(f.Definition())

	if !engine.Watches("cliente_tipo") || engine.Watches("cpf") {
		t.Fatalf("engine should only watch the discriminant")
	}

	if err := f.Set("cliente_tipo", individual); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := engine.Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, id := range []string{"cnpj", "business_name"} {
		field, _ := f.Field(id)
		if field.Visible || field.Required {
			t.Fatalf("%s should be hidden and optional: %+v", id, field)
		}
	}

	if err := f.Set("cliente_tipo", "juridica"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := engine.Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, id := range []string{"cnpj", "business_name"} {
		field, _ := f.Field(id)
		if !field.Visible || !field.Required {
			t.Fatalf("%s should be visible and required: %+v", id, field)
		}
	}
}

func TestEngine_WithoutDiscriminant(t *testing.T) {
	engine := FromDefinition(definition.Definition{})
	if engine.Watches("anything") {
		t.Fatalf("engine without rules should watch nothing")
	}
	if got := engine.Evaluate(Context{}); len(got) != 0 {
		t.Fatalf("expected no decisions, got %v", got)
	}
}

type failingTarget struct{}

func (failingTarget) Value(string) string { return "" }

func (failingTarget) SetVisibility(string, bool, bool) error {
	return form.ErrUnknownField
}

func TestEngine_ApplyWrapsTargetError(t *testing.T) {
	engine := NewEngine([]Rule{RuleFunc{
		Field: "a",
		Fn: func(Context) []Decision {
			return []Decision{{Field: "b", Visible: true}}
		},
	}}, "a")

	_, err := engine.Apply(failingTarget{})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected wrapped ErrUnknownField, got %v", err)
	}
}

func ruleDefinition() definition.Definition {
	return definition.Definition{
		ID: "delivery",
		Steps: []definition.Step{
			{ID: "billing", Title: "Cobrança", Fields: []definition.Field{
				{ID: "sent_type", Label: "Envio", Kind: definition.KindSelect, Options: []definition.Option{
					{Value: "email", Label: "E-mail"},
					{Value: "post", Label: "Correio"},
				}},
				{ID: "financial_email", Kind: definition.KindText, Label: "E-mail financeiro", Required: true, VisibleWhen: `sent_type == "email"`},
			}},
			{ID: "summary", Title: "Resumo"},
		},
	}
}

func TestExprRule_DrivesVisibility(t *testing.T) {
	f, err := form.New(ruleDefinition())
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	engine := FromDefinition(f.Definition())
	if !engine.Watches("sent_type") || engine.Watches("financial_email") {
		t.Fatalf("engine should watch only the referenced field")
	}

	tests := []struct {
		selection string
		show      bool
	}{
		{selection: "", show: false},
		{selection: "post", show: false},
		{selection: "email", show: true},
	}
	for _, tt := range tests {
		if err := f.Set("sent_type", tt.selection); err != nil {
			t.Fatalf("Set: %v", err)
		}
		decisions, err := engine.Apply(f)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		want := []Decision{{Field: "financial_email", Visible: tt.show, Required: tt.show}}
		if diff := cmp.Diff(want, decisions); diff != "" {
			t.Fatalf("%q: decisions mismatch (-want +got):\n%s", tt.selection, diff)
		}
		field, _ := f.Field("financial_email")
		if field.Visible != tt.show || field.Required != tt.show {
			t.Fatalf("%q: unexpected field state %+v", tt.selection, field)
		}
	}
}

func TestExprRule_OverridesDiscriminant(t *testing.T) {
	def := definition.Default()
	for i, field := range def.Steps[1].Fields {
		if field.ID == "business_name" {
			def.Steps[1].Fields[i].VisibleWhen = `cnpj`
		}
	}
	f, err := form.New(def)
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	engine := FromDefinition(def)

	if err := f.Set("cliente_tipo", "juridica"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := engine.Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if field, _ := f.Field("business_name"); field.Visible {
		t.Fatalf("business_name should stay hidden until cnpj is filled")
	}
	if field, _ := f.Field("cnpj"); !field.Visible {
		t.Fatalf("cnpj should follow the discriminant")
	}
}
