package definition_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsteps/pkg/definition"
)

func TestDefault_ClosedDeal(t *testing.T) {
	def := definition.Default()

	var steps []string
	for _, step := range def.Steps {
		steps = append(steps, step.ID)
	}
	want := []string{"contact_info", "service_info", "payment_info", "summary_info"}
	if diff := cmp.Diff(want, steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}

	if def.Discriminant.Field != "cliente_tipo" {
		t.Fatalf("discriminant field mismatch: %q", def.Discriminant.Field)
	}
	if def.Discriminant.Individual != "282d3766-260f-4358-9e3d-fe5495df0239" {
		t.Fatalf("individual sentinel mismatch: %q", def.Discriminant.Individual)
	}
	if diff := cmp.Diff([]string{"cnpj", "business_name"}, def.Discriminant.Dependents); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}

	cpf, ok := def.FieldByID("cpf")
	if !ok || cpf.Format != "cpf" || !cpf.Required {
		t.Fatalf("cpf field misconfigured: %#v", cpf)
	}
	address1, ok := def.FieldByID("address1")
	if !ok || !address1.OmitEmpty || address1.Required {
		t.Fatalf("address1 field misconfigured: %#v", address1)
	}
	if got := len(def.Steps[len(def.Steps)-1].Fields); got != 0 {
		t.Fatalf("summary step should not own fields, got %d", got)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	first := definition.Default()
	first.Steps[0].Fields[0].Label = "mutated"
	first.Discriminant.Dependents[0] = "mutated"

	second := definition.Default()
	if second.Steps[0].Fields[0].Label == "mutated" {
		t.Fatalf("field label leaked between copies")
	}
	if second.Discriminant.Dependents[0] == "mutated" {
		t.Fatalf("dependents leaked between copies")
	}
}

func TestParse_JSONAndDefaults(t *testing.T) {
	raw := []byte(`{
		"id": "mini",
		"steps": [
			{"id": "one", "fields": [{"id": " name ", "required": true, "format": "Capitalize"}]},
			{"id": "done"}
		]
	}`)

	def, err := definition.Parse(raw, "mini.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field := def.Steps[0].Fields[0]
	want := definition.Field{
		ID:       "name",
		Label:    "name",
		Kind:     definition.KindText,
		Required: true,
		Format:   "capitalize",
	}
	if diff := cmp.Diff(want, field); diff != "" {
		t.Fatalf("field mismatch (-want +got):\n%s", diff)
	}
	if def.Source != "mini.json" {
		t.Fatalf("source mismatch: %q", def.Source)
	}
}

func TestParse_YAML(t *testing.T) {
	raw := []byte(`
id: yaml_form
steps:
  - id: first
    fields:
      - id: kind
        kind: choice
        options:
          - value: a
            label: Option A
          - value: b
  - id: last
discriminant:
  field: kind
  individual: a
  dependents: []
`)
	def, err := definition.Parse(raw, "form.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field, _ := def.FieldByID("kind")
	if got := field.OptionLabel("a"); got != "Option A" {
		t.Fatalf("label mismatch: %q", got)
	}
	if got := field.OptionLabel("b"); got != "b" {
		t.Fatalf("fallback label mismatch: %q", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"single step":      `{"steps":[{"id":"a"}]}`,
		"duplicate step":   `{"steps":[{"id":"a"},{"id":"a"}]}`,
		"duplicate field":  `{"steps":[{"id":"a","fields":[{"id":"x"}]},{"id":"b","fields":[{"id":"x"}]}]}`,
		"unknown kind":     `{"steps":[{"id":"a","fields":[{"id":"x","kind":"slider"}]},{"id":"b"}]}`,
		"select no option": `{"steps":[{"id":"a","fields":[{"id":"x","kind":"select"}]},{"id":"b"}]}`,
		"missing discriminant": `{"steps":[{"id":"a"},{"id":"b"}],
			"discriminant":{"field":"nope","individual":"x"}}`,
		"discriminant not choice": `{"steps":[{"id":"a","fields":[{"id":"x"}]},{"id":"b"}],
			"discriminant":{"field":"x","individual":"y"}}`,
		"individual not an option": `{"steps":[{"id":"a","fields":[{"id":"x","kind":"choice","options":[{"value":"p"}]}]},{"id":"b"}],
			"discriminant":{"field":"x","individual":"q"}}`,
		"unknown dependent": `{"steps":[{"id":"a","fields":[{"id":"x","kind":"choice","options":[{"value":"p"}]}]},{"id":"b"}],
			"discriminant":{"field":"x","individual":"p","dependents":["ghost"]}}`,
		"rule syntax":       `{"steps":[{"id":"a","fields":[{"id":"x"},{"id":"y","visibleWhen":"x = 1"}]},{"id":"b"}]}`,
		"rule unknown field": `{"steps":[{"id":"a","fields":[{"id":"x","visibleWhen":"ghost == 1"}]},{"id":"b"}]}`,
		"rule self":          `{"steps":[{"id":"a","fields":[{"id":"x","visibleWhen":"x"}]},{"id":"b"}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := definition.Parse([]byte(raw), name)
			if !errors.Is(err, definition.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_VisibleWhen(t *testing.T) {
	raw := `
id: delivery
steps:
  - id: billing
    fields:
      - id: sent_type
      - id: financial_email
        visibleWhen: sent_type == "email"
  - id: summary
`
	def, err := definition.Parse([]byte(raw), "delivery.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field, ok := def.FieldByID("financial_email")
	if !ok || field.VisibleWhen != `sent_type == "email"` {
		t.Fatalf("unexpected field %+v", field)
	}
}

func TestParse_Garbage(t *testing.T) {
	_, err := definition.Parse([]byte("steps: [unterminated"), "broken.yaml")
	if err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	content := "steps:\n  - id: a\n    fields:\n      - id: x\n  - id: b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	def, err := definition.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(def.Steps) != 2 || def.Steps[0].Fields[0].ID != "x" {
		t.Fatalf("unexpected definition: %#v", def)
	}

	if _, err := definition.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
