package validation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/visibility"
)

const individual = "282d3766-260f-4358-9e3d-fe5495df0239"

func newForm(t *testing.T) *form.Form {
	t.Helper()
	f, err := form.New(definition.Default())
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	return f
}

func mustSet(t *testing.T, f *form.Form, values map[string]string) {
	t.Helper()
	for id, value := range values {
		if err := f.Set(id, value); err != nil {
			t.Fatalf("Set(%q): %v", id, err)
		}
	}
}

func TestValidate_EmptyContactStep(t *testing.T) {
	f := newForm(t)

	result, err := New().Validate(f, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected empty step to be invalid")
	}

	want := []Issue{
		{Field: "cliente_tipo", Label: "Tipo de Cliente", Reason: ReasonNoSelection},
		{Field: "responsible", Label: "Responsável Legal", Reason: ReasonRequired},
		{Field: "cpf", Label: "CPF", Reason: ReasonRequired},
		{Field: "rg", Label: "RG", Reason: ReasonRequired},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(result.Fields(), f.Invalid()); diff != "" {
		t.Fatalf("markers mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_WhitespaceIsEmpty(t *testing.T) {
	f := newForm(t)
	mustSet(t, f, map[string]string{
		"cliente_tipo": individual,
		"responsible":  "   ",
		"cpf":          "123.456.789-01",
		"rg":           "1234567",
	})

	result, err := New().Validate(f, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if diff := cmp.Diff([]string{"responsible"}, result.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ClearsMarkersOnceFilled(t *testing.T) {
	f := newForm(t)
	v := New()

	if result, _ := v.Validate(f, 0); result.Valid {
		t.Fatalf("expected invalid step")
	}
	mustSet(t, f, map[string]string{
		"cliente_tipo": "juridica",
		"responsible":  "Maria Silva",
		"cpf":          "123.456.789-01",
		"rg":           "1234567",
	})

	result, err := v.Validate(f, 0)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid step, issues: %v", result.Issues)
	}
	if got := f.Invalid(); len(got) != 0 {
		t.Fatalf("expected markers cleared, got %v", got)
	}
}

func TestValidate_HiddenFieldsNeverFail(t *testing.T) {
	f := newForm(t)
	mustSet(t, f, map[string]string{
		"cliente_tipo": individual,
		"store_name":   "Loja",
		"zip_code":     "01310-100",
		"address":      "Rua A",
		"number":       "10",
		"neighborhood": "Centro",
		"city":         "São Paulo",
		"state":        "SP",
	})

	// Hide the dependents but keep their stored required flag set.
	for _, id := range []string{"cnpj", "business_name"} {
		if err := f.SetVisibility(id, false, true); err != nil {
			t.Fatalf("SetVisibility: %v", err)
		}
	}

	result, err := New().Validate(f, 1)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("hidden required fields must not fail: %v", result.Issues)
	}
}

func TestValidate_DiscriminantScenario(t *testing.T) {
	f := newForm(t)
	engine := visibility.FromDefinition(f.Definition())

	mustSet(t, f, map[string]string{"cliente_tipo": "juridica"})
	if _, err := engine.Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	result, _ := New().Validate(f, 1)
	for _, id := range []string{"cnpj", "business_name"} {
		if !containsField(result, id) {
			t.Fatalf("expected %s to fail while visible, got %v", id, result.Fields())
		}
	}

	mustSet(t, f, map[string]string{"cliente_tipo": individual})
	if _, err := engine.Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	result, _ = New().Validate(f, 1)
	for _, id := range []string{"cnpj", "business_name"} {
		if containsField(result, id) {
			t.Fatalf("expected %s to be skipped once hidden, got %v", id, result.Fields())
		}
	}
}

func TestValidate_HiddenChoiceGroupSkipped(t *testing.T) {
	f := newForm(t)
	if err := f.SetVisibility("cliente_tipo", false, false); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	result, _ := New().Validate(f, 0)
	if containsField(result, "cliente_tipo") {
		t.Fatalf("hidden choice group must be skipped")
	}
}

func TestValidate_SelectFieldsUseRequiredRule(t *testing.T) {
	f := newForm(t)
	mustSet(t, f, map[string]string{
		"payment_date":    "10/10/2026",
		"payment_type":    "pix",
		"sent_type":       "email",
		"financial_email": "financeiro@example.com",
	})

	result, _ := New().Validate(f, 2)
	if diff := cmp.Diff([]string{"bill_date"}, result.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_SummaryStepAlwaysValid(t *testing.T) {
	f := newForm(t)
	result, err := New().Validate(f, 3)
	if err != nil || !result.Valid {
		t.Fatalf("expected summary step to be valid, got %+v err=%v", result, err)
	}
}

func TestValidate_OutOfRange(t *testing.T) {
	f := newForm(t)
	for _, ordinal := range []int{-1, 4} {
		if _, err := New().Validate(f, ordinal); !errors.Is(err, ErrStepOutOfRange) {
			t.Fatalf("ordinal %d: expected ErrStepOutOfRange, got %v", ordinal, err)
		}
	}
}

func containsField(result Result, id string) bool {
	for _, field := range result.Fields() {
		if field == id {
			return true
		}
	}
	return false
}
