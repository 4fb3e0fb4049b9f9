package form

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formsteps/pkg/definition"
)

func newClosedDeal(t *testing.T) *Form {
	t.Helper()
	f, err := New(definition.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNew_BuildsStepsAndFields(t *testing.T) {
	f := newClosedDeal(t)

	if f.Len() != 4 {
		t.Fatalf("expected 4 steps, got %d", f.Len())
	}

	var ids []string
	for _, step := range f.Steps() {
		ids = append(ids, step.ID)
	}
	want := []string{"contact_info", "service_info", "payment_info", "summary_info"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("step ids mismatch (-want +got):\n%s", diff)
	}

	step, ok := f.Step(0)
	if !ok {
		t.Fatalf("expected step 0")
	}
	if diff := cmp.Diff([]string{"cliente_tipo", "responsible", "cpf", "rg"}, step.Fields); diff != "" {
		t.Fatalf("contact fields mismatch (-want +got):\n%s", diff)
	}

	cpf, ok := f.Field("cpf")
	if !ok {
		t.Fatalf("expected cpf field")
	}
	if cpf.Value != "" || !cpf.Visible || !cpf.Required || cpf.Invalid {
		t.Fatalf("unexpected initial cpf state: %+v", cpf)
	}
	if cpf.Step() != 0 || cpf.Format() != "cpf" {
		t.Fatalf("unexpected cpf metadata: step=%d format=%q", cpf.Step(), cpf.Format())
	}
	if len(f.Fields(3)) != 0 {
		t.Fatalf("summary step should not own fields")
	}
	if f.Fields(9) != nil {
		t.Fatalf("out of range ordinal should return nil")
	}
}

func TestNew_RejectsInvalidDefinition(t *testing.T) {
	_, err := New(definition.Definition{ID: "broken"})
	if !errors.Is(err, definition.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestSet_ChecksOptions(t *testing.T) {
	f := newClosedDeal(t)

	if err := f.Set("payment_type", "pix"); err != nil {
		t.Fatalf("Set pix: %v", err)
	}
	if got := f.OptionLabel("payment_type"); got != "Pix" {
		t.Fatalf("expected option label Pix, got %q", got)
	}

	err := f.Set("payment_type", "cheque")
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if f.Value("payment_type") != "pix" {
		t.Fatalf("rejected value must not be stored")
	}

	if err := f.Set("payment_type", ""); err != nil {
		t.Fatalf("clearing a select should be allowed: %v", err)
	}

	if err := f.Set("missing", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSetVisibility_ClearsMarkerWhenHidden(t *testing.T) {
	f := newClosedDeal(t)
	f.Mark("cnpj", true)

	if err := f.SetVisibility("cnpj", false, false); err != nil {
		t.Fatalf("SetVisibility: %v", err)
	}
	cnpj, _ := f.Field("cnpj")
	if cnpj.Visible || cnpj.Required || cnpj.Invalid {
		t.Fatalf("unexpected cnpj state: %+v", cnpj)
	}
	if err := f.SetVisibility("nope", true, true); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestClear(t *testing.T) {
	f := newClosedDeal(t)
	_ = f.Set("responsible", "Maria")
	_ = f.Set("cliente_tipo", "juridica")
	f.Mark("cpf", true)

	f.Clear()

	for _, field := range f.All() {
		if field.Value != "" || field.Invalid {
			t.Fatalf("field %s not cleared: %+v", field.ID(), field)
		}
	}
	if got := f.Invalid(); len(got) != 0 {
		t.Fatalf("expected no invalid fields, got %v", got)
	}
}
