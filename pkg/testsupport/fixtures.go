package testsupport

import (
	"context"
	"sort"
	"testing"

	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
)

// Individual is the discriminant value that hides the business fields in the
// closed-deal definition.
const Individual = "282d3766-260f-4358-9e3d-fe5495df0239"

// Business is the discriminant value that shows the business fields.
const Business = "juridica"

// ContactValues returns valid, already formatted values for the contact step.
func ContactValues(clientType string) map[string]string {
	return map[string]string{
		"cliente_tipo": clientType,
		"responsible":  "Maria Da Silva",
		"cpf":          "123.456.789-01",
		"rg":           "12.345.678-9",
	}
}

// ServiceValues returns valid values for the service step. The business
// fields are included only for the business client type.
func ServiceValues(clientType string) map[string]string {
	values := map[string]string{
		"store_name":   "Loja Central",
		"zip_code":     "01.310-100",
		"address":      "Avenida Paulista",
		"number":       "1000",
		"neighborhood": "Bela Vista",
		"city":         "São Paulo",
		"state":        "SP",
	}
	if clientType != Individual {
		values["cnpj"] = "12.345.678/0001-95"
		values["business_name"] = "Loja Central Ltda"
	}
	return values
}

// PaymentValues returns valid values for the payment step.
func PaymentValues() map[string]string {
	return map[string]string{
		"payment_date":    "10/11/2026",
		"payment_type":    "pix",
		"bill_date":       "10",
		"sent_type":       "email",
		"financial_email": "financeiro@example.com",
	}
}

// ClosedDealValues merges every step's values for clientType.
func ClosedDealValues(clientType string) map[string]string {
	out := make(map[string]string)
	for _, values := range []map[string]string{
		ContactValues(clientType),
		ServiceValues(clientType),
		PaymentValues(),
	} {
		for id, value := range values {
			out[id] = value
		}
	}
	return out
}

// NewForm builds a form from the embedded closed-deal definition.
func NewForm(t *testing.T) *form.Form {
	t.Helper()

	f, err := form.New(definition.Default())
	if err != nil {
		t.Fatalf("testsupport: new form: %v", err)
	}
	return f
}

// Fill stores values on f in a deterministic order, failing the test on the
// first rejected value.
func Fill(t *testing.T, f *form.Form, values map[string]string) {
	t.Helper()

	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := f.Set(id, values[id]); err != nil {
			t.Fatalf("testsupport: set %q: %v", id, err)
		}
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
