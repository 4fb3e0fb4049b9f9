package expr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProgramEval(t *testing.T) {
	t.Parallel()

	values := map[string]string{
		"cliente_tipo": "juridica",
		"sent_type":    "email",
		"bill_date":    "10",
		"opt_in":       "true",
		"number":       "",
	}

	cases := []struct {
		rule string
		want bool
	}{
		{rule: "", want: true},
		{rule: `cliente_tipo == "juridica"`, want: true},
		{rule: `cliente_tipo != 'juridica'`, want: false},
		{rule: `sent_type == email`, want: true},
		{rule: `bill_date == 10`, want: true},
		{rule: `bill_date != 20`, want: true},
		{rule: `opt_in == true`, want: true},
		{rule: `opt_in`, want: true},
		{rule: `number`, want: false},
		{rule: `!number`, want: true},
		{rule: `missing`, want: false},
		{rule: `missing == ""`, want: true},
		{rule: `sent_type == "email" && bill_date == 10`, want: true},
		{rule: `sent_type == "post" || bill_date == 10`, want: true},
		{rule: `!(sent_type == "email" && number)`, want: true},
	}
	for _, tc := range cases {
		p, err := Compile(tc.rule)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.rule, err)
		}
		if got := p.Eval(values); got != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestProgramFields(t *testing.T) {
	t.Parallel()

	p := MustCompile(`sent_type == "email" || (cliente_tipo != "x" && !sent_type)`)
	if diff := cmp.Diff([]string{"cliente_tipo", "sent_type"}, p.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if p.String() != `sent_type == "email" || (cliente_tipo != "x" && !sent_type)` {
		t.Fatalf("unexpected source %q", p.String())
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, rule := range []string{
		`a = "b"`,
		`a & b`,
		`a | b`,
		`a == "open`,
		`(a == b`,
		`a ==`,
		`== a`,
		`a b`,
		`a == 1.2.3`,
	} {
		if _, err := Compile(rule); !errors.Is(err, ErrSyntax) {
			t.Fatalf("%q: expected ErrSyntax, got %v", rule, err)
		}
	}
}

func TestNilProgramIsTrue(t *testing.T) {
	t.Parallel()

	var p *Program
	if !p.Eval(nil) {
		t.Fatalf("expected nil program to evaluate true")
	}
}
