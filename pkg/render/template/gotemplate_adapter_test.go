package template_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formsteps/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tpl": {Data: []byte("{{ name|shout }}")},
		"sections.tpl": {Data: []byte(
			"{% for s in sections %}[{{ s.stepId }}:{{ s.editTarget }}]{% endfor %}",
		)},
	}

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" || buf.String() != result {
		t.Fatalf("unexpected output result=%q writer=%q", result, buf.String())
	}
}

func TestGoTemplateEngine_RenderDispatchesInlineContent(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.Render("{{ a }}-{{ b|trim }}", map[string]any{"a": "x", "b": "  y  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "x-y" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_StructsUseJSONNames(t *testing.T) {
	type section struct {
		StepID     string `json:"stepId"`
		EditTarget int    `json:"editTarget"`
	}
	type view struct {
		Sections []section `json:"sections"`
	}

	engine := newEngine(t)
	result, err := engine.RenderTemplate("sections", view{Sections: []section{
		{StepID: "contact_info", EditTarget: 0},
		{StepID: "service_info", EditTarget: 1},
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[contact_info:0][service_info:1]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"unused": true}))
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_FuncsAndPercent(t *testing.T) {
	engine := newEngine(t, gotemplate.WithTemplateFunc(map[string]any{
		"greet": func(name string) string { return "oi " + name },
	}))

	result, err := engine.RenderString(`{{ greet("Ana") }} {{ progress|percent }}`, map[string]any{"progress": 0.75})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "oi Ana 75%" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderString("{% if %}", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
