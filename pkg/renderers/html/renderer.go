package html

import (
	"context"
	"fmt"
	stdhtml "html"
	"io/fs"
	"os"
	"sync"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formsteps/pkg/render"
	rendertemplate "github.com/goliatone/go-formsteps/pkg/render/template"
	gotemplate "github.com/goliatone/go-formsteps/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formsteps/pkg/summary"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	manifest         *theme.Manifest
	variant          string
	policy           *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must contain summary.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme replaces the built-in manifest. defaultVariant applies when
// RenderOptions.Variant is empty.
func WithTheme(manifest *theme.Manifest, defaultVariant string) Option {
	return func(cfg *config) {
		if manifest != nil {
			cfg.manifest = manifest
		}
		cfg.variant = defaultVariant
	}
}

// WithPolicy overrides the sanitiser applied to labels and values.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func defaultPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Renderer renders a summary aggregate as an HTML fragment with one edit
// button per section.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	manifest  *theme.Manifest
	variant   string
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		manifest:   DefaultManifest(),
		variant:    "light",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = defaultPolicy()
	}

	if err := theme.NewRegistry().Register(cfg.manifest); err != nil {
		return nil, fmt.Errorf("html renderer: register theme: %w", err)
	}
	if _, err := ResolveTheme(cfg.manifest, cfg.variant); err != nil {
		return nil, err
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		manifest:  cfg.manifest,
		variant:   cfg.variant,
		policy:    cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, agg summary.Aggregate, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	variant := opts.Variant
	if variant == "" {
		variant = r.variant
	}
	resolved, err := ResolveTheme(r.manifest, variant)
	if err != nil {
		return nil, err
	}

	data := render.TemplateFuncs(opts)
	data["form"] = r.sanitise(agg)
	data["notice"] = r.clean(opts.Notice)
	data["theme"] = themeContext(resolved)

	result, err := r.templates.RenderTemplate(templateFor(resolved), data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// sanitise strips markup from every user-provided string. The template
// escapes on output, so entities produced by the policy are decoded first to
// avoid double escaping.
func (r *Renderer) sanitise(agg summary.Aggregate) summary.Aggregate {
	out := summary.Aggregate{
		FormID:   r.clean(agg.FormID),
		Title:    r.clean(agg.Title),
		Sections: make([]summary.Section, 0, len(agg.Sections)),
	}
	for _, section := range agg.Sections {
		cleaned := summary.Section{
			StepID:     r.clean(section.StepID),
			Title:      r.clean(section.Title),
			EditTarget: section.EditTarget,
			Lines:      make([]summary.Line, 0, len(section.Lines)),
		}
		for _, line := range section.Lines {
			cleaned.Lines = append(cleaned.Lines, summary.Line{
				Field: r.clean(line.Field),
				Label: r.clean(line.Label),
				Value: r.clean(line.Value),
			})
		}
		out.Sections = append(out.Sections, cleaned)
	}
	return out
}

func (r *Renderer) clean(value string) string {
	if value == "" {
		return ""
	}
	return stdhtml.UnescapeString(r.policy.Sanitize(value))
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}
