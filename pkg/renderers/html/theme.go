package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// TemplateKey names the manifest template entry used for the summary. A
// manifest without it renders TemplateName.
const TemplateKey = "formsteps.summary"

// DefaultManifest is the built-in theme with light and dark variants.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "formsteps",
		Version: "1.0.0",
		Templates: map[string]string{
			TemplateKey: TemplateName,
		},
		Tokens: map[string]string{
			"color-primary":    "#1d4ed8",
			"color-surface":    "#ffffff",
			"color-text":       "#111827",
			"color-muted":      "#6b7280",
			"color-error":      "#b91c1c",
			"radius-container": "0.5rem",
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"color-primary": "#60a5fa",
					"color-surface": "#111827",
					"color-text":    "#f9fafb",
					"color-muted":   "#9ca3af",
				},
			},
		},
	}
}

// ResolveTheme merges the variant's tokens over the manifest's and derives
// one CSS custom property per token. An unknown variant is an error; an empty
// variant uses the base tokens.
func ResolveTheme(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, nil
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("html renderer: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}

	partials := make(map[string]string, len(manifest.Templates))
	for key, value := range manifest.Templates {
		partials[key] = value
	}
	if variant != "" {
		for key, value := range manifest.Variants[variant].Templates {
			partials[key] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
	}, nil
}

func templateFor(cfg *theme.RendererConfig) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[TemplateKey]); name != "" {
			return strings.TrimSuffix(name, ".tpl")
		}
	}
	return TemplateName
}

// cssVarsStyle renders vars as a deterministic inline style declaration.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
