package render

import (
	"errors"
	"fmt"
	"strings"
)

// Keys used by the bundled renderers.
const (
	KeyHeading = "summary.heading"
	KeyEdit    = "summary.edit"
	KeyEmpty   = "summary.empty"
)

// DefaultLocale is used when RenderOptions.Locale is empty.
const DefaultLocale = "pt-BR"

// ErrMissingTranslator is passed to the missing handler when no translator is
// configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler builds the string used when a key cannot be
// resolved.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Catalog is an in-memory Translator keyed by locale then message key.
// Lookups fall back from "pt-BR" to "pt" and then to DefaultLocale.
type Catalog map[string]map[string]string

// Translate implements Translator. Args are applied with fmt.Sprintf when
// present.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		if msg, ok := c[candidate][key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("render: no translation for %q in %q", key, locale)
}

// DefaultCatalog returns the strings shipped with the bundled renderers.
func DefaultCatalog() Catalog {
	return Catalog{
		"pt-BR": {
			KeyHeading: "Resumo",
			KeyEdit:    "Editar",
			KeyEmpty:   "Nenhuma informação preenchida",
		},
		"en": {
			KeyHeading: "Summary",
			KeyEdit:    "Edit",
			KeyEmpty:   "Nothing filled in",
		},
	}
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, ok := strings.Cut(locale, "-"); ok {
			chain = append(chain, base)
		}
	}
	return append(chain, DefaultLocale)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, nil, ErrMissingTranslator)
		}
		return fallbackOrKey(fallback, key)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if onMissing != nil {
		return onMissing(locale, key, nil, err)
	}
	return fallbackOrKey(fallback, key)
}

func fallbackOrKey(fallback, key string) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// TemplateFuncs returns helpers for template engines bound to opts:
//
//	translate(key) string
//	current_locale() string
func TemplateFuncs(opts RenderOptions) map[string]any {
	return map[string]any{
		"translate": func(key string) string {
			return opts.Text(key, "")
		},
		"current_locale": func() string {
			if opts.Locale == "" {
				return DefaultLocale
			}
			return opts.Locale
		},
	}
}
