package render

// RenderOptions describe per-call data that renderers use to customise their
// output without touching the aggregate.
type RenderOptions struct {
	// Locale selects the catalogue used for the renderer's own strings (edit
	// button, headings). Field labels and values are rendered as given.
	Locale string
	// Translator resolves the renderer's strings. Nil falls back to
	// DefaultCatalog.
	Translator Translator
	// OnMissing controls the string used when a key cannot be translated.
	OnMissing MissingTranslationHandler
	// Variant selects a theme variant for renderers that support theming.
	Variant string
	// Notice is an optional banner shown above the sections, typically the
	// outcome of the last submission.
	Notice string
}

// Text resolves key through the configured translator, falling back to the
// default catalogue and then to fallback.
func (o RenderOptions) Text(key, fallback string) string {
	t := o.Translator
	if t == nil {
		t = DefaultCatalog()
	}
	return translate(o.Locale, key, fallback, t, o.OnMissing)
}
