package formsteps

import (
	"io/fs"

	"github.com/goliatone/go-formsteps/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in html summary templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
