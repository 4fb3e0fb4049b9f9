package template

import (
	"io"
)

// TemplateRenderer is the seam renderers use to execute templates without
// depending on a specific engine.
type TemplateRenderer interface {
	// Render executes a named template, or inline template content when name
	// contains template tags.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
