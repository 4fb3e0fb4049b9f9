package render

import (
	"context"

	"github.com/goliatone/go-formsteps/pkg/summary"
)

// Renderer converts a summary aggregate into a byte representation (HTML,
// plain text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, agg summary.Aggregate, options RenderOptions) ([]byte, error)
}
