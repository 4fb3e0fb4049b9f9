package text

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-formsteps/pkg/render"
	"github.com/goliatone/go-formsteps/pkg/summary"
)

// Renderer writes a summary as aligned plain text. Each section header ends
// with an "[edit N]" marker where N is the one-based step number.
type Renderer struct{}

var _ render.Renderer = Renderer{}

// New returns the plain-text renderer.
func New() Renderer {
	return Renderer{}
}

func (Renderer) Name() string {
	return "text"
}

func (Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (Renderer) Render(ctx context.Context, agg summary.Aggregate, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	heading := opts.Text(render.KeyHeading, "Summary")
	if agg.Title != "" {
		heading = agg.Title + " - " + heading
	}
	fmt.Fprintln(&buf, heading)
	fmt.Fprintln(&buf, strings.Repeat("=", len([]rune(heading))))

	if opts.Notice != "" {
		fmt.Fprintf(&buf, "\n%s\n", opts.Notice)
	}

	if len(agg.Sections) == 0 {
		fmt.Fprintf(&buf, "\n%s\n", opts.Text(render.KeyEmpty, "Nothing filled in"))
		return buf.Bytes(), nil
	}

	edit := strings.ToLower(opts.Text(render.KeyEdit, "edit"))
	for _, section := range agg.Sections {
		fmt.Fprintf(&buf, "\n%s [%s %d]\n", section.Title, edit, section.EditTarget+1)

		tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		for _, line := range section.Lines {
			fmt.Fprintf(tw, "  %s:\t%s\n", line.Label, line.Value)
		}
		if err := tw.Flush(); err != nil {
			return nil, fmt.Errorf("text renderer: flush section %q: %w", section.StepID, err)
		}
	}
	return buf.Bytes(), nil
}
