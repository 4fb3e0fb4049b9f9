package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsteps"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/render"
	"github.com/goliatone/go-formsteps/pkg/renderers/html"
	"github.com/goliatone/go-formsteps/pkg/sequencer"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		valuesPath string
		formatName string
		locale     string
		variant    string
		output     string
		skipChecks bool
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Render the summary for a file of field values",
		Long: `Reads a YAML or JSON object mapping field ids to raw values, applies the
form's formatting and visibility rules, and renders the summary step.

Every step is validated on the way to the summary unless --skip-validation is
given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := readValues(valuesPath)
			if err != nil {
				return err
			}
			seq, err := formsteps.New(a.baseOptions()...)
			if err != nil {
				return err
			}
			if err := fillAll(seq, values, !skipChecks); err != nil {
				return err
			}

			if variant == "" {
				variant = a.cfg.ThemeVariant
			}
			registry, err := formsteps.NewRenderRegistry(html.WithTheme(html.DefaultManifest(), variant))
			if err != nil {
				return err
			}
			out, _, err := formsteps.RenderSummary(cmd.Context(), seq, registry, formatName, render.RenderOptions{
				Locale:  locale,
				Variant: variant,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = a.stdout.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("summary: write %s: %w", output, err)
			}
			fmt.Fprintf(a.stdout, "Summary written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML or JSON file with field values")
	cmd.Flags().StringVar(&formatName, "format", "html", "renderer to use (html|text)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale for the summary headings")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant (overrides FORMSTEPS_THEME_VARIANT)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&skipChecks, "skip-validation", false, "jump to the summary without validating each step")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func readValues(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("summary: read values: %w", err)
	}
	var values map[string]string
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("summary: parse values %s: %w", path, err)
	}
	return values, nil
}

// fillAll stores values step by step so visibility is derived the same way an
// interactive session would derive it, then moves to the last step.
func fillAll(seq *sequencer.Sequencer, values map[string]string, validate bool) error {
	f := seq.Form()
	for id := range values {
		if _, ok := f.Field(id); !ok {
			return fmt.Errorf("summary: values file: %w: %q", form.ErrUnknownField, id)
		}
	}

	disc := f.Definition().Discriminant.Field
	if value, ok := values[disc]; ok && disc != "" {
		if _, err := seq.SetField(disc, value); err != nil {
			return err
		}
	}

	for _, field := range f.All() {
		if field.ID() == disc {
			continue
		}
		if value, ok := values[field.ID()]; ok {
			if _, err := seq.SetField(field.ID(), value); err != nil {
				return err
			}
		}
	}

	if !validate {
		return seq.JumpTo(seq.Len() - 1)
	}
	for !seq.IsLast() {
		if seq.Advance() {
			continue
		}
		result := seq.Validate()
		return fmt.Errorf("summary: step %q is incomplete: %s", seq.Step().ID, strings.Join(result.Fields(), ", "))
	}
	return nil
}
