package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formsteps/pkg/contract"
	"github.com/goliatone/go-formsteps/pkg/definition"
	"github.com/goliatone/go-formsteps/pkg/form"
	"github.com/goliatone/go-formsteps/pkg/format"
)

type violation struct {
	file     string
	location string
	message  string
}

var errLintFailed = errors.New("lint: definitions have violations")

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check form definitions for structural problems and unknown format rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			registry := format.NewRegistry()

			var violations []violation
			for _, path := range paths {
				violations = append(violations, lintFile(cmd, registry, path)...)
			}
			if len(violations) == 0 {
				fmt.Fprintf(a.stdout, "%d definition(s) ok\n", len(paths))
				return nil
			}

			sort.Slice(violations, func(i, j int) bool {
				if violations[i].file == violations[j].file {
					if violations[i].location == violations[j].location {
						return violations[i].message < violations[j].message
					}
					return violations[i].location < violations[j].location
				}
				return violations[i].file < violations[j].file
			})
			for _, v := range violations {
				fmt.Fprintf(a.stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
			}
			return errLintFailed
		},
	}
}

func lintFile(cmd *cobra.Command, registry *format.Registry, path string) []violation {
	def, err := definition.LoadFile(path)
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}
	}

	var out []violation
	f, err := form.New(def)
	if err != nil {
		return append(out, violation{file: path, location: "document", message: err.Error()})
	}
	for _, field := range f.All() {
		if !registry.Has(field.Format()) {
			out = append(out, violation{
				file:     path,
				location: fmt.Sprintf("steps[%d].fields.%s", field.Step(), field.ID()),
				message:  fmt.Sprintf("unknown format rule %q", field.Format()),
			})
		}
		if field.Definition().OmitEmpty && field.Required {
			out = append(out, violation{
				file:     path,
				location: fmt.Sprintf("steps[%d].fields.%s", field.Step(), field.ID()),
				message:  "omitEmpty has no effect on a required field",
			})
		}
	}
	if _, err := contract.Document(cmd.Context(), def, contract.DefaultPath); err != nil {
		out = append(out, violation{file: path, location: "contract", message: err.Error()})
	}
	return out
}
