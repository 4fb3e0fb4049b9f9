package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formsteps/pkg/contract"
)

func newContractCmd(a *app) *cobra.Command {
	var (
		formatName string
		path       string
	)
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Print the OpenAPI document describing the webhook payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition()
			if err != nil {
				return err
			}
			if path == "" {
				path = a.cfg.SinkPath
			}
			doc, err := contract.Document(cmd.Context(), def, path)
			if err != nil {
				return err
			}

			raw, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("contract: encode: %w", err)
			}

			switch strings.ToLower(formatName) {
			case "json":
				var pretty map[string]any
				if err := json.Unmarshal(raw, &pretty); err != nil {
					return fmt.Errorf("contract: encode: %w", err)
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(pretty)
			case "yaml":
				var tree map[string]any
				if err := json.Unmarshal(raw, &tree); err != nil {
					return fmt.Errorf("contract: encode: %w", err)
				}
				enc := yaml.NewEncoder(a.stdout)
				enc.SetIndent(2)
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("contract: encode: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("contract: unknown format %q (json|yaml)", formatName)
			}
		},
	}
	cmd.Flags().StringVar(&formatName, "format", "json", "output format (json|yaml)")
	cmd.Flags().StringVar(&path, "path", "", "webhook path (defaults to FORMSTEPS_SINK_PATH)")
	return cmd
}
