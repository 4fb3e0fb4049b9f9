package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps"
	"github.com/goliatone/go-formsteps/internal/config"
	"github.com/goliatone/go-formsteps/internal/logging"
	"github.com/goliatone/go-formsteps/pkg/definition"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the persistent pre-run has
// loaded configuration.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	envFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "formsteps-cli",
		Short:         "Multi-step form runtime: fill, summarise, and deliver the closed-deal form",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional .env file to load before reading the environment")

	root.AddCommand(
		newRunCmd(a),
		newSummaryCmd(a),
		newContractCmd(a),
		newLintCmd(a),
		newSinkCmd(a),
	)
	return root
}

// definition returns the configured definition, or the embedded default.
func (a *app) definition() (definition.Definition, error) {
	if a.cfg.Definition == "" {
		return definition.Default(), nil
	}
	def, err := definition.LoadFile(a.cfg.Definition)
	if err != nil {
		return definition.Definition{}, fmt.Errorf("load definition: %w", err)
	}
	return def, nil
}

func (a *app) baseOptions() []formsteps.Option {
	opts := []formsteps.Option{formsteps.WithLogger(a.logger)}
	if a.cfg.Definition != "" {
		opts = append(opts, formsteps.WithDefinitionFile(a.cfg.Definition))
	}
	return opts
}
