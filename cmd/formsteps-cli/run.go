package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps"
	"github.com/goliatone/go-formsteps/pkg/render"
	"github.com/goliatone/go-formsteps/pkg/renderers/text"
	"github.com/goliatone/go-formsteps/pkg/renderers/tui"
	"github.com/goliatone/go-formsteps/pkg/transport/webhook"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		webhookURL string
		locale     string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill the form interactively and submit it to the webhook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if webhookURL == "" {
				webhookURL = a.cfg.WebhookURL
			}
			if webhookURL == "" {
				return errors.New("run: a webhook URL is required (FORMSTEPS_WEBHOOK_URL or --webhook)")
			}

			session := tui.New(
				tui.WithPromptDriver(tui.NewSurveyDriver(a.stdout)),
				tui.WithLogger(a.logger),
				tui.WithSummaryRenderer(text.New(), render.RenderOptions{Locale: locale}),
			)

			opts := append(a.baseOptions(),
				formsteps.WithWebhook(webhookURL,
					webhook.WithTimeout(a.cfg.WebhookTimeout),
				),
				formsteps.WithObserver(session),
			)
			seq, err := formsteps.New(opts...)
			if err != nil {
				return err
			}

			result, err := session.Run(cmd.Context(), seq)
			if errors.Is(err, tui.ErrAborted) {
				a.logger.Info("session aborted", zap.Int("step", seq.Current()))
				return nil
			}
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			a.logger.Debug("session finished", zap.String("outcome", result.Kind.String()))
			return nil
		},
	}
	cmd.Flags().StringVar(&webhookURL, "webhook", "", "webhook URL (overrides FORMSTEPS_WEBHOOK_URL)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale for the summary headings")
	return cmd
}
