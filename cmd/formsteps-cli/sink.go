package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formsteps/components/sink"
	"github.com/goliatone/go-formsteps/pkg/contract"
)

const shutdownTimeout = 5 * time.Second

func newSinkCmd(a *app) *cobra.Command {
	var (
		addr       string
		noValidate bool
	)
	cmd := &cobra.Command{
		Use:   "sink",
		Short: "Run a local webhook receiver that validates and prints submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.SinkAddr
			}
			router, pattern, err := a.sinkRouter(!noValidate)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("sink listening", zap.String("addr", addr), zap.String("path", pattern))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("sink: serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			a.logger.Info("sink shutting down")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("sink: shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to FORMSTEPS_SINK_ADDR)")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "accept payloads without checking them against the contract")
	return cmd
}

// sinkRouter mounts the sink component on a chi router. Accepted receipts are
// printed to stdout as JSON lines.
func (a *app) sinkRouter(validate bool) (http.Handler, string, error) {
	opts := []sink.OptionFn{
		sink.WithRoutePath(a.cfg.SinkPath),
		sink.WithLogger(a.logger),
		sink.WithOnReceive(printReceipt(a.stdout)),
	}
	if validate {
		def, err := a.definition()
		if err != nil {
			return nil, "", err
		}
		opts = append(opts, sink.WithSchema(contract.Schema(def)))
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	pattern, err := sink.New(opts...).RegisterRoutes(router, "/")
	if err != nil {
		return nil, "", err
	}
	return router, pattern, nil
}

func printReceipt(out io.Writer) sink.ReceiveFunc {
	var mu sync.Mutex
	return func(_ context.Context, receipt sink.Receipt) error {
		mu.Lock()
		defer mu.Unlock()
		return json.NewEncoder(out).Encode(receipt)
	}
}
