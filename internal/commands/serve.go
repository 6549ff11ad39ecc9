package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/fiscmind/fiscmind/internal/logger"
	"github.com/fiscmind/fiscmind/internal/metrics"
	"github.com/fiscmind/fiscmind/internal/server"
	"github.com/fiscmind/fiscmind/internal/statements"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(repoDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statement generation and rates over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(*repoDir)
			if err != nil {
				return err
			}
			if addr != "" {
				p.cfg.Server.Addr = addr
			}
			if p.cfg.Server.Addr == "" {
				p.cfg.Server.Addr = ":8080"
			}
			// The standard may be left unset; requests then must name one.
			overrides, err := p.cfg.Overrides()
			if err != nil {
				return fmt.Errorf("cash_flow.overrides: %w", err)
			}

			log := logger.FromContext(cmd.Context())
			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m := metrics.New(reg)

			fetcher := p.fetcher()
			gen := statements.NewGenerator(p.chart,
				statements.WithRateFetcher(fetcher),
				statements.WithLogger(log),
				statements.WithMetrics(m),
			)
			handler := server.New(server.Options{
				Generator: gen,
				Fetcher:   fetcher,
				Standard:  p.cfg.Reporting.Standard,
				Currency:  p.cfg.Reporting.Currency,
				Overrides: overrides,
				Logger:    log,
				Metrics:   m,
				Gatherer:  reg,
			})

			srv := &http.Server{
				Addr:         p.cfg.Server.Addr,
				Handler:      handler,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serving: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then :8080)")

	return cmd
}
