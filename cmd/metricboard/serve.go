package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/metricboard/internal/api"
	"github.com/newthinker/metricboard/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(ctx context.Context, a *app.App, log *zap.Logger) error {
		cfg := a.Config()
		log.Info("starting metricboard server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Type),
		)

		// Create API server
		server, err := api.NewServer(api.ConfigFrom(cfg), a, log)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(server.Start)
		g.Go(func() error {
			<-ctx.Done()
			log.Info("shutting down metricboard server")

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})

		return g.Wait()
	})
}
