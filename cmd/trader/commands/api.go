package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonjarli/backend/internal/api"
	"github.com/stonjarli/backend/internal/api/handlers"
)

// apiCmd starts the HTTP API server
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.requireStrategies(ctx); err != nil {
			return err
		}

		router := api.NewRouter(
			handlers.NewStrategyHandler(d.strategies, d.exitEngine, d.log),
			handlers.NewTradingHandler(d.broker, d.log),
			handlers.NewRegimeHandler(d.regime, d.log),
			d.log,
		)
		server := api.New(d.cfg, d.log, router)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			d.log.WithField("signal", sig.String()).Info("Shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
}
