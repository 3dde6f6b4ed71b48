package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/palacelab/cardgen/internal/config"
	"github.com/palacelab/cardgen/internal/server"
	"github.com/palacelab/cardgen/internal/store"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Serve the latest generated cards",
	Long: `Run the read-only service that serves the most recent card set
in the placed-card format consumed by spatial clients.`,
	RunE: runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForLatest(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	router := server.NewLatestRouter(store.NewSnapshot(cfg.LatestCardsPath))

	srv := &http.Server{
		Addr:    cfg.LatestAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting latest-cards service",
			"addr", cfg.LatestAddr,
			"path", cfg.LatestCardsPath,
		)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
