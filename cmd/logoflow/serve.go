package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iammorganparry/logoflow/internal/api"
	"github.com/iammorganparry/logoflow/internal/branding"
	"github.com/iammorganparry/logoflow/internal/config"
	"github.com/iammorganparry/logoflow/internal/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the generation backend",
	Long:  `Starts the HTTP backend exposing /api/generate-names and /api/generate-logo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 5000, "Port to listen on (overrides PORT)")
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	opts := api.Options{
		Metrics:          api.NewMetrics(),
		DefaultNameModel: cfg.DefaultNameModel,
		LogoModel:        cfg.LogoModel,
	}

	// History
	if cfg.HistoryEnabled {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close()
		opts.DB = db
		opts.History = store.NewGenerationStore(db)
		logger.Info("history enabled", "path", cfg.DBPath)
	}

	// Providers; a missing credential leaves the source unset so the
	// endpoint reports a configuration error.
	if cfg.GoogleAPIKey != "" {
		gemini, err := branding.NewGeminiModel(ctx, cfg.GoogleAPIKey)
		if err != nil {
			return err
		}
		opts.Names = branding.NewNameGenerator(gemini)
	} else {
		logger.Warn("GOOGLE_API_KEY not set, name generation disabled")
	}
	if cfg.HFAPIToken != "" {
		opts.Logos = branding.NewLogoPainter(cfg.HFBaseURL, cfg.HFAPIToken)
	} else {
		logger.Warn("HF_API_TOKEN not set, logo generation disabled")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     api.NewRouter(opts, logger),
		ReadTimeout: 30 * time.Second,
		// Image generation can take minutes on a cold model
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("logoflow server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			return srv.Close()
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
