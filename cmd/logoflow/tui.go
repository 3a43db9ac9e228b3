package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iammorganparry/logoflow/internal/client"
	"github.com/iammorganparry/logoflow/internal/config"
	"github.com/iammorganparry/logoflow/internal/controller"
	"github.com/iammorganparry/logoflow/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal front end",
	Long:  `Opens the interactive dashboard that talks to a running logoflow backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.BackendURL, _ = cmd.Flags().GetString("backend")
		}
		if cmd.Flags().Changed("out") {
			cfg.LogoOutputDir, _ = cmd.Flags().GetString("out")
		}

		// The alt screen owns stdout, so logs go to a file or nowhere
		var logOut io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOut = f
		}
		logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

		backend := client.New(cfg.BackendURL)
		logger.Info("starting terminal front end", "backend", cfg.BackendURL)

		surface := tui.NewSurface()
		ctrl := controller.New(surface, backend, logger)
		model := tui.NewModel(cmd.Context(), ctrl, surface, tui.Options{
			Models:       cfg.NameModels,
			DefaultModel: cfg.DefaultNameModel,
			OutputDir:    cfg.LogoOutputDir,
			Health:       backend,
		})

		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().String("backend", "http://localhost:5000", "Backend base URL (overrides LOGOFLOW_BACKEND_URL)")
	tuiCmd.Flags().String("out", ".", "Directory saved logos are written to (overrides LOGO_OUTPUT_DIR)")
	tuiCmd.Flags().String("log-file", "", "Write debug logs to this file")
}
