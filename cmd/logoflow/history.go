package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/iammorganparry/logoflow/internal/client"
	"github.com/iammorganparry/logoflow/internal/config"
	"github.com/iammorganparry/logoflow/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generations",
	Long:  `Prints the generations recorded by a running logoflow backend, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("backend") {
			cfg.BackendURL, _ = cmd.Flags().GetString("backend")
		}
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")

		gk := models.GenerationKind(kind)
		if gk != "" && !gk.IsValid() {
			return fmt.Errorf("unknown kind %q (want names or logo)", kind)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		resp, err := client.New(cfg.BackendURL).History(ctx, gk, limit)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		if len(resp.Generations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No generations recorded yet.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), historyTable(resp.Generations))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("backend", "http://localhost:5000", "Backend base URL (overrides LOGOFLOW_BACKEND_URL)")
	historyCmd.Flags().String("kind", "", "Only show names or logo generations")
	historyCmd.Flags().IntP("limit", "n", 0, "Maximum rows (server default when 0)")
}

func historyTable(generations []models.Generation) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("WHEN", "KIND", "MODEL", "NAME", "RESULT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for _, g := range generations {
		t.Row(
			time.UnixMilli(g.CreatedAt).Format("2006-01-02 15:04"),
			string(g.Kind),
			g.Model,
			g.Name,
			truncate(g.Result, 48),
		)
	}
	return t.Render()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
