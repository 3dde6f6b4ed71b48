package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palacelab/cardgen/internal/config"
	"github.com/palacelab/cardgen/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generations",
	Long:  `List the most recent card generations recorded by the API.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum generations to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	history, err := store.NewHistory(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer history.Close()

	if err := history.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	gens, err := history.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("list generations: %w", err)
	}

	if len(gens) == 0 {
		fmt.Println("no generations recorded")
		return nil
	}

	for _, g := range gens {
		fmt.Printf("%6d  %s  %2d cards  %s\n",
			g.ID, g.CreatedAt.Format("2006-01-02 15:04"), g.CardCount, g.Topic)
	}

	return nil
}
