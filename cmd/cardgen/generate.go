package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/palacelab/cardgen/internal/app"
	"github.com/palacelab/cardgen/internal/config"
)

var generateSnapshot bool

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate learning cards for a topic",
	Long: `Generate a card set for the given topic and print it as JSON.

Examples:
  cardgen generate "black holes"
  cardgen generate --snapshot "the French Revolution"`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateSnapshot, "snapshot", false, "Also write the result to the latest-cards snapshot")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	topic := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGeneration(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer a.Close()

	slog.Info("generating cards", "topic", topic)
	cs, err := a.GenerateCards(ctx, topic)
	if err != nil {
		return fmt.Errorf("generate cards: %w", err)
	}

	if generateSnapshot {
		if err := a.Snapshot.Save(cs); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		slog.Info("snapshot written", "path", cfg.LatestCardsPath, "cards", len(cs))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cs)
}
