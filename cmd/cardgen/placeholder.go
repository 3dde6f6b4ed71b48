package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/palacelab/cardgen/internal/placeholder"
)

var (
	placeholderOut  string
	placeholderSize int
)

var placeholderCmd = &cobra.Command{
	Use:   "placeholder <topic>",
	Short: "Render a placeholder card image",
	Long: `Render a PNG placeholder tile for a topic, used when no suitable
Wikimedia image can be found.

Examples:
  cardgen placeholder "quantum computing" -o quantum.png`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaceholder,
}

func init() {
	placeholderCmd.Flags().StringVarP(&placeholderOut, "out", "o", "placeholder.png", "Output file")
	placeholderCmd.Flags().IntVar(&placeholderSize, "size", placeholder.DefaultSize, "Image size in pixels")
	rootCmd.AddCommand(placeholderCmd)
}

func runPlaceholder(cmd *cobra.Command, args []string) error {
	png, err := placeholder.Render(args[0], placeholderSize)
	if err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}

	if err := os.WriteFile(placeholderOut, png, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	slog.Info("placeholder written", "path", placeholderOut, "size", placeholderSize)
	return nil
}
