package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/factory"
)

var flagBestReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the best score",
	Long: `Print the best score kept by the configured backend.

Examples:
  t2048 best
  t2048 best --store redis
  t2048 best --reset`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagBestReset, "reset", false, "Reset the best score to zero")
}

func runBest(cmd *cobra.Command, _ []string) {
	if err := showBest(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showBest(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger("t2048")
	backends, err := factory.Open(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	ctx := context.Background()
	tracker := backends.Tracker(ctx, cfg.Game.BestScoreKey, logger)

	if flagBestReset {
		if err := tracker.Reset(ctx); err != nil {
			return err
		}
		fmt.Println("Best score reset.")
		return nil
	}

	fmt.Printf("Best: %d\n", tracker.Best())
	return nil
}
