package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/factory"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048",
	Long: `Start a game of 2048 in this terminal.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  Mouse drag        - Slide tiles
  U/Ctrl+Z          - Undo the last move
  N/R               - New game
  P/Esc             - Pause
  ?                 - Toggle help
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --store memory`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger := quietLogger()
	backends, err := factory.Open(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	best := backends.Tracker(context.Background(), cfg.Game.BestScoreKey, logger)
	game := t2048.New(best, engineOptions(cfg.Game)...)

	opts := tui.Options{Logger: logger}
	if backends.Scores != nil {
		opts.Scores = backends.Scores
	}

	return tui.Run(game, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Runtime.TickRate,
		Seed:     flagSeed,
	}, opts)
}
