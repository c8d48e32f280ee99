// t2048 plays 2048 in the terminal, over SSH, or as a JSON HTTP service.
//
// Usage:
//
//	t2048 play              - Play in this terminal
//	t2048 serve             - Start SSH server for remote play
//	t2048 api               - Start the HTTP JSON API
//	t2048 scores            - Show finished games
//	t2048 best              - Show or reset the best score
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.t2048, ./configs)
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.t2048/t2048.db)
//	--store <name>  - Best score backend: sqlite, redis or memory
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

var (
	// Global flags
	flagConfig string
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagStore  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding tile game for the terminal.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Serve games as a JSON HTTP API
  scores   - View finished games
  best     - Show or reset the best score

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 serve --ssh :2222
  t2048 api --addr :8080 --store redis
  t2048 scores --tui`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/t2048.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", config.BackendSQLite, "Best score backend: sqlite, redis, memory")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Runtime.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("store") {
		cfg.Storage.Backend = flagStore
	}
	return cfg, cfg.Validate()
}

// engineOptions converts the game section to engine options.
func engineOptions(cfg config.GameConfig) []t2048.Option {
	return []t2048.Option{
		t2048.WithWinTile(cfg.WinTile),
		t2048.WithSpawn4Probability(cfg.Spawn4Probability),
	}
}

// newLogger returns a stderr logger with the given prefix.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// quietLogger discards everything; the TUI owns the terminal.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}
