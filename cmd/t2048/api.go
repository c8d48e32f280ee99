package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/api"
	"github.com/vovakirdan/t2048/internal/factory"
	"github.com/vovakirdan/t2048/internal/session"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve 2048 games over HTTP",
	Long: `Start an HTTP server exposing 2048 games as JSON.

Routes (under /api/v1):
  POST   /games             - Start a game
  GET    /games/{id}        - Current board
  POST   /games/{id}/moves  - Slide, body {"direction":"left"}
  POST   /games/{id}/undo   - Undo the last move
  POST   /games/{id}/new    - Restart the game
  DELETE /games/{id}        - End the session
  GET    /best              - Best score
  GET    /health            - Liveness

Idle games are evicted after api.session_ttl.

Examples:
  t2048 api
  t2048 api --addr 127.0.0.1:9000 --store redis`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(cmd *cobra.Command, _ []string) {
	if err := serveAPI(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveAPI(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.API.Address = flagAPIAddr
	}

	logger := newLogger("t2048-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := factory.Open(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer backends.Close()

	best := backends.Tracker(ctx, cfg.Game.BestScoreKey, logger)

	sessCfg := session.Config{
		TTL:           cfg.API.SessionTTL,
		MaxSessions:   cfg.API.MaxSessions,
		EngineOptions: engineOptions(cfg.Game),
	}
	if backends.Scores != nil {
		sessCfg.Recorder = backends.Scores
	}
	sessions := session.NewManager(sessCfg, best, logger)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		sessions.Run(janitorCtx, cfg.API.JanitorInterval)
	}()
	defer func() {
		stopJanitor()
		<-janitorDone
	}()

	server := api.NewServer(
		api.NewRouter(api.RouterConfig{Logger: logger, Sessions: sessions}),
		api.ServerConfig{
			Address:         cfg.API.Address,
			ReadTimeout:     cfg.API.ReadTimeout,
			WriteTimeout:    cfg.API.WriteTimeout,
			ShutdownTimeout: cfg.API.ShutdownTimeout,
		},
		logger,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errCh
}
