package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/samegame/internal/platform/web"
	"github.com/vovakirdan/samegame/internal/storage"
)

var (
	flagHTTPAddr string
	flagHTTPDir  string
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the HTTP/JSON API",
	Long: `Start an HTTP server exposing the solver as a JSON API, plus a websocket
stream of replays.

Endpoints:
  GET  /healthz
  POST /simulate                  - Text batch or JSON boards
  GET  /boards                    - Boards in the boards directory
  GET  /boards/{id}
  POST /boards/{id}/simulate      - ?preset=, ?save=true
  GET  /boards/{id}/stream        - Websocket replay, ?step_millis=
  GET  /scores/{id}               - ?limit=
  GET  /runs/{id}/moves

Examples:
  samegame http
  samegame http --addr :9090
  curl --data-binary @boards.txt localhost:8080/simulate`,
	Run: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (overrides config)")
	httpCmd.Flags().StringVar(&flagHTTPDir, "dir", "", "Boards directory (overrides config)")
}

func runHTTP(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg, "http")

	if flagHTTPAddr != "" {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagHTTPDir != "" {
		cfg.Server.BoardsDir = flagHTTPDir
	}

	list, err := loadBoards(cfg, cfg.Server.BoardsDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading boards: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("scores database unavailable, results will not be stored", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	server := web.NewServer(web.Deps{
		Config: cfg,
		Boards: list,
		Store:  store,
		Logger: logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Server.HTTPAddr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
