package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ycwu/twquant/internal/api"
	"github.com/ycwu/twquant/internal/api/handlers"
	"github.com/ycwu/twquant/internal/cache"
	"github.com/ycwu/twquant/internal/scheduler"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "啟動 API 伺服器",
	Long: `啟動個股健診 REST API 伺服器。

Endpoints:
  GET  /health                          - Health check
  GET  /api/stocks/{symbol}/diagnosis   - 個股健診結果
  GET  /api/stocks/{symbol}/news        - 個股新聞

Example:
  go run ./cmd/twquant api
  go run ./cmd/twquant api --port 8089`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 伺服器埠號 (預設讀 PORT 環境變數)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.cleanup()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	log := rt.log

	stockHandler := handlers.NewStockHandler(rt.engine, log)
	router := api.NewRouter(stockHandler, log)
	server := api.New(rt.cfg, log, router)

	// The in-memory store never drops expired entries on its own;
	// a janitor sweeps them so a long-running server stays bounded.
	var sched *scheduler.Scheduler
	if rt.memStore != nil {
		sched = scheduler.New(log)
		if err := sched.AddJob(cache.NewJanitorJob(rt.memStore, "@every 10m")); err != nil {
			return fmt.Errorf("schedule cache janitor: %w", err)
		}
		sched.Start()
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/stocks/{symbol}/diagnosis")
	fmt.Println("  GET  /api/stocks/{symbol}/news")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
