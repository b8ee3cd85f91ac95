package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/bootstrap"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/config"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/mcptool"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoring"
)

var (
	port    = flag.Int("port", 8011, "Port for HTTP transport")
	host    = flag.String("host", "0.0.0.0", "Host address")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("score-mcp version 1.0.0")
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer deps.Close()

	srv := mcptool.NewServer(
		scoring.NewService(deps.Store, deps.Profiles),
		deps.Models,
		fmt.Sprintf("%s:%d", *host, *port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-sigCh:
		log.Println("Received shutdown signal")
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
