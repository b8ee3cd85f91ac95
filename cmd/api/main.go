package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/bootstrap"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/config"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/router"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoring"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateAPI(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── STORES + MODELS ─────────────────────────
	deps, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer deps.Close()

	// ───────────────────────── MODEL WATCHER ─────────────────────────
	if cfg.WatchModels {
		w, err := scoremodel.NewWatcher(cfg.ModelDir, deps.Models.Reload)
		if err != nil {
			log.Fatalf("watch %s: %v", cfg.ModelDir, err)
		}
		go w.Run(ctx)
	}

	// ───────────────────────── SERVICES + HANDLERS ─────────────────────────
	scoringService := scoring.NewService(deps.Store, deps.Profiles)

	r := router.NewRouter(router.Handlers{
		Scoring: scoring.NewHandler(scoringService),
		Models:  scoremodel.NewHandler(deps.Models),
	}, cfg.CORSOrigins)

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		log.Printf("[API] running at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[API] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] shutdown: %v", err)
	}
}
