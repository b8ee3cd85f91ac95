package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/config"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/db"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/storage"
)

var (
	dir      = flag.String("dir", "", "Directory of model JSON files (defaults to MODEL_DIR)")
	check    = flag.Bool("check", false, "Validate files only, do not publish")
	upload   = flag.Bool("upload", false, "Also upload each file to the R2 bucket")
	interval = flag.Duration("interval", 0, "Re-sync on this interval instead of exiting")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dir == "" {
		*dir = cfg.ModelDir
	}
	if *dir == "" {
		log.Fatal("no model directory: pass -dir or set MODEL_DIR")
	}

	if *check {
		if err := validateDir(*dir); err != nil {
			log.Fatal(err)
		}
		log.Println("[SYNC] all models valid")
		return
	}

	repo, closeRepo := openRepository(cfg)
	defer closeRepo()

	var bucket *storage.R2Client
	if *upload {
		if !cfg.R2.Enabled() {
			log.Fatal("-upload needs R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME")
		}
		bucket, err = storage.NewR2Client(context.Background(), cfg.R2)
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := syncDir(ctx, *dir, repo, bucket, cfg.ModelPrefix); err != nil {
		log.Fatal(err)
	}
	if *interval <= 0 {
		return
	}

	log.Printf("[SYNC] re-syncing %s every %s. Press Ctrl+C to stop.", *dir, *interval)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := syncDir(ctx, *dir, repo, bucket, cfg.ModelPrefix); err != nil {
				log.Printf("[SYNC] %v", err)
			}
		}
	}
}

func openRepository(cfg config.Config) (scoremodel.Repository, func()) {
	if cfg.DatabaseURL != "" {
		pool := db.ConnectPostgres(cfg.DatabaseURL)
		return scoremodel.NewPostgresRepository(pool), pool.Close
	}
	if cfg.SQLitePath != "" {
		repo, err := scoremodel.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		return repo, func() { repo.Close() }
	}
	log.Fatal("set DATABASE_URL or SQLITE_PATH to publish models")
	return nil, nil
}

func modelFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func validateDir(dir string) error {
	files, err := modelFiles(dir)
	if err != nil {
		return err
	}
	failed := 0
	for _, f := range files {
		if _, err := scoremodel.LoadFile(f); err != nil {
			log.Printf("[SYNC] %v", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d model files invalid", failed, len(files))
	}
	return nil
}

// syncDir publishes every valid file. Invalid files are reported and
// skipped so one bad file does not block the rest.
func syncDir(ctx context.Context, dir string, repo scoremodel.Repository, bucket *storage.R2Client, prefix string) error {
	files, err := modelFiles(dir)
	if err != nil {
		return err
	}

	published := 0
	for _, f := range files {
		m, err := scoremodel.LoadFile(f)
		if err != nil {
			log.Printf("[SYNC] skipping %v", err)
			continue
		}
		if err := repo.Save(ctx, scoremodel.NewRecord(m)); err != nil {
			return err
		}
		if bucket != nil {
			if err := storage.UploadFile(ctx, bucket, scoremodel.ObjectKey(prefix, m.Name), f); err != nil {
				return err
			}
		}
		log.Printf("[SYNC] published %s %s", m.Name, m.Version)
		published++
	}
	log.Printf("[SYNC] %d of %d models published", published, len(files))
	return nil
}
