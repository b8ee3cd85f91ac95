package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/config"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/core"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/db"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/profile"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/scoremodel"
	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/storage"
)

// Deps are the long-lived resources shared by the binaries.
type Deps struct {
	Pool      *pgxpool.Pool
	ModelRepo scoremodel.Repository
	Profiles  core.ProfileReader
	Bucket    *storage.R2Client
	Store     *scoremodel.Store
	Models    *scoremodel.Service

	closers []func()
}

func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// Open connects the configured backends and publishes the first catalog.
// Model sources are layered built-in, bucket, directory, then repository, so
// models published through the API win over files with the same name.
func Open(ctx context.Context, cfg config.Config) (*Deps, error) {
	d := &Deps{}

	var err error
	d.ModelRepo, d.Profiles, err = openRepositories(cfg, d)
	if err != nil {
		d.Close()
		return nil, err
	}

	sources := []scoremodel.Source{scoremodel.BuiltinSource{}}

	if cfg.R2.Enabled() {
		d.Bucket, err = storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("r2 init: %w", err)
		}
		sources = append(sources, scoremodel.ObjectSource{Store: d.Bucket, Prefix: cfg.ModelPrefix})
	}
	if cfg.ModelDir != "" {
		sources = append(sources, scoremodel.DirSource{Dir: cfg.ModelDir})
	}
	sources = append(sources, scoremodel.RepositorySource{Repo: d.ModelRepo})

	d.Store = scoremodel.NewStore(nil)
	d.Models = scoremodel.NewService(d.Store, d.ModelRepo, cfg.ModelDefault, sources...)
	if err := d.Models.Reload(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func openRepositories(cfg config.Config, d *Deps) (scoremodel.Repository, core.ProfileReader, error) {
	switch {
	case cfg.DatabaseURL != "":
		d.Pool = db.ConnectPostgres(cfg.DatabaseURL)
		d.closers = append(d.closers, d.Pool.Close)
		return scoremodel.NewPostgresRepository(d.Pool),
			profile.NewService(profile.NewPostgresRepository(d.Pool)), nil

	case cfg.SQLitePath != "":
		repo, err := scoremodel.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		d.closers = append(d.closers, func() { repo.Close() })
		log.Printf("[BOOT] no DATABASE_URL, models stored in %s and profiles unavailable", cfg.SQLitePath)
		return repo, profile.NewService(profile.NewMemoryRepository()), nil
	}

	log.Println("[BOOT] no database configured, using in-memory stores")
	return scoremodel.NewMemoryRepository(), profile.NewService(profile.NewMemoryRepository()), nil
}
