package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectPostgres opens the pool and makes sure the scoring tables exist.
// Any failure is fatal; the API cannot serve personalised scores without it.
func ConnectPostgres(dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("[DB] connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates the tables this service reads and writes.
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// SCORING MODELS
	// -------------------------------
	modelsSQL := `
		CREATE TABLE IF NOT EXISTS scoring_models (
			id UUID NOT NULL,
			name VARCHAR(100) PRIMARY KEY,
			version VARCHAR(50) NOT NULL,
			body JSONB NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.Exec(ctx, modelsSQL); err != nil {
		return err
	}

	// -------------------------------
	// HEALTH PROFILES
	// Owned by the account service; created here so a fresh database
	// can serve /users/me/score.
	// -------------------------------
	profilesSQL := `
		CREATE TABLE IF NOT EXISTS health_profiles (
			user_id VARCHAR(64) PRIMARY KEY,
			fasting_glucose DOUBLE PRECISION NULL,
			hba1c DOUBLE PRECISION NULL,
			ldl DOUBLE PRECISION NULL,
			hdl DOUBLE PRECISION NULL,
			triglycerides DOUBLE PRECISION NULL,
			alt DOUBLE PRECISION NULL,
			ast DOUBLE PRECISION NULL,
			creatinine DOUBLE PRECISION NULL,
			crp DOUBLE PRECISION NULL,
			bmi DOUBLE PRECISION NULL,
			waist_cm DOUBLE PRECISION NULL,
			systolic_bp DOUBLE PRECISION NULL,
			diastolic_bp DOUBLE PRECISION NULL,
			age DOUBLE PRECISION NULL,
			height_cm DOUBLE PRECISION NULL,
			weight_kg DOUBLE PRECISION NULL,
			conditions TEXT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := db.Exec(ctx, profilesSQL); err != nil {
		return err
	}

	log.Println("[DB] schema initialized")
	return nil
}
