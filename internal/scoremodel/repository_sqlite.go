package scoremodel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps published models in a local database file. It backs
// development setups and the model-sync tool when no Postgres is configured.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS scoring_models (
        id TEXT NOT NULL,
        name TEXT PRIMARY KEY,
        version TEXT NOT NULL,
        body TEXT NOT NULL,
        published_at TEXT NOT NULL
    );
    `
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *Record) error {
	body, err := Encode(rec.Model)
	if err != nil {
		return fmt.Errorf("encode model %q: %w", rec.Name, err)
	}

	query := `
        INSERT INTO scoring_models (id, name, version, body, published_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            id = excluded.id,
            version = excluded.version,
            body = excluded.body,
            published_at = excluded.published_at
    `
	_, err = r.db.ExecContext(ctx, query,
		rec.ID.String(), rec.Name, rec.Version, string(body),
		rec.PublishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save model %q: %w", rec.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Record, error) {
	query := `
        SELECT id, name, version, body, published_at
        FROM scoring_models
        WHERE name = ?
    `
	rec, err := scanSQLiteRecord(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return rec, err
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Record, error) {
	query := `
        SELECT id, name, version, body, published_at
        FROM scoring_models
        ORDER BY name
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanSQLiteRecord(row rowScanner) (*Record, error) {
	var (
		rec         Record
		id, body    string
		publishedAt string
	)
	if err := row.Scan(&id, &rec.Name, &rec.Version, &body, &publishedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, publishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse published_at: %w", err)
	}
	rec.PublishedAt = t
	return finishRecord(&rec, id, body)
}

func finishRecord(rec *Record, id, body string) (*Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("model %q has a malformed id: %w", rec.Name, err)
	}
	rec.ID = parsed

	m, err := DecodeBytes([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("stored model %q: %w", rec.Name, err)
	}
	rec.Model = m
	return rec, nil
}
