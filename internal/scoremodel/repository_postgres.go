package scoremodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Publish (insert or replace) a model
// --------------------------------------------------
func (r *PostgresRepository) Save(ctx context.Context, rec *Record) error {
	body, err := Encode(rec.Model)
	if err != nil {
		return fmt.Errorf("encode model %q: %w", rec.Name, err)
	}

	query := `
		INSERT INTO scoring_models (
			id,
			name,
			version,
			body,
			published_at
		)
		VALUES ($1, $2, $3, $4::jsonb, $5)
		ON CONFLICT (name) DO UPDATE SET
			id = EXCLUDED.id,
			version = EXCLUDED.version,
			body = EXCLUDED.body,
			published_at = EXCLUDED.published_at
	`

	_, err = r.db.Exec(
		ctx,
		query,
		rec.ID.String(),
		rec.Name,
		rec.Version,
		string(body),
		rec.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("save model %q: %w", rec.Name, err)
	}
	return nil
}

// --------------------------------------------------
// Get one model by name
// --------------------------------------------------
func (r *PostgresRepository) Get(ctx context.Context, name string) (*Record, error) {
	query := `
		SELECT id::text, name, version, body::text, published_at
		FROM scoring_models
		WHERE name = $1
	`

	rec, err := scanRecord(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrModelNotFound, name)
	}
	return rec, err
}

// --------------------------------------------------
// List all published models
// --------------------------------------------------
func (r *PostgresRepository) List(ctx context.Context) ([]*Record, error) {
	query := `
		SELECT id::text, name, version, body::text, published_at
		FROM scoring_models
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec  Record
		id   string
		body string
	)
	if err := row.Scan(&id, &rec.Name, &rec.Version, &body, &rec.PublishedAt); err != nil {
		return nil, err
	}
	return finishRecord(&rec, id, body)
}
