package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DinithEdirisinghe/NutriScanBackend-sub000/internal/core"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Get the health profile of a user
// --------------------------------------------------
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT
			user_id,
			fasting_glucose,
			hba1c,
			ldl,
			hdl,
			triglycerides,
			alt,
			ast,
			creatinine,
			crp,
			bmi,
			waist_cm,
			systolic_bp,
			diastolic_bp,
			age,
			height_cm,
			weight_kg,
			COALESCE(conditions, ''),
			updated_at
		FROM health_profiles
		WHERE user_id = $1
	`

	var p Profile
	m := &p.Markers
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&m.FastingGlucose,
		&m.HbA1c,
		&m.LDL,
		&m.HDL,
		&m.Triglycerides,
		&m.ALT,
		&m.AST,
		&m.Creatinine,
		&m.CRP,
		&m.BMI,
		&m.WaistCm,
		&m.Systolic,
		&m.Diastolic,
		&m.Age,
		&p.HeightCm,
		&p.WeightKg,
		&p.Conditions,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load health profile: %w", err)
	}
	return &p, nil
}
