package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a profile by email.
func (r *PostgresRepository) Get(ctx context.Context, email string) (*Profile, error) {
	query := `
		SELECT
			email, name, age, gender, height_cm, weight_kg,
			activity_level, goal, created_at, updated_at
		FROM user_profiles
		WHERE email = $1
	`

	var p Profile
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&p.Email,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.HeightCM,
		&p.WeightKG,
		&p.ActivityLevel,
		&p.Goal,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Upsert creates a profile if it doesn't exist, or replaces it if it does.
// p.CreatedAt is set to the stored creation time.
func (r *PostgresRepository) Upsert(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO user_profiles (
			email, name, age, gender, height_cm, weight_kg,
			activity_level, goal, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`

	return r.pool.QueryRow(ctx, query,
		p.Email,
		p.Name,
		p.Age,
		p.Gender,
		p.HeightCM,
		p.WeightKG,
		p.ActivityLevel,
		p.Goal,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.CreatedAt)
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
