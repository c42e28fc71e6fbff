package dailylog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// PostgresRepository is a PostgreSQL implementation of Repository.
// Entries are stored as a JSONB array, totals as columns.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL daily log repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a log by (email, date).
func (r *PostgresRepository) Get(ctx context.Context, email, date string) (*DailyLog, error) {
	query := `
		SELECT
			id, email, log_date, entries,
			total_calories, total_protein, total_carbs, total_fat,
			version, created_at, updated_at
		FROM daily_logs
		WHERE email = $1 AND log_date = $2
	`

	var l DailyLog
	err := r.pool.QueryRow(ctx, query, email, date).Scan(
		&l.ID,
		&l.Email,
		&l.Date,
		&l.Entries,
		&l.Totals.Calories,
		&l.Totals.Protein,
		&l.Totals.Carbs,
		&l.Totals.Fat,
		&l.Version,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	if l.Entries == nil {
		l.Entries = []MealEntry{}
	}

	return &l, nil
}

// Create stores a new log with version 1.
func (r *PostgresRepository) Create(ctx context.Context, l *DailyLog) error {
	query := `
		INSERT INTO daily_logs (
			id, email, log_date, entries,
			total_calories, total_protein, total_carbs, total_fat,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		l.ID,
		l.Email,
		l.Date,
		entriesOrEmpty(l.Entries),
		l.Totals.Calories,
		l.Totals.Protein,
		l.Totals.Carbs,
		l.Totals.Fat,
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrLogExists
		}
		return err
	}

	l.Version = 1
	return nil
}

// Update replaces entries and totals if the stored version matches expectedVersion.
func (r *PostgresRepository) Update(ctx context.Context, l *DailyLog, expectedVersion int64) error {
	query := `
		UPDATE daily_logs SET
			entries = $4,
			total_calories = $5,
			total_protein = $6,
			total_carbs = $7,
			total_fat = $8,
			version = version + 1,
			updated_at = $9
		WHERE email = $1 AND log_date = $2 AND version = $3
		RETURNING version
	`

	var version int64
	err := r.pool.QueryRow(ctx, query,
		l.Email,
		l.Date,
		expectedVersion,
		entriesOrEmpty(l.Entries),
		l.Totals.Calories,
		l.Totals.Protein,
		l.Totals.Carbs,
		l.Totals.Fat,
		l.UpdatedAt,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVersionConflict
		}
		return err
	}

	l.Version = version
	return nil
}

// entriesOrEmpty keeps an empty log stored as [] rather than null.
func entriesOrEmpty(entries []MealEntry) []MealEntry {
	if entries == nil {
		return []MealEntry{}
	}
	return entries
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
