package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create stores a new food item.
func (r *PostgresRepository) Create(ctx context.Context, f *FoodItem) error {
	query := `
		INSERT INTO food_items (
			id, name, calories, protein, carbs, fat,
			serving, source, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		f.ID,
		f.Name,
		f.Calories,
		f.Protein,
		f.Carbs,
		f.Fat,
		f.Serving,
		f.Source,
		f.CreatedBy,
		f.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrFoodExists
		}
		return err
	}
	return nil
}

// Search finds items by case-insensitive name substring.
func (r *PostgresRepository) Search(ctx context.Context, query string, limit int) ([]*FoodItem, error) {
	sql := `
		SELECT
			id, name, calories, protein, carbs, fat,
			serving, source, created_by, created_at
		FROM food_items
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY created_at, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*FoodItem
	for rows.Next() {
		var f FoodItem
		if err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Calories,
			&f.Protein,
			&f.Carbs,
			&f.Fat,
			&f.Serving,
			&f.Source,
			&f.CreatedBy,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &f)
	}

	return items, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes query match literally inside a LIKE pattern.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
