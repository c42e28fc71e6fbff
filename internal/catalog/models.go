// Package catalog stores the shared food catalog.
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/nutriguide/nutriguide/internal/api/models"
)

// Repository errors.
var (
	ErrFoodExists = errors.New("food item already exists")
)

// DefaultServing is used when a food is added without a serving description.
const DefaultServing = "1 serving"

// Search limits.
const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

// FoodItem is a catalog entry with nutrition values for one serving.
// Items are immutable once created.
type FoodItem struct {
	ID        string
	Name      string
	Calories  float64
	Protein   float64
	Carbs     float64
	Fat       float64
	Serving   string
	Source    *string
	CreatedBy *string
	CreatedAt time.Time
}

// FromInput builds a FoodItem from a request body, applying defaults.
func FromInput(in *models.FoodInput) FoodItem {
	f := FoodItem{
		Name:      strings.TrimSpace(in.Name),
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Serving:   strings.TrimSpace(in.Serving),
		Source:    in.Source,
		CreatedBy: in.CreatedBy,
	}
	if f.Serving == "" {
		f.Serving = DefaultServing
	}
	return f
}

// ToAPI converts a FoodItem to its API representation.
func (f *FoodItem) ToAPI() models.Food {
	return models.Food{
		ID:        f.ID,
		Name:      f.Name,
		Calories:  f.Calories,
		Protein:   f.Protein,
		Carbs:     f.Carbs,
		Fat:       f.Fat,
		Serving:   f.Serving,
		Source:    f.Source,
		CreatedBy: f.CreatedBy,
		CreatedAt: models.Timestamp(f.CreatedAt),
	}
}

// Validate checks the field-level constraints of a food item.
func Validate(f *FoodItem) []models.FieldError {
	var errs []models.FieldError

	if f.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	}
	for _, v := range []struct {
		field string
		value float64
	}{
		{"calories", f.Calories},
		{"protein", f.Protein},
		{"carbs", f.Carbs},
		{"fat", f.Fat},
	} {
		if v.value < 0 {
			errs = append(errs, models.FieldError{Field: v.field, Message: "must be greater than or equal to 0"})
		}
	}

	return errs
}

// ClampLimit applies the default to an unset (zero) search limit and bounds
// the rest to [1, MaxSearchLimit].
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultSearchLimit
	case limit < 1:
		return 1
	case limit > MaxSearchLimit:
		return MaxSearchLimit
	default:
		return limit
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
