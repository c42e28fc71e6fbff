// Package dailylog keeps per-day meal logs and their nutrition totals.
//
// A log is identified by (email, date). Its totals are always derived from
// its entries: every mutation recomputes them from scratch, so stored totals
// can never drift from the entries they summarize.
package dailylog

import (
	"errors"
	"time"

	"github.com/nutriguide/nutriguide/internal/api/models"
)

// Repository errors.
var (
	ErrLogNotFound     = errors.New("daily log not found")
	ErrLogExists       = errors.New("daily log already exists")
	ErrVersionConflict = errors.New("daily log was modified concurrently")
)

// Service errors.
var (
	ErrInvalidIndex = errors.New("invalid entry index")
	ErrConflict     = errors.New("daily log is being modified concurrently, try again")
)

// DateLayout is the ISO calendar date format used as part of the log key.
const DateLayout = "2006-01-02"

// Defaults applied to meal entries.
const (
	DefaultQuantity = 1.0
	DefaultMealType = models.MealBreakfast
)

// MealEntry is a snapshot of nutritional values at logging time.
// Values are per serving; Quantity multiplies them when totals are computed.
type MealEntry struct {
	FoodID   *string         `json:"food_id,omitempty"`
	Name     string          `json:"name"`
	Calories float64         `json:"calories"`
	Protein  float64         `json:"protein"`
	Carbs    float64         `json:"carbs"`
	Fat      float64         `json:"fat"`
	Quantity float64         `json:"quantity"`
	MealType models.MealType `json:"meal_type"`
}

// Totals is the summed nutrition of a log, each field rounded to one decimal.
type Totals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// DailyLog is the ordered list of meal entries for one user and date.
type DailyLog struct {
	ID        string
	Email     string
	Date      string
	Entries   []MealEntry
	Totals    Totals
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmptyLog returns the view of a log that has never been written.
func EmptyLog(email, date string) *DailyLog {
	return &DailyLog{
		Email:   email,
		Date:    date,
		Entries: []MealEntry{},
	}
}

// EntryFromAPI builds a MealEntry from a request body, applying defaults.
func EntryFromAPI(in *models.MealEntry) MealEntry {
	e := MealEntry{
		FoodID:   in.FoodID,
		Name:     in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fat:      in.Fat,
		Quantity: DefaultQuantity,
		MealType: in.MealType,
	}
	if in.Quantity != nil {
		e.Quantity = *in.Quantity
	}
	if e.MealType == "" {
		e.MealType = DefaultMealType
	}
	return e
}

// ToAPI converts a MealEntry to its API representation.
func (e MealEntry) ToAPI() models.MealEntry {
	qty := e.Quantity
	return models.MealEntry{
		FoodID:   e.FoodID,
		Name:     e.Name,
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
		Quantity: &qty,
		MealType: e.MealType,
	}
}

// ToAPI converts a DailyLog to its API representation.
func (l *DailyLog) ToAPI() models.DailyLog {
	entries := make([]models.MealEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, e.ToAPI())
	}
	return models.DailyLog{
		ID:      l.ID,
		Email:   l.Email,
		Date:    l.Date,
		Entries: entries,
		Totals: models.DailyTotals{
			Calories: l.Totals.Calories,
			Protein:  l.Totals.Protein,
			Carbs:    l.Totals.Carbs,
			Fat:      l.Totals.Fat,
		},
	}
}

// ValidateKey checks the (email, date) key of a log.
func ValidateKey(email, date string) []models.FieldError {
	var errs []models.FieldError
	if email == "" {
		errs = append(errs, models.FieldError{Field: "email", Message: "is required"})
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		errs = append(errs, models.FieldError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}
	return errs
}

// ValidateEntry checks the field-level constraints of a meal entry.
func ValidateEntry(e *MealEntry) []models.FieldError {
	var errs []models.FieldError

	if e.Name == "" {
		errs = append(errs, models.FieldError{Field: "entry.name", Message: "is required"})
	}
	errs = nonNegative(errs, e.Calories, "entry.calories")
	errs = nonNegative(errs, e.Protein, "entry.protein")
	errs = nonNegative(errs, e.Carbs, "entry.carbs")
	errs = nonNegative(errs, e.Fat, "entry.fat")
	if e.Quantity <= 0 {
		errs = append(errs, models.FieldError{Field: "entry.quantity", Message: "must be greater than 0"})
	}
	switch e.MealType {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
	default:
		errs = append(errs, models.FieldError{
			Field:   "entry.meal_type",
			Message: "must be one of: breakfast, lunch, dinner, snack",
		})
	}

	return errs
}

func nonNegative(errs []models.FieldError, value float64, field string) []models.FieldError {
	if value < 0 {
		errs = append(errs, models.FieldError{Field: field, Message: "must be greater than or equal to 0"})
	}
	return errs
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
