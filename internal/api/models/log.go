package models

// MealType is the meal slot an entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealEntry is a nutrition snapshot recorded in a daily log.
// Quantity is a pointer on input so an omitted value can default to 1.
type MealEntry struct {
	FoodID   *string  `json:"food_id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Calories float64  `json:"calories" validate:"gte=0"`
	Protein  float64  `json:"protein" validate:"gte=0"`
	Carbs    float64  `json:"carbs" validate:"gte=0"`
	Fat      float64  `json:"fat" validate:"gte=0"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	MealType MealType `json:"meal_type,omitempty" validate:"omitempty,oneof=breakfast lunch dinner snack"`
}

// DailyTotals is the summed nutrition for a daily log.
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailyLog is the response for fetching a daily log.
type DailyLog struct {
	ID      string      `json:"id,omitempty"`
	Email   string      `json:"email"`
	Date    string      `json:"date"`
	Entries []MealEntry `json:"entries"`
	Totals  DailyTotals `json:"totals"`
}

// AddEntryRequest is the request body for adding a meal entry.
type AddEntryRequest struct {
	Email string    `json:"email" validate:"required"`
	Date  string    `json:"date" validate:"required,datetime=2006-01-02"`
	Entry MealEntry `json:"entry" validate:"required"`
}

// DeleteEntryRequest is the request body for deleting a meal entry.
type DeleteEntryRequest struct {
	Email string `json:"email" validate:"required"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Index *int   `json:"index" validate:"required"`
}

// EntryStatus values reported by log mutations.
const (
	EntryStatusCreated = "created"
	EntryStatusUpdated = "updated"
	EntryStatusDeleted = "deleted"
)

// EntryResult is the response for log mutations.
type EntryResult struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}
