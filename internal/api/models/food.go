package models

// FoodInput is the request body for adding a catalog food.
type FoodInput struct {
	Name      string  `json:"name" validate:"required"`
	Calories  float64 `json:"calories" validate:"gte=0"`
	Protein   float64 `json:"protein" validate:"gte=0"`
	Carbs     float64 `json:"carbs" validate:"gte=0"`
	Fat       float64 `json:"fat" validate:"gte=0"`
	Serving   string  `json:"serving,omitempty"`
	Source    *string `json:"source,omitempty"`
	CreatedBy *string `json:"created_by,omitempty"`
}

// Food represents a catalog food item.
type Food struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Serving   string    `json:"serving"`
	Source    *string   `json:"source,omitempty"`
	CreatedBy *string   `json:"created_by,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// FoodCreated is returned after adding a catalog food.
type FoodCreated struct {
	ID string `json:"id"`
}
