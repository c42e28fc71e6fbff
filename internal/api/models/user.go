package models

// Gender is the biological sex used for the BMR constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel selects the TDEE activity multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal is the calorie goal direction.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ProfileInput is the request body for submitting a profile.
type ProfileInput struct {
	Email         string        `json:"email" validate:"required"`
	Name          *string       `json:"name,omitempty"`
	Age           int           `json:"age" validate:"gte=10,lte=120"`
	Gender        Gender        `json:"gender" validate:"oneof=male female"`
	HeightCM      float64       `json:"height_cm" validate:"gt=0"`
	WeightKG      float64       `json:"weight_kg" validate:"gt=0"`
	ActivityLevel ActivityLevel `json:"activity_level" validate:"oneof=sedentary light moderate active very_active"`
	Goal          Goal          `json:"goal,omitempty" validate:"omitempty,oneof=lose maintain gain"`
}

// Profile represents a stored user profile.
type Profile struct {
	Email         string        `json:"email"`
	Name          *string       `json:"name,omitempty"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	HeightCM      float64       `json:"height_cm"`
	WeightKG      float64       `json:"weight_kg"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	Goal          Goal          `json:"goal"`
	CreatedAt     Timestamp     `json:"created_at"`
	UpdatedAt     Timestamp     `json:"updated_at"`
}

// CaloriePlan holds the calorie and macro targets derived from a profile.
type CaloriePlan struct {
	MaintenanceCalories float64 `json:"maintenance_calories"`
	GoalCalories        float64 `json:"goal_calories"`
	ProteinG            float64 `json:"protein_g"`
	CarbsG              float64 `json:"carbs_g"`
	FatG                float64 `json:"fat_g"`
}

// ProfileWithPlan is the response for fetching a profile.
type ProfileWithPlan struct {
	Profile Profile     `json:"profile"`
	Plan    CaloriePlan `json:"plan"`
}
