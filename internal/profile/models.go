// Package profile provides user profile storage and validation.
//
// Profiles are keyed by email. Submitting a profile for an email that
// already exists replaces every field except CreatedAt.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nutriguide/nutriguide/internal/api/models"
)

// Repository errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Field limits.
const (
	MinAge = 10
	MaxAge = 120
)

// Profile is a user's body metrics and calorie goal.
type Profile struct {
	Email         string
	Name          *string
	Age           int
	Gender        models.Gender
	HeightCM      float64
	WeightKG      float64
	ActivityLevel models.ActivityLevel
	Goal          models.Goal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FromInput builds a Profile from a request body, applying defaults.
func FromInput(in *models.ProfileInput) Profile {
	p := Profile{
		Email:         strings.TrimSpace(in.Email),
		Name:          in.Name,
		Age:           in.Age,
		Gender:        in.Gender,
		HeightCM:      in.HeightCM,
		WeightKG:      in.WeightKG,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	}
	if p.Goal == "" {
		p.Goal = models.GoalMaintain
	}
	return p
}

// ToAPI converts a Profile to its API representation.
func (p *Profile) ToAPI() models.Profile {
	return models.Profile{
		Email:         p.Email,
		Name:          p.Name,
		Age:           p.Age,
		Gender:        p.Gender,
		HeightCM:      p.HeightCM,
		WeightKG:      p.WeightKG,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
		CreatedAt:     models.Timestamp(p.CreatedAt),
		UpdatedAt:     models.Timestamp(p.UpdatedAt),
	}
}

// Validate checks the field-level constraints of a profile.
func Validate(p *Profile) []models.FieldError {
	var errs []models.FieldError

	if p.Email == "" {
		errs = append(errs, models.FieldError{Field: "email", Message: "is required"})
	}
	if p.Age < MinAge || p.Age > MaxAge {
		errs = append(errs, models.FieldError{
			Field:   "age",
			Message: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge),
		})
	}
	switch p.Gender {
	case models.GenderMale, models.GenderFemale:
	default:
		errs = append(errs, models.FieldError{Field: "gender", Message: "must be one of: male, female"})
	}
	if p.HeightCM <= 0 {
		errs = append(errs, models.FieldError{Field: "height_cm", Message: "must be greater than 0"})
	}
	if p.WeightKG <= 0 {
		errs = append(errs, models.FieldError{Field: "weight_kg", Message: "must be greater than 0"})
	}
	switch p.ActivityLevel {
	case models.ActivitySedentary, models.ActivityLight, models.ActivityModerate,
		models.ActivityActive, models.ActivityVeryActive:
	default:
		errs = append(errs, models.FieldError{
			Field:   "activity_level",
			Message: "must be one of: sedentary, light, moderate, active, very_active",
		})
	}
	switch p.Goal {
	case models.GoalLose, models.GoalMaintain, models.GoalGain:
	default:
		errs = append(errs, models.FieldError{Field: "goal", Message: "must be one of: lose, maintain, gain"})
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
