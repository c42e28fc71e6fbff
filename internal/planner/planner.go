// Package planner derives daily calorie and macro targets from a profile.
//
// BMR uses the Mifflin-St Jeor equation, scaled by a fixed activity
// multiplier to get TDEE, then adjusted for the profile's goal. Goal calories
// are split 30/40/30 between protein, carbs and fat by calorie contribution.
package planner

import (
	"math"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/profile"
)

// Macro split by calorie contribution.
const (
	ProteinShare = 0.30
	CarbsShare   = 0.40
	FatShare     = 0.30
)

// Energy density in kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// DefaultActivityMultiplier is used for unrecognized activity levels.
const DefaultActivityMultiplier = 1.2

var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// Plan is the calorie plan for a profile. Every field is rounded to a whole unit.
type Plan struct {
	BMR                 float64
	MaintenanceCalories float64
	GoalCalories        float64
	ProteinG            float64
	CarbsG              float64
	FatG                float64
}

// ActivityMultiplier returns the TDEE multiplier for an activity level.
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return DefaultActivityMultiplier
}

// GoalAdjustment returns the fractional calorie adjustment for a goal.
func GoalAdjustment(goal models.Goal) float64 {
	switch goal {
	case models.GoalLose:
		return -0.20
	case models.GoalGain:
		return 0.15
	default:
		return 0
	}
}

// BMR returns the unrounded basal metabolic rate in kcal/day.
func BMR(p *profile.Profile) float64 {
	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == models.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// ComputePlan derives the calorie plan for a profile.
// The caller is responsible for validating the profile.
func ComputePlan(p *profile.Profile) Plan {
	bmr := BMR(p)
	tdee := bmr * ActivityMultiplier(p.ActivityLevel)
	goalCalories := tdee * (1 + GoalAdjustment(p.Goal))

	return Plan{
		BMR:                 round(bmr),
		MaintenanceCalories: round(tdee),
		GoalCalories:        round(goalCalories),
		ProteinG:            round(ProteinShare * goalCalories / KcalPerGramProtein),
		CarbsG:              round(CarbsShare * goalCalories / KcalPerGramCarbs),
		FatG:                round(FatShare * goalCalories / KcalPerGramFat),
	}
}

// ToAPI converts a Plan to its API representation.
func (p Plan) ToAPI() models.CaloriePlan {
	return models.CaloriePlan{
		MaintenanceCalories: p.MaintenanceCalories,
		GoalCalories:        p.GoalCalories,
		ProteinG:            p.ProteinG,
		CarbsG:              p.CarbsG,
		FatG:                p.FatG,
	}
}

// round rounds half to even, so .5 ties land on the even neighbour.
func round(v float64) float64 {
	return math.RoundToEven(v)
}
