package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriguide/nutriguide/internal/api/models"
	"github.com/nutriguide/nutriguide/internal/planner"
	"github.com/nutriguide/nutriguide/internal/profile"
)

func referenceProfile() *profile.Profile {
	return &profile.Profile{
		Email:         "alex@example.com",
		Age:           30,
		Gender:        models.GenderMale,
		HeightCM:      180,
		WeightKG:      80,
		ActivityLevel: models.ActivityModerate,
		Goal:          models.GoalMaintain,
	}
}

func TestComputePlan_ReferenceProfile(t *testing.T) {
	plan := planner.ComputePlan(referenceProfile())

	assert.Equal(t, 1780.0, plan.BMR)
	assert.Equal(t, 2759.0, plan.MaintenanceCalories)
	assert.Equal(t, 2759.0, plan.GoalCalories)
	assert.Equal(t, 207.0, plan.ProteinG)
	assert.Equal(t, 276.0, plan.CarbsG)
	assert.Equal(t, 92.0, plan.FatG)
}

func TestComputePlan_Female(t *testing.T) {
	p := referenceProfile()
	p.Gender = models.GenderFemale
	p.ActivityLevel = models.ActivitySedentary

	plan := planner.ComputePlan(p)

	// 800 + 1125 - 150 - 161 = 1614; 1614 * 1.2 = 1936.8
	assert.Equal(t, 1614.0, plan.BMR)
	assert.Equal(t, 1937.0, plan.MaintenanceCalories)
	assert.Equal(t, 1937.0, plan.GoalCalories)
}

func TestComputePlan_GoalAdjustment(t *testing.T) {
	tests := []struct {
		name         string
		goal         models.Goal
		wantGoalCals float64
	}{
		{name: "lose", goal: models.GoalLose, wantGoalCals: 2207}, // 2759 * 0.8 = 2207.2
		{name: "maintain", goal: models.GoalMaintain, wantGoalCals: 2759},
		{name: "gain", goal: models.GoalGain, wantGoalCals: 3173}, // 2759 * 1.15 = 3172.85
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceProfile()
			p.Goal = tt.goal

			plan := planner.ComputePlan(p)

			assert.Equal(t, 2759.0, plan.MaintenanceCalories)
			assert.Equal(t, tt.wantGoalCals, plan.GoalCalories)
		})
	}
}

func TestComputePlan_MacrosSumToGoalCalories(t *testing.T) {
	levels := []models.ActivityLevel{
		models.ActivitySedentary,
		models.ActivityLight,
		models.ActivityModerate,
		models.ActivityActive,
		models.ActivityVeryActive,
	}
	goals := []models.Goal{models.GoalLose, models.GoalMaintain, models.GoalGain}

	for _, level := range levels {
		for _, goal := range goals {
			for age := 10; age <= 120; age += 22 {
				p := &profile.Profile{
					Age:           age,
					Gender:        models.GenderFemale,
					HeightCM:      165,
					WeightKG:      62.5,
					ActivityLevel: level,
					Goal:          goal,
				}
				plan := planner.ComputePlan(p)

				macroCals := plan.ProteinG*4 + plan.CarbsG*4 + plan.FatG*9
				// Each gram value is off by at most 0.5, so the calorie error is bounded by 0.5*(4+4+9).
				assert.InDelta(t, plan.GoalCalories, macroCals, 9, "level=%s goal=%s age=%d", level, goal, age)
			}
		}
	}
}

func TestComputePlan_Deterministic(t *testing.T) {
	p := referenceProfile()
	first := planner.ComputePlan(p)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, planner.ComputePlan(p))
	}
}

func TestActivityMultiplier(t *testing.T) {
	assert.Equal(t, 1.2, planner.ActivityMultiplier(models.ActivitySedentary))
	assert.Equal(t, 1.375, planner.ActivityMultiplier(models.ActivityLight))
	assert.Equal(t, 1.55, planner.ActivityMultiplier(models.ActivityModerate))
	assert.Equal(t, 1.725, planner.ActivityMultiplier(models.ActivityActive))
	assert.Equal(t, 1.9, planner.ActivityMultiplier(models.ActivityVeryActive))
	assert.Equal(t, 1.2, planner.ActivityMultiplier("couch"))
}

func TestComputePlan_UnknownActivityFallsBackToSedentary(t *testing.T) {
	p := referenceProfile()
	p.ActivityLevel = "unknown"
	unknown := planner.ComputePlan(p)

	p.ActivityLevel = models.ActivitySedentary
	sedentary := planner.ComputePlan(p)

	assert.Equal(t, sedentary, unknown)
}

func TestPlan_ToAPI(t *testing.T) {
	api := planner.ComputePlan(referenceProfile()).ToAPI()

	assert.Equal(t, models.CaloriePlan{
		MaintenanceCalories: 2759,
		GoalCalories:        2759,
		ProteinG:            207,
		CarbsG:              276,
		FatG:                92,
	}, api)
}
