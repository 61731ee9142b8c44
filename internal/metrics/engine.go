// Package metrics derives all dashboard figures from a user profile and
// today's logged intake and exercise. Everything here is pure arithmetic:
// no state, no clock, no remote calls. An incomplete profile never produces
// an error, only an unavailable result.
package metrics

import (
	"github.com/fitbite/fitbite-bot/internal/domain"
)

// Fixed product constants. The burn-target multipliers are heuristics the
// product ships with; they are not rederived from any published formula.
const (
	caloriesPerKg = 7700 // kcal per kg of body mass

	maxDailyDeficit = 1000 // safety cap on total daily deficit
	maxDietDeficit  = 500  // diet carries at most this much of the deficit
	dietShare       = 0.6  // diet share of the deficit before capping

	proteinCaloriesPerGram = 4
	carbCaloriesPerGram    = 4
	fatCaloriesPerGram     = 9

	bmiUnderweightMax = 18.5
	bmiNormalMax      = 24.9
	bmiOverweightMax  = 29.9
)

var activityFactors = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

type macroSplit struct {
	protein float64
	carbs   float64
	fat     float64
}

var macroSplits = map[domain.Goal]macroSplit{
	domain.GoalMuscleGain: {protein: 0.40, carbs: 0.40, fat: 0.20},
	domain.GoalLose:       {protein: 0.40, carbs: 0.30, fat: 0.30},
	domain.GoalGain:       {protein: 0.30, carbs: 0.50, fat: 0.20},
	domain.GoalMaintain:   {protein: 0.30, carbs: 0.40, fat: 0.30},
}

type burnActivity struct {
	name     string
	duration int     // minutes
	share    float64 // fraction of the exercise burn target
}

// One recommendation table per effective goal. Shares in each table sum to 1
// so the listed calories add up to the exercise burn target.
var burnTables = map[domain.Goal][]burnActivity{
	domain.GoalLose: {
		{name: "Running", duration: 30, share: 0.35},
		{name: "Cycling", duration: 25, share: 0.25},
		{name: "Jump Rope", duration: 15, share: 0.20},
		{name: "Brisk Walking", duration: 40, share: 0.20},
	},
	domain.GoalGain: {
		{name: "Strength Training", duration: 45, share: 0.40},
		{name: "Swimming", duration: 30, share: 0.25},
		{name: "Cycling", duration: 20, share: 0.20},
		{name: "Yoga", duration: 20, share: 0.15},
	},
	domain.GoalMaintain: {
		{name: "Jogging", duration: 25, share: 0.30},
		{name: "Swimming", duration: 25, share: 0.25},
		{name: "Cycling", duration: 25, share: 0.25},
		{name: "Yoga", duration: 30, share: 0.20},
	},
}

// Compute derives every dashboard metric from the profile plus today's
// consumed and burned calories. Deterministic: the same inputs always
// produce the same result. When the profile is missing height, weight, age
// or gender the result is zero-valued with Available=false and the caller
// must prompt for profile completion.
func Compute(profile domain.UserProfile, consumedCalories, burnedCalories float64) domain.DerivedMetrics {
	if !profile.Complete() {
		return domain.DerivedMetrics{}
	}

	heightM := profile.Height / 100
	bmi := profile.Weight / (heightM * heightM)

	bmr := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age)
	if profile.Gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[profile.ActivityLevel]
	if !ok {
		factor = 1.2
	}
	tdee := bmr * factor

	m := domain.DerivedMetrics{
		Available:   true,
		BMI:         bmi,
		BMICategory: bmiCategory(bmi),
		HealthyWeightRange: domain.WeightRange{
			Lower: bmiUnderweightMax * heightM * heightM,
			Upper: bmiNormalMax * heightM * heightM,
		},
		BMR:  bmr,
		TDEE: tdee,
	}

	applyCalorieTargets(&m, profile, bmr, tdee)

	goal := effectiveGoal(profile)
	m.MacroTargets = macroTargets(goal, m.DailyCalorieTarget)
	m.BurnRecommendations = burnRecommendations(goal, m.ExerciseBurnTarget)

	m.NetCalories = consumedCalories - burnedCalories
	m.CaloriesRemaining = m.DailyCalorieTarget - consumedCalories
	if m.DailyCalorieTarget > 0 {
		m.CalorieProgress = consumedCalories / m.DailyCalorieTarget * 100
	}

	return m
}

func bmiCategory(bmi float64) string {
	// Literal cutoffs on purpose: the boundaries are the published table
	// values, so 24.9 is still Normal and ties resolve to the lower bucket.
	switch {
	case bmi < bmiUnderweightMax:
		return "Underweight"
	case bmi <= bmiNormalMax:
		return "Normal Weight"
	case bmi <= bmiOverweightMax:
		return "Overweight"
	default:
		return "Obesity"
	}
}

// effectiveGoal resolves the goal used for macro splits and burn tables.
// An explicit goal weight overrides the stated goal: what the user is
// actually planning toward wins.
func effectiveGoal(profile domain.UserProfile) domain.Goal {
	if profile.GoalWeight > 0 {
		switch {
		case profile.GoalWeight > profile.Weight:
			return domain.GoalGain
		case profile.GoalWeight < profile.Weight:
			return domain.GoalLose
		default:
			return domain.GoalMaintain
		}
	}
	if profile.Goal != "" {
		return profile.Goal
	}
	return domain.GoalMaintain
}

// applyCalorieTargets fills the calorie and burn targets. With a full goal
// plan (target weight and duration) the daily adjustment is spread over the
// plan; otherwise fixed per-goal offsets apply.
func applyCalorieTargets(m *domain.DerivedMetrics, profile domain.UserProfile, bmr, tdee float64) {
	if profile.GoalWeight > 0 && profile.GoalDuration > 0 {
		weightDelta := profile.GoalWeight - profile.Weight
		dailyAdjust := weightDelta * caloriesPerKg / (float64(profile.GoalDuration) * 7)

		switch {
		case weightDelta < 0:
			deficit := -dailyAdjust
			if deficit > maxDailyDeficit {
				deficit = maxDailyDeficit
			}
			dietDeficit := deficit * dietShare
			if dietDeficit > maxDietDeficit {
				dietDeficit = maxDietDeficit
			}
			exerciseDeficit := deficit - dietDeficit

			m.DailyCalorieTarget = tdee - dietDeficit
			m.ExerciseBurnTarget = exerciseDeficit
			m.DailyBurnTarget = bmr*1.2 + exerciseDeficit
			m.ActivityBurnTarget = bmr * 0.2
		case weightDelta > 0:
			m.DailyCalorieTarget = tdee + dailyAdjust
			m.DailyBurnTarget = bmr * 1.3
			m.ExerciseBurnTarget = 200
			m.ActivityBurnTarget = bmr * 0.3
		default:
			m.DailyCalorieTarget = tdee
			m.DailyBurnTarget = tdee
			m.ExerciseBurnTarget = 250
			m.ActivityBurnTarget = bmr * 0.25
		}
		return
	}

	switch profile.Goal {
	case domain.GoalLose:
		m.DailyCalorieTarget = tdee - 500
		m.DailyBurnTarget = tdee + 200
		m.ExerciseBurnTarget = 400
		m.ActivityBurnTarget = bmr * 0.2
	case domain.GoalGain:
		m.DailyCalorieTarget = tdee + 300
		m.DailyBurnTarget = bmr * 1.3
		m.ExerciseBurnTarget = 200
		m.ActivityBurnTarget = bmr * 0.3
	default:
		m.DailyCalorieTarget = tdee
		m.DailyBurnTarget = tdee
		m.ExerciseBurnTarget = 250
		m.ActivityBurnTarget = bmr * 0.25
	}
}

func macroTargets(goal domain.Goal, dailyCalories float64) domain.MacroTargets {
	split, ok := macroSplits[goal]
	if !ok {
		split = macroSplits[domain.GoalMaintain]
	}
	return domain.MacroTargets{
		Protein: dailyCalories * split.protein / proteinCaloriesPerGram,
		Carbs:   dailyCalories * split.carbs / carbCaloriesPerGram,
		Fat:     dailyCalories * split.fat / fatCaloriesPerGram,
	}
}

func burnRecommendations(goal domain.Goal, exerciseBurnTarget float64) []domain.BurnRecommendation {
	table, ok := burnTables[goal]
	if !ok {
		table = burnTables[domain.GoalMaintain]
	}
	recs := make([]domain.BurnRecommendation, 0, len(table))
	for _, a := range table {
		recs = append(recs, domain.BurnRecommendation{
			Activity:        a.name,
			DurationMinutes: a.duration,
			Calories:        a.share * exerciseBurnTarget,
		})
	}
	return recs
}
