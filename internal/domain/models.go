package domain

// Gender of a user, as stored in the remote profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

// Goal is the user's stated fitness goal.
type Goal string

const (
	GoalLose       Goal = "lose"
	GoalMaintain   Goal = "maintain"
	GoalGain       Goal = "gain"
	GoalMuscleGain Goal = "muscleGain"
)

// UserProfile is the profile held by the remote collaborator. Metrics are
// only defined when height, weight and age are positive and gender is set.
type UserProfile struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Height        float64       `json:"height"` // cm
	Weight        float64       `json:"weight"` // kg
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
	GoalWeight    float64       `json:"goalWeight,omitempty"`   // kg, optional
	GoalDuration  int           `json:"goalDuration,omitempty"` // weeks, optional
}

// Complete reports whether the profile carries everything the metrics
// engine needs.
func (p UserProfile) Complete() bool {
	return p.Height > 0 && p.Weight > 0 && p.Age > 0 && p.Gender != ""
}

// ProfileUpdate is the payload for PUT /auth/profile.
type ProfileUpdate struct {
	Height        float64       `json:"height"`
	Weight        float64       `json:"weight"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
	GoalWeight    float64       `json:"goalWeight,omitempty"`
	GoalDuration  int           `json:"goalDuration,omitempty"`
}

// MealItem is a menu entry copied by value into the meal cache. It keeps no
// reference back to the outlet it came from.
type MealItem struct {
	ItemName string  `json:"itemName"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // grams
	Carbs    float64 `json:"carbs"`   // grams
	Fat      float64 `json:"fat"`     // grams
}

// MealTotals is the componentwise sum over a meal.
type MealTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Outlet is a read-only catalog entry owned by the remote collaborator.
type Outlet struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Location string     `json:"location,omitempty"`
	Menu     []MealItem `json:"menu,omitempty"`
}

// LogType selects how a workout is logged: by duration or by sets and reps.
type LogType string

const (
	LogTypeTime LogType = "time"
	LogTypeReps LogType = "reps"
)

// WorkoutTemplate is a read-only library entry. Never mutated locally.
type WorkoutTemplate struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	LogType  LogType `json:"logType"`
}

// WorkoutEntry is a logged workout. The id and caloriesBurned are assigned
// server-side; exactly one of duration or sets/reps is populated.
type WorkoutEntry struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Duration       int     `json:"duration,omitempty"` // minutes
	Sets           int     `json:"sets,omitempty"`
	Reps           int     `json:"reps,omitempty"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// WeightRange is an inclusive weight interval in kg.
type WeightRange struct {
	Lower float64
	Upper float64
}

// MacroTargets are daily macronutrient targets in grams.
type MacroTargets struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

// BurnRecommendation is one suggested activity toward the exercise burn target.
type BurnRecommendation struct {
	Activity        string
	DurationMinutes int
	Calories        float64
}

// DerivedMetrics is fully recomputed on every read and never persisted.
// Available is false when the profile is incomplete; all other fields are
// then zero and the caller must prompt for profile completion, not error.
type DerivedMetrics struct {
	Available bool

	BMI                float64
	BMICategory        string
	HealthyWeightRange WeightRange
	BMR                float64
	TDEE               float64

	DailyCalorieTarget  float64
	MacroTargets        MacroTargets
	DailyBurnTarget     float64
	ExerciseBurnTarget  float64
	ActivityBurnTarget  float64
	BurnRecommendations []BurnRecommendation

	NetCalories       float64
	CaloriesRemaining float64
	CalorieProgress   float64 // percent of the daily target consumed
}
