package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fitbite/fitbite-bot/internal/domain"
	"github.com/fitbite/fitbite-bot/internal/metrics"
	"github.com/fitbite/fitbite-bot/internal/prefs"
)

func greeting(name string, theme prefs.Theme) string {
	icon := "☀️"
	if theme == prefs.ThemeDark {
		icon = "🌙"
	}
	if name == "" {
		return icon + " Welcome back! What would you like to do?"
	}
	return fmt.Sprintf("%s Welcome back, %s! What would you like to do?", icon, name)
}

func dashboardTitle(goal domain.Goal) string {
	switch goal {
	case domain.GoalLose:
		return "Fat Loss Journey"
	case domain.GoalGain, domain.GoalMuscleGain:
		return "Muscle Building"
	default:
		return "Healthy Living"
	}
}

// showDashboard renders the metrics view. The figures are recomputed from
// the profile and today's aggregates on every call.
func (b *Bot) showDashboard(ctx context.Context, chatID int64, us *userSession) {
	profile := us.auth.Profile()
	if profile == nil {
		b.sendMainMenu(chatID, us)
		return
	}

	totals := us.meals.Totals()
	burned := us.workouts.TotalCaloriesBurned()
	m := metrics.Compute(*profile, totals.Calories, burned)

	if !m.Available {
		b.sendWithKeyboard(chatID,
			"Set up your profile first: add your height, weight, age and gender so I can calculate your daily goals.",
			profilePromptKeyboard())
		return
	}

	var sb strings.Builder
	header := "🏋️ "
	if us.prefs.Current() == prefs.ThemeDark {
		header = "🌙 "
	}
	sb.WriteString(header + dashboardTitle(profile.Goal) + "\n\n")

	fmt.Fprintf(&sb, "📊 BMI: %.1f (%s)\n", m.BMI, m.BMICategory)
	fmt.Fprintf(&sb, "⚖️ Healthy range: %.1f–%.1f kg\n", m.HealthyWeightRange.Lower, m.HealthyWeightRange.Upper)
	fmt.Fprintf(&sb, "🔥 Daily calorie goal: %.0f kcal\n", m.DailyCalorieTarget)
	fmt.Fprintf(&sb, "🍽 Eaten today: %.0f kcal\n", totals.Calories)
	fmt.Fprintf(&sb, "🏃 Burned today: %.0f kcal\n", burned)
	fmt.Fprintf(&sb, "🧮 Remaining: %.0f kcal (%.0f%% used)\n\n", m.CaloriesRemaining, m.CalorieProgress)

	fmt.Fprintf(&sb, "🥗 Macro targets: %.0fg protein / %.0fg carbs / %.0fg fat\n",
		m.MacroTargets.Protein, m.MacroTargets.Carbs, m.MacroTargets.Fat)
	fmt.Fprintf(&sb, "💪 Burn targets: %.0f daily / %.0f exercise / %.0f activity\n",
		m.DailyBurnTarget, m.ExerciseBurnTarget, m.ActivityBurnTarget)

	if len(m.BurnRecommendations) > 0 {
		sb.WriteString("\nSuggested activities:\n")
		for _, rec := range m.BurnRecommendations {
			fmt.Fprintf(&sb, "  • %s — %d min (≈%.0f kcal)\n", rec.Activity, rec.DurationMinutes, rec.Calories)
		}
	}

	b.sendWithKeyboard(chatID, sb.String(), dashboardKeyboard())
}

func (b *Bot) showMeal(chatID int64, us *userSession) {
	items := us.meals.Items()
	if len(items) == 0 {
		b.sendWithKeyboard(chatID, "Your meal is empty. Add items from an outlet's menu to build it.", mealEmptyKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("🍽 Today's meal:\n\n")
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s — %.0f kcal (P %.1fg / C %.1fg / F %.1fg)\n",
			i+1, item.ItemName, item.Calories, item.Protein, item.Carbs, item.Fat)
	}

	totals := us.meals.Totals()
	fmt.Fprintf(&sb, "\nTotal: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat",
		totals.Calories, totals.Protein, totals.Carbs, totals.Fat)

	b.sendWithKeyboard(chatID, sb.String(), mealKeyboard(len(items)))
}

func (b *Bot) showOutlets(ctx context.Context, chatID int64, us *userSession) {
	outlets, err := us.client.AllOutlets(ctx)
	if err != nil {
		b.reportError(ctx, chatID, err)
		return
	}
	if len(outlets) == 0 {
		b.send(chatID, "No outlets are available right now.")
		return
	}
	b.sendWithKeyboard(chatID, "🏪 Pick an outlet:", outletsKeyboard(outlets))
}

func (b *Bot) showOutletMenu(ctx context.Context, chatID int64, us *userSession, outletID string) {
	outlet, err := us.client.OutletByID(ctx, outletID)
	if err != nil {
		b.reportError(ctx, chatID, err)
		return
	}
	if len(outlet.Menu) == 0 {
		b.send(chatID, outlet.Name+" has no menu items right now.")
		return
	}

	us.lastMenu = outlet.Menu

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 %s menu:\n\n", outlet.Name)
	for i, item := range outlet.Menu {
		fmt.Fprintf(&sb, "%d. %s — %.0f kcal (P %.1fg / C %.1fg / F %.1fg)\n",
			i+1, item.ItemName, item.Calories, item.Protein, item.Carbs, item.Fat)
	}
	sb.WriteString("\nTap a number to add it to your meal.")

	b.sendWithKeyboard(chatID, sb.String(), menuItemsKeyboard(len(outlet.Menu)))
}

func (b *Bot) showWorkoutLibrary(ctx context.Context, chatID int64, us *userSession) {
	templates, err := us.client.WorkoutLibrary(ctx)
	if err != nil {
		b.reportError(ctx, chatID, err)
		return
	}
	if len(templates) == 0 {
		b.send(chatID, "The workout library is empty right now.")
		return
	}

	grouped := make(map[string][]domain.WorkoutTemplate)
	for _, t := range templates {
		us.lastTemplates[t.ID] = t
		grouped[t.Category] = append(grouped[t.Category], t)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("📚 Workout Library\n")
	for _, category := range categories {
		fmt.Fprintf(&sb, "\n%s:\n", category)
		for _, t := range grouped[category] {
			fmt.Fprintf(&sb, "  • %s\n", t.Name)
		}
	}
	sb.WriteString("\nPick a workout to log:")

	b.sendWithKeyboard(chatID, sb.String(), libraryKeyboard(categories, grouped))
}

func (b *Bot) showTodaysWorkouts(chatID int64, us *userSession) {
	entries := us.workouts.Entries()
	if len(entries) == 0 {
		b.sendWithKeyboard(chatID, "No workouts logged today yet.", todayEmptyKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("🏃 Today's workouts:\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "  • %s — %s, %.0f kcal\n", e.Name, workoutDetail(e), e.CaloriesBurned)
	}
	fmt.Fprintf(&sb, "\nTotal burned: %.0f kcal", us.workouts.TotalCaloriesBurned())

	b.sendWithKeyboard(chatID, sb.String(), todayKeyboard(entries))
}

func workoutDetail(e domain.WorkoutEntry) string {
	if e.Duration > 0 {
		return fmt.Sprintf("%d min", e.Duration)
	}
	return fmt.Sprintf("%d×%d", e.Sets, e.Reps)
}

func workoutLoggedText(e *domain.WorkoutEntry) string {
	return fmt.Sprintf("✅ %s logged! %.0f kcal burned.", e.Name, e.CaloriesBurned)
}
