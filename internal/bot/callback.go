package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/fitbite/fitbite-bot/internal/domain"
	"github.com/fitbite/fitbite-bot/internal/session"
	"github.com/fitbite/fitbite-bot/internal/workoutlog"
)

func (b *Bot) handleCallback(ctx context.Context, us *userSession, chatID int64, data string) error {
	action, arg := data, ""
	if i := strings.IndexByte(data, ':'); i >= 0 {
		action, arg = data[:i], data[i+1:]
	}

	// Everything except the entry points needs an authenticated session.
	switch action {
	case "main", "login", "login_otp", "forgot":
	default:
		if us.auth.State() != session.StateAuthenticated {
			b.sendMainMenu(chatID, us)
			return nil
		}
	}

	switch action {
	case "main":
		us.flow = stateNone
		b.sendMainMenu(chatID, us)

	case "login":
		us.flow = stateAwaitingLoginEmail
		b.send(chatID, "Enter your email address:")
	case "login_otp":
		us.flow = stateAwaitingOTP
		b.send(chatID, "Enter your email and the one-time code, separated by a space (e.g. jane@mail.com 123456):")
	case "forgot":
		us.flow = stateAwaitingResetEmail
		b.send(chatID, "Enter the email address of your account:")

	case "logout":
		us.auth.Logout(ctx)
		b.send(chatID, "You have been logged out.")
		b.sendMainMenu(chatID, us)

	case "theme":
		theme := us.prefs.Toggle(ctx)
		b.send(chatID, "Theme switched to "+string(theme)+".")
		b.showDashboard(ctx, chatID, us)

	case "dashboard":
		b.showDashboard(ctx, chatID, us)

	case "meal":
		b.showMeal(chatID, us)
	case "meal_clear":
		us.meals.Clear(ctx)
		b.send(chatID, "Your meal has been cleared.")
	case "meal_rm":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return nil
		}
		us.meals.RemoveAt(ctx, index)
		b.showMeal(chatID, us)

	case "outlets":
		b.showOutlets(ctx, chatID, us)
	case "outlet":
		b.showOutletMenu(ctx, chatID, us, arg)
	case "additem":
		index, err := strconv.Atoi(arg)
		if err != nil || index < 0 || index >= len(us.lastMenu) {
			return nil
		}
		us.meals.Add(ctx, us.lastMenu[index])

	case "library":
		b.showWorkoutLibrary(ctx, chatID, us)
	case "logw":
		b.startWorkoutLogging(chatID, us, arg)
	case "dur":
		return b.logTimedWorkout(ctx, chatID, us, arg)

	case "today":
		b.showTodaysWorkouts(chatID, us)
	case "rmw":
		if err := us.workouts.RemoveWorkout(ctx, arg); err != nil {
			b.reportError(ctx, chatID, err)
			return nil
		}
		b.send(chatID, "Workout removed.")
		b.showTodaysWorkouts(chatID, us)

	case "profile":
		b.startProfileEdit(chatID, us)
	case "gender":
		if us.draft == nil {
			return nil
		}
		us.draft.Gender = domain.Gender(arg)
		b.sendWithKeyboard(chatID, "How active are you?", activityKeyboard())
	case "activity":
		if us.draft == nil {
			return nil
		}
		us.draft.ActivityLevel = domain.ActivityLevel(arg)
		b.sendWithKeyboard(chatID, "What is your goal?", goalKeyboard())
	case "goal":
		if us.draft == nil {
			return nil
		}
		us.draft.Goal = domain.Goal(arg)
		us.flow = stateAwaitingGoalWeight
		b.sendWithKeyboard(chatID, "Enter your target weight in kg, or skip to use goal defaults:", skipKeyboard())
	case "skip_goalplan":
		if us.draft == nil {
			return nil
		}
		us.draft.GoalWeight = 0
		us.draft.GoalDuration = 0
		us.flow = stateNone
		return b.submitProfile(ctx, chatID, us)
	}

	return nil
}

func (b *Bot) startProfileEdit(chatID int64, us *userSession) {
	draft := &domain.ProfileUpdate{}
	if p := us.auth.Profile(); p != nil {
		draft.Height = p.Height
		draft.Weight = p.Weight
		draft.Age = p.Age
		draft.Gender = p.Gender
		draft.ActivityLevel = p.ActivityLevel
		draft.Goal = p.Goal
	}
	us.draft = draft
	us.flow = stateAwaitingHeight
	b.send(chatID, "Let's update your profile. Enter your height in cm:")
}

func (b *Bot) submitProfile(ctx context.Context, chatID int64, us *userSession) error {
	profile, err := us.auth.UpdateProfile(ctx, *us.draft)
	us.draft = nil
	if err != nil {
		b.reportError(ctx, chatID, err)
		return nil
	}
	b.send(chatID, "✅ Profile updated successfully, "+profile.Name+"!")
	b.showDashboard(ctx, chatID, us)
	return nil
}

func (b *Bot) startWorkoutLogging(chatID int64, us *userSession, templateID string) {
	template, ok := us.lastTemplates[templateID]
	if !ok {
		b.send(chatID, "Open the workout library again to pick a workout.")
		return
	}

	switch template.LogType {
	case domain.LogTypeTime:
		b.sendWithKeyboard(chatID, "How long did you do "+template.Name+"?", durationKeyboard(template.ID))
	case domain.LogTypeReps:
		t := template
		us.pending = &t
		us.flow = stateAwaitingSetsReps
		b.send(chatID, "Enter sets and reps for "+template.Name+" (e.g. 3x12):")
	default:
		b.send(chatID, "This workout cannot be logged.")
	}
}

// logTimedWorkout handles a duration preset pick. arg is "<templateID>:<minutes>".
func (b *Bot) logTimedWorkout(ctx context.Context, chatID int64, us *userSession, arg string) error {
	i := strings.LastIndexByte(arg, ':')
	if i < 0 {
		return nil
	}
	templateID := arg[:i]
	minutes, err := strconv.Atoi(arg[i+1:])
	if err != nil {
		return nil
	}

	template, ok := us.lastTemplates[templateID]
	if !ok {
		b.send(chatID, "Open the workout library again to pick a workout.")
		return nil
	}

	entry, err := us.workouts.LogWorkout(ctx, template, workoutlog.Input{DurationMinutes: minutes})
	if err != nil {
		b.reportError(ctx, chatID, err)
		return nil
	}

	b.send(chatID, workoutLoggedText(entry))
	b.showTodaysWorkouts(chatID, us)
	return nil
}
