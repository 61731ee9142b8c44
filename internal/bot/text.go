package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbite/fitbite-bot/internal/workoutlog"
)

func (b *Bot) handleText(ctx context.Context, us *userSession, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch us.flow {
	case stateAwaitingLoginEmail:
		us.email = text
		us.flow = stateAwaitingLoginPassword
		b.send(chatID, "Enter your password:")

	case stateAwaitingLoginPassword:
		us.flow = stateNone
		if err := us.auth.Login(ctx, us.email, text); err != nil {
			b.reportError(ctx, chatID, err)
			b.sendMainMenu(chatID, us)
			return nil
		}
		us.email = ""
		b.send(chatID, "✅ Logged in!")
		b.showDashboard(ctx, chatID, us)

	case stateAwaitingOTP:
		us.flow = stateNone
		email, otp, ok := splitPair(text)
		if !ok {
			b.send(chatID, "Please send your email and code separated by a space.")
			us.flow = stateAwaitingOTP
			return nil
		}
		if err := us.auth.VerifyOTP(ctx, email, otp); err != nil {
			b.reportError(ctx, chatID, err)
			b.sendMainMenu(chatID, us)
			return nil
		}
		b.send(chatID, "✅ Logged in!")
		b.showDashboard(ctx, chatID, us)

	case stateAwaitingResetEmail:
		if err := us.auth.RequestPasswordReset(ctx, text); err != nil {
			us.flow = stateNone
			b.reportError(ctx, chatID, err)
			return nil
		}
		us.email = text
		us.flow = stateAwaitingResetOTP
		b.send(chatID, "📧 A one-time code was sent to your email. Enter it here:")

	case stateAwaitingResetOTP:
		us.draftOTP = text
		us.flow = stateAwaitingResetPassword
		b.send(chatID, "Enter your new password:")

	case stateAwaitingResetPassword:
		us.flow = stateNone
		if err := us.auth.ResetPassword(ctx, us.email, us.draftOTP, text); err != nil {
			b.reportError(ctx, chatID, err)
			return nil
		}
		us.email = ""
		us.draftOTP = ""
		b.send(chatID, "✅ Password reset! You can log in now.")
		b.sendMainMenu(chatID, us)

	case stateAwaitingHeight:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || value <= 0 {
			b.send(chatID, "Please enter your height as a number of centimeters (e.g. 172).")
			return nil
		}
		us.draft.Height = value
		us.flow = stateAwaitingWeight
		b.send(chatID, "Enter your weight in kg:")

	case stateAwaitingWeight:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || value <= 0 {
			b.send(chatID, "Please enter your weight as a number of kilograms (e.g. 68.5).")
			return nil
		}
		us.draft.Weight = value
		us.flow = stateAwaitingAge
		b.send(chatID, "Enter your age:")

	case stateAwaitingAge:
		value, err := strconv.Atoi(text)
		if err != nil || value <= 0 {
			b.send(chatID, "Please enter your age in years (e.g. 27).")
			return nil
		}
		us.draft.Age = value
		us.flow = stateNone
		b.sendWithKeyboard(chatID, "What is your gender?", genderKeyboard())

	case stateAwaitingGoalWeight:
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || value <= 0 {
			b.send(chatID, "Please enter your target weight in kg, or tap Skip.")
			return nil
		}
		us.draft.GoalWeight = value
		us.flow = stateAwaitingGoalDuration
		b.send(chatID, "In how many weeks do you want to reach it?")

	case stateAwaitingGoalDuration:
		value, err := strconv.Atoi(text)
		if err != nil || value < 1 {
			b.send(chatID, "Please enter a whole number of weeks (at least 1).")
			return nil
		}
		us.draft.GoalDuration = value
		us.flow = stateNone
		return b.submitProfile(ctx, chatID, us)

	case stateAwaitingSetsReps:
		sets, reps, ok := parseSetsReps(text)
		if !ok {
			b.send(chatID, "Please use the form setsxreps, e.g. 3x12.")
			return nil
		}
		template := us.pending
		us.pending = nil
		us.flow = stateNone
		if template == nil {
			b.send(chatID, "Open the workout library again to pick a workout.")
			return nil
		}
		entry, err := us.workouts.LogWorkout(ctx, *template, workoutlog.Input{Sets: sets, Reps: reps})
		if err != nil {
			b.reportError(ctx, chatID, err)
			return nil
		}
		b.send(chatID, workoutLoggedText(entry))
		b.showTodaysWorkouts(chatID, us)

	default:
		b.send(chatID, "Use the menu to pick an action, or /help for commands.")
	}

	return nil
}

func splitPair(text string) (string, string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// parseSetsReps accepts "3x12", "3 x 12" or "3 12".
func parseSetsReps(text string) (int, int, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(text), "x", " ")
	fields := strings.Fields(normalized)
	if len(fields) != 2 {
		return 0, 0, false
	}
	sets, err1 := strconv.Atoi(fields[0])
	reps, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || sets <= 0 || reps <= 0 {
		return 0, 0, false
	}
	return sets, reps, true
}
