package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbite/fitbite-bot/internal/session"
)

func (b *Bot) handleCommand(ctx context.Context, us *userSession, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	us.flow = stateNone

	switch message.Command() {
	case "start":
		b.sendMainMenu(chatID, us)
	case "dashboard":
		b.showDashboard(ctx, chatID, us)
	case "meal":
		b.showMeal(chatID, us)
	case "workouts":
		b.showTodaysWorkouts(chatID, us)
	case "logout":
		if us.auth.State() != session.StateAuthenticated {
			b.send(chatID, "You are not logged in.")
			return nil
		}
		us.auth.Logout(ctx)
		b.send(chatID, "You have been logged out.")
		b.sendMainMenu(chatID, us)
	case "help":
		b.send(chatID, `Available commands:
/start - Show the main menu
/dashboard - Your metrics and today's progress
/meal - Today's meal
/workouts - Today's workouts
/logout - Log out
/help - Show this message

Use the menu buttons to browse outlets, log workouts and update your profile.`)
	default:
		b.send(chatID, "Unknown command. Use /help to see what I can do.")
	}
	return nil
}
