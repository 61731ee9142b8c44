package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbite/fitbite-bot/internal/domain"
)

// Duration presets offered for time-based workouts, in minutes.
var durationOptions = []int{10, 15, 20, 30, 45, 60}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Dashboard", "dashboard"),
			tgbotapi.NewInlineKeyboardButtonData("🍽 My Meal", "meal"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏪 Outlets", "outlets"),
			tgbotapi.NewInlineKeyboardButtonData("📚 Workouts", "library"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏃 Today's Log", "today"),
			tgbotapi.NewInlineKeyboardButtonData("👤 Profile", "profile"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎨 Theme", "theme"),
			tgbotapi.NewInlineKeyboardButtonData("🚪 Logout", "logout"),
		),
	)
}

func anonymousMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Log in", "login"),
			tgbotapi.NewInlineKeyboardButtonData("📧 Log in with code", "login_otp"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔒 Forgot password", "forgot"),
		),
	)
}

func dashboardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍽 My Meal", "meal"),
			tgbotapi.NewInlineKeyboardButtonData("🏃 Today's Log", "today"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
		),
	)
}

func profilePromptKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Set up profile", "profile"),
		),
	)
}

func mealEmptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏪 Browse outlets", "outlets"),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
		),
	)
}

func mealKeyboard(itemCount int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for i := 0; i < itemCount; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("❌ %d", i+1), "meal_rm:"+strconv.Itoa(i)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Clear meal", "meal_clear"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func outletsKeyboard(outlets []domain.Outlet) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(outlets)+1)
	for _, o := range outlets {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Name, "outlet:"+o.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func menuItemsKeyboard(itemCount int) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for i := 0; i < itemCount; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			"➕ "+strconv.Itoa(i+1), "additem:"+strconv.Itoa(i)))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏪 Outlets", "outlets"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func libraryKeyboard(categories []string, grouped map[string][]domain.WorkoutTemplate) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, category := range categories {
		row := []tgbotapi.InlineKeyboardButton{}
		for _, t := range grouped[category] {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(t.Name, "logw:"+t.ID))
			if len(row) == 2 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main")))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func durationKeyboard(templateID string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, minutes := range durationOptions {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d min", minutes),
			fmt.Sprintf("dur:%s:%d", templateID, minutes)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func todayEmptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Workout library", "library"),
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
		),
	)
}

func todayKeyboard(entries []domain.WorkoutEntry) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ "+e.Name, "rmw:"+e.ID)))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 Workout library", "library"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", "main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Male", "gender:male"),
			tgbotapi.NewInlineKeyboardButtonData("Female", "gender:female"),
		),
	)
}

func activityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Sedentary", "activity:sedentary"),
			tgbotapi.NewInlineKeyboardButtonData("Light", "activity:light"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Moderate", "activity:moderate"),
			tgbotapi.NewInlineKeyboardButtonData("Active", "activity:active"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Very active", "activity:veryActive"),
		),
	)
}

func goalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Lose weight", "goal:lose"),
			tgbotapi.NewInlineKeyboardButtonData("Maintain", "goal:maintain"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Gain weight", "goal:gain"),
			tgbotapi.NewInlineKeyboardButtonData("Build muscle", "goal:muscleGain"),
		),
	)
}

func skipKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Skip", "skip_goalplan"),
		),
	)
}
