// Package bot is the Telegram surface of fitbite. It wires one bundle of
// state containers per Telegram user and translates updates into operations
// on them. All real semantics live in the session, mealcache, workoutlog,
// prefs and metrics packages; this package only renders and routes.
package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fitbite/fitbite-bot/internal/apiclient"
	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/mealcache"
	"github.com/fitbite/fitbite-bot/internal/prefs"
	"github.com/fitbite/fitbite-bot/internal/session"
	"github.com/fitbite/fitbite-bot/internal/storage"
	"github.com/fitbite/fitbite-bot/internal/workoutlog"
)

// Input-flow states telling the text handler which prompt the next message
// answers.
const (
	stateNone = "none"

	stateAwaitingLoginEmail    = "awaiting_login_email"
	stateAwaitingLoginPassword = "awaiting_login_password"
	stateAwaitingOTP           = "awaiting_otp"
	stateAwaitingResetEmail    = "awaiting_reset_email"
	stateAwaitingResetOTP      = "awaiting_reset_otp"
	stateAwaitingResetPassword = "awaiting_reset_password"

	stateAwaitingHeight       = "awaiting_height"
	stateAwaitingWeight       = "awaiting_weight"
	stateAwaitingAge          = "awaiting_age"
	stateAwaitingGoalWeight   = "awaiting_goal_weight"
	stateAwaitingGoalDuration = "awaiting_goal_duration"

	stateAwaitingSetsReps = "awaiting_sets_reps"
)

// userSession bundles the per-user state containers. The workout log is
// subscribed to the session store before the persisted credential is
// resolved, so the initial transition already refreshes it.
type userSession struct {
	client   *apiclient.Client
	auth     *session.Store
	meals    *mealcache.Cache
	workouts *workoutlog.Log
	prefs    *prefs.Store

	flow     string
	email    string
	draftOTP string
	draft    *domain.ProfileUpdate
	pending  *domain.WorkoutTemplate

	// Last fetched catalog pages, kept so callback indexes stay valid.
	lastMenu      []domain.MealItem
	lastTemplates map[string]domain.WorkoutTemplate
}

// Bot runs the Telegram update loop.
type Bot struct {
	api        *tgbotapi.BotAPI
	baseURL    string
	store      storage.Store
	errHandler *apperrors.Handler

	mu       sync.Mutex
	sessions map[int64]*userSession
}

// New creates the bot and authorizes against Telegram.
func New(token, apiBaseURL string, store storage.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:        api,
		baseURL:    apiBaseURL,
		store:      store,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
		sessions:   make(map[int64]*userSession),
	}, nil
}

// Start blocks on the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if err := b.handleUpdate(ctx, update); err != nil {
				b.errHandler.Handle(ctx, err)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	var userID, chatID int64
	if update.Message != nil {
		userID = update.Message.From.ID
		chatID = update.Message.Chat.ID
	} else {
		userID = update.CallbackQuery.From.ID
		chatID = update.CallbackQuery.Message.Chat.ID
	}

	us := b.session(ctx, userID, chatID)

	if update.CallbackQuery != nil {
		// Answer the callback first to clear the client's loading state.
		callback := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := b.api.Request(callback); err != nil {
			logger.Warn("Failed to answer callback query", "error", err)
		}
		return b.handleCallback(ctx, us, chatID, update.CallbackQuery.Data)
	}

	if update.Message.IsCommand() {
		return b.handleCommand(ctx, us, update.Message)
	}

	if update.Message.Text != "" {
		return b.handleText(ctx, us, update.Message)
	}

	return nil
}

// session returns the per-user bundle, creating and resolving it on first
// contact. Resolution happens before the first reply, so a user with a
// valid persisted credential never sees the anonymous menu flash by.
func (b *Bot) session(ctx context.Context, userID, chatID int64) *userSession {
	b.mu.Lock()
	us, exists := b.sessions[userID]
	b.mu.Unlock()
	if exists {
		return us
	}

	client := apiclient.New(b.baseURL)
	us = &userSession{
		client: client,
		auth:   session.New(client, b.store, fmt.Sprintf("user:%d:token", userID)),
		meals: mealcache.New(b.store, fmt.Sprintf("user:%d:meal", userID),
			mealcache.WithNotify(func(item domain.MealItem) {
				b.send(chatID, fmt.Sprintf("✅ %s added to your meal!", item.ItemName))
			})),
		workouts:      workoutlog.New(client),
		prefs:         prefs.New(b.store, fmt.Sprintf("user:%d:theme", userID)),
		flow:          stateNone,
		lastTemplates: make(map[string]domain.WorkoutTemplate),
	}
	us.workouts.TrackSession(us.auth)

	us.auth.Resolve(ctx)
	us.meals.Load(ctx)
	us.prefs.Load(ctx)

	b.mu.Lock()
	b.sessions[userID] = us
	b.mu.Unlock()

	logger.Info("Session initialized",
		"user_id", userID,
		"authenticated", us.auth.State() == session.StateAuthenticated)
	return us
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("Failed to send message", "error", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("Failed to send message", "error", err)
	}
}

// reportError surfaces a failure as a transient notice. The stores have
// already left local state untouched, so the user can simply retry.
func (b *Bot) reportError(ctx context.Context, chatID int64, err error) {
	b.errHandler.Handle(ctx, err)
	b.send(chatID, "⚠️ "+apperrors.UserMessage(err))
}

func (b *Bot) sendMainMenu(chatID int64, us *userSession) {
	if us.auth.State() == session.StateAuthenticated {
		name := ""
		if p := us.auth.Profile(); p != nil {
			name = p.Name
		}
		b.sendWithKeyboard(chatID, greeting(name, us.prefs.Current()), mainMenuKeyboard())
		return
	}
	b.sendWithKeyboard(chatID, "Welcome to fitbite! Log in to start tracking your meals and workouts.", anonymousMenuKeyboard())
}
