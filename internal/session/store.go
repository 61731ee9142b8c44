// Package session holds the authenticated identity for one user of the bot.
// The store resolves a persisted credential once on startup and is the only
// component allowed to touch the token key.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/storage"
)

// State of the session. Unresolved means the persisted credential has not
// been checked yet; dependent views must render nothing rather than assume
// the user is anonymous.
type State int

const (
	StateUnresolved State = iota
	StateAuthenticated
	StateAnonymous
)

// Listener observes transitions into Authenticated or Anonymous. The profile
// is non-nil only when the new state is Authenticated.
type Listener func(ctx context.Context, state State, profile *domain.UserProfile)

// Store is the session state machine: Unresolved -> Authenticated|Anonymous.
type Store struct {
	api      domain.AuthAPI
	storage  storage.Store
	tokenKey string

	mu        sync.RWMutex
	state     State
	profile   *domain.UserProfile
	listeners []Listener
}

// New creates an unresolved session backed by the given credential key.
func New(api domain.AuthAPI, store storage.Store, tokenKey string) *Store {
	return &Store{
		api:      api,
		storage:  store,
		tokenKey: tokenKey,
		state:    StateUnresolved,
	}
}

// Subscribe registers a listener for identity changes. Must be called before
// Resolve so the listener sees the initial transition too.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// State returns the current session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Profile returns the authenticated profile, or nil.
func (s *Store) Profile() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// Resolve checks the persisted credential against the auth collaborator.
// A credential that no longer resolves is discarded so the next startup goes
// straight to Anonymous.
func (s *Store) Resolve(ctx context.Context) {
	token, err := s.storage.Get(ctx, s.tokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read persisted credential", "error", err)
		}
		s.transition(ctx, StateAnonymous, nil)
		return
	}

	s.api.SetToken(token)
	profile, err := s.api.CurrentUser(ctx)
	if err != nil {
		logger.Info("Persisted credential rejected, discarding", "error", err)
		s.api.ClearToken()
		if err := s.storage.Delete(ctx, s.tokenKey); err != nil {
			logger.Warn("Failed to discard stale credential", "error", err)
		}
		s.transition(ctx, StateAnonymous, nil)
		return
	}

	s.transition(ctx, StateAuthenticated, profile)
}

// Login authenticates with email and password, persists the credential and
// transitions to Authenticated.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adoptToken(ctx, token)
}

// VerifyOTP authenticates with an emailed one-time code.
func (s *Store) VerifyOTP(ctx context.Context, email, otp string) error {
	token, err := s.api.VerifyOTP(ctx, email, otp)
	if err != nil {
		return err
	}
	return s.adoptToken(ctx, token)
}

func (s *Store) adoptToken(ctx context.Context, token string) error {
	s.api.SetToken(token)
	profile, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.api.ClearToken()
		return err
	}
	if err := s.storage.Set(ctx, s.tokenKey, token); err != nil {
		// The session is still usable for this run; only persistence failed.
		logger.Warn("Failed to persist credential", "error", err)
	}
	s.transition(ctx, StateAuthenticated, profile)
	return nil
}

// RequestPasswordReset asks the collaborator to email an OTP.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) error {
	return s.api.RequestPasswordReset(ctx, email)
}

// ResetPassword sets a new password using the emailed OTP.
func (s *Store) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return s.api.ResetPassword(ctx, email, otp, newPassword)
}

// UpdateProfile pushes the update to the collaborator and replaces the
// in-memory profile without re-authenticating or notifying listeners.
func (s *Store) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	if s.State() != StateAuthenticated {
		return nil, apperrors.ErrNotLoggedIn
	}
	profile, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
	return profile, nil
}

// Logout clears the in-memory profile and the persisted credential and
// transitions to Anonymous.
func (s *Store) Logout(ctx context.Context) {
	s.api.ClearToken()
	if err := s.storage.Delete(ctx, s.tokenKey); err != nil {
		logger.Warn("Failed to clear persisted credential", "error", err)
	}
	s.transition(ctx, StateAnonymous, nil)
}

func (s *Store) transition(ctx context.Context, state State, profile *domain.UserProfile) {
	s.mu.Lock()
	s.state = state
	s.profile = profile
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, state, profile)
	}
}
