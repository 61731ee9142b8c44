// Package workoutlog mirrors the server's log of today's workouts. The
// server is authoritative: nothing is added or removed locally until the
// corresponding remote call has succeeded, and a login replaces the local
// sequence wholesale with whatever the server returns.
package workoutlog

import (
	"context"
	"sync"

	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
	"github.com/fitbite/fitbite-bot/internal/logger"
	"github.com/fitbite/fitbite-bot/internal/session"
)

// Input carries the user-entered values for one log request. Which fields
// are read depends on the template's log type.
type Input struct {
	DurationMinutes int
	Sets            int
	Reps            int
}

// Log is the local cache of today's workout entries.
type Log struct {
	api domain.WorkoutAPI

	mu            sync.RWMutex
	entries       []domain.WorkoutEntry
	authenticated bool
}

// New creates an empty log.
func New(api domain.WorkoutAPI) *Log {
	return &Log{api: api}
}

// TrackSession subscribes the log to identity changes: every login triggers
// a fresh fetch and every logout empties the local sequence.
func (l *Log) TrackSession(s *session.Store) {
	s.Subscribe(func(ctx context.Context, state session.State, _ *domain.UserProfile) {
		if state == session.StateAuthenticated {
			l.setAuthenticated(true)
			if err := l.Refresh(ctx); err != nil {
				logger.Warn("Failed to fetch today's workouts", "error", err)
			}
			return
		}
		l.setAuthenticated(false)
		l.mu.Lock()
		l.entries = nil
		l.mu.Unlock()
	})
}

func (l *Log) setAuthenticated(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.authenticated = v
}

// Refresh replaces the local sequence with the server's view of today.
// No merge: the server list wins. Without an authenticated identity the
// sequence is empty and no fetch occurs.
func (l *Log) Refresh(ctx context.Context) error {
	l.mu.RLock()
	authenticated := l.authenticated
	l.mu.RUnlock()

	if !authenticated {
		l.mu.Lock()
		l.entries = nil
		l.mu.Unlock()
		return nil
	}

	entries, err := l.api.TodaysWorkouts(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

// LogWorkout submits one log request shaped by the template's log type and
// appends the server-returned entry on success. Exactly one of the two
// payload shapes is ever sent; a template with an unknown log type is
// rejected before any remote call.
func (l *Log) LogWorkout(ctx context.Context, template domain.WorkoutTemplate, input Input) (*domain.WorkoutEntry, error) {
	var (
		entry *domain.WorkoutEntry
		err   error
	)

	switch template.LogType {
	case domain.LogTypeTime:
		if input.DurationMinutes <= 0 {
			return nil, apperrors.NewValidationError("Duration must be a positive number of minutes")
		}
		entry, err = l.api.LogTimedWorkout(ctx, template.ID, input.DurationMinutes)
	case domain.LogTypeReps:
		if input.Sets <= 0 || input.Reps <= 0 {
			return nil, apperrors.NewValidationError("Sets and reps must be positive numbers")
		}
		entry, err = l.api.LogRepWorkout(ctx, template.ID, input.Sets, input.Reps)
	default:
		return nil, apperrors.NewValidationError("This workout cannot be logged")
	}

	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.entries = append(l.entries, *entry)
	l.mu.Unlock()
	return entry, nil
}

// RemoveWorkout deletes the entry remotely, then drops the matching local
// entry. A failed remote delete leaves the local sequence untouched.
func (l *Log) RemoveWorkout(ctx context.Context, id string) error {
	if err := l.api.DeleteWorkout(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.entries = kept
	return nil
}

// Entries returns a copy of today's entries.
func (l *Log) Entries() []domain.WorkoutEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]domain.WorkoutEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// TotalCaloriesBurned sums caloriesBurned over today's entries.
func (l *Log) TotalCaloriesBurned() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, e := range l.entries {
		total += e.CaloriesBurned
	}
	return total
}
