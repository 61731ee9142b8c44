package domain

import "context"

// AuthAPI is the slice of the remote collaborator used by the session store.
// The implementation carries the bearer credential for all authenticated calls.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	VerifyOTP(ctx context.Context, email, otp string) (token string, err error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	CurrentUser(ctx context.Context) (*UserProfile, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error)
	SetToken(token string)
	ClearToken()
}

// WorkoutAPI is the slice of the remote collaborator used by the workout log.
// The server branches on which fields are present in a log request, so the
// two logging modes are separate calls rather than one request with optional
// fields.
type WorkoutAPI interface {
	TodaysWorkouts(ctx context.Context) ([]WorkoutEntry, error)
	LogTimedWorkout(ctx context.Context, workoutID string, durationMinutes int) (*WorkoutEntry, error)
	LogRepWorkout(ctx context.Context, workoutID string, sets, reps int) (*WorkoutEntry, error)
	DeleteWorkout(ctx context.Context, id string) error
}

// CatalogAPI exposes the read-only outlet and workout catalogs.
type CatalogAPI interface {
	Outlets(ctx context.Context) ([]Outlet, error)
	AllOutlets(ctx context.Context) ([]Outlet, error)
	OutletByID(ctx context.Context, id string) (*Outlet, error)
	WorkoutLibrary(ctx context.Context) ([]WorkoutTemplate, error)
}
