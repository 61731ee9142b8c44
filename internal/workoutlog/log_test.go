package workoutlog

import (
	"context"
	"errors"
	"testing"

	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
	"github.com/fitbite/fitbite-bot/internal/session"
	"github.com/fitbite/fitbite-bot/internal/storage"
)

// fakeWorkoutAPI records which calls were made and with what payload shape.
type fakeWorkoutAPI struct {
	todayEntries []domain.WorkoutEntry
	todayErr     error
	todayCalls   int

	timedCalls []struct {
		workoutID string
		duration  int
	}
	repCalls []struct {
		workoutID  string
		sets, reps int
	}
	logEntry *domain.WorkoutEntry
	logErr   error

	deleteErr   error
	deletedIDs  []string
	deleteCalls int
}

func (f *fakeWorkoutAPI) TodaysWorkouts(context.Context) ([]domain.WorkoutEntry, error) {
	f.todayCalls++
	return f.todayEntries, f.todayErr
}

func (f *fakeWorkoutAPI) LogTimedWorkout(_ context.Context, workoutID string, durationMinutes int) (*domain.WorkoutEntry, error) {
	f.timedCalls = append(f.timedCalls, struct {
		workoutID string
		duration  int
	}{workoutID, durationMinutes})
	return f.logEntry, f.logErr
}

func (f *fakeWorkoutAPI) LogRepWorkout(_ context.Context, workoutID string, sets, reps int) (*domain.WorkoutEntry, error) {
	f.repCalls = append(f.repCalls, struct {
		workoutID  string
		sets, reps int
	}{workoutID, sets, reps})
	return f.logEntry, f.logErr
}

func (f *fakeWorkoutAPI) DeleteWorkout(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func authenticatedLog(api domain.WorkoutAPI) *Log {
	l := New(api)
	l.setAuthenticated(true)
	return l
}

func TestLogWorkout_TimedPayloadShape(t *testing.T) {
	fake := &fakeWorkoutAPI{
		logEntry: &domain.WorkoutEntry{ID: "e1", Name: "Running", Duration: 30, CaloriesBurned: 320},
	}
	l := authenticatedLog(fake)

	template := domain.WorkoutTemplate{ID: "w1", Name: "Running", LogType: domain.LogTypeTime}
	entry, err := l.LogWorkout(context.Background(), template, Input{DurationMinutes: 30})
	if err != nil {
		t.Fatalf("LogWorkout: %v", err)
	}

	if len(fake.timedCalls) != 1 || len(fake.repCalls) != 0 {
		t.Fatalf("timed calls = %d, rep calls = %d; want exactly one timed call", len(fake.timedCalls), len(fake.repCalls))
	}
	if fake.timedCalls[0].workoutID != "w1" || fake.timedCalls[0].duration != 30 {
		t.Errorf("timed call payload = %+v", fake.timedCalls[0])
	}
	if entry.ID != "e1" {
		t.Errorf("entry = %+v, want the server-returned entry", entry)
	}
	if entries := l.Entries(); len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("local entries = %+v", entries)
	}
}

func TestLogWorkout_RepPayloadShape(t *testing.T) {
	fake := &fakeWorkoutAPI{
		logEntry: &domain.WorkoutEntry{ID: "e2", Name: "Push Ups", Sets: 3, Reps: 12, CaloriesBurned: 90},
	}
	l := authenticatedLog(fake)

	template := domain.WorkoutTemplate{ID: "w2", Name: "Push Ups", LogType: domain.LogTypeReps}
	if _, err := l.LogWorkout(context.Background(), template, Input{Sets: 3, Reps: 12}); err != nil {
		t.Fatalf("LogWorkout: %v", err)
	}

	if len(fake.repCalls) != 1 || len(fake.timedCalls) != 0 {
		t.Fatalf("rep calls = %d, timed calls = %d; want exactly one rep call", len(fake.repCalls), len(fake.timedCalls))
	}
	if got := fake.repCalls[0]; got.workoutID != "w2" || got.sets != 3 || got.reps != 12 {
		t.Errorf("rep call payload = %+v", got)
	}
}

func TestLogWorkout_Validation(t *testing.T) {
	cases := []struct {
		name     string
		template domain.WorkoutTemplate
		input    Input
	}{
		{"zero duration", domain.WorkoutTemplate{ID: "w1", LogType: domain.LogTypeTime}, Input{}},
		{"negative duration", domain.WorkoutTemplate{ID: "w1", LogType: domain.LogTypeTime}, Input{DurationMinutes: -5}},
		{"zero sets", domain.WorkoutTemplate{ID: "w2", LogType: domain.LogTypeReps}, Input{Reps: 12}},
		{"zero reps", domain.WorkoutTemplate{ID: "w2", LogType: domain.LogTypeReps}, Input{Sets: 3}},
		{"unknown log type", domain.WorkoutTemplate{ID: "w3", LogType: "distance"}, Input{DurationMinutes: 30}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeWorkoutAPI{}
			l := authenticatedLog(fake)

			_, err := l.LogWorkout(context.Background(), tc.template, tc.input)
			if apperrors.TypeOf(err) != apperrors.ErrorTypeValidation {
				t.Fatalf("err = %v, want a validation error", err)
			}
			if len(fake.timedCalls) != 0 || len(fake.repCalls) != 0 {
				t.Error("invalid input reached the remote collaborator")
			}
			if len(l.Entries()) != 0 {
				t.Error("invalid input changed local state")
			}
		})
	}
}

func TestLogWorkout_RemoteFailureLeavesLocalStateUntouched(t *testing.T) {
	fake := &fakeWorkoutAPI{logErr: errors.New("boom")}
	l := authenticatedLog(fake)

	template := domain.WorkoutTemplate{ID: "w1", LogType: domain.LogTypeTime}
	if _, err := l.LogWorkout(context.Background(), template, Input{DurationMinutes: 30}); err == nil {
		t.Fatal("expected an error")
	}
	if len(l.Entries()) != 0 {
		t.Errorf("failed log added a local entry: %+v", l.Entries())
	}
}

func TestRemoveWorkout(t *testing.T) {
	fake := &fakeWorkoutAPI{
		todayEntries: []domain.WorkoutEntry{
			{ID: "e1", Name: "Running", CaloriesBurned: 300},
			{ID: "e2", Name: "Push Ups", CaloriesBurned: 90},
		},
	}
	l := authenticatedLog(fake)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := l.RemoveWorkout(context.Background(), "e1"); err != nil {
		t.Fatalf("RemoveWorkout: %v", err)
	}
	entries := l.Entries()
	if len(entries) != 1 || entries[0].ID != "e2" {
		t.Fatalf("entries after remove = %+v", entries)
	}
}

func TestRemoveWorkout_RemoteFailureKeepsEntry(t *testing.T) {
	fake := &fakeWorkoutAPI{
		todayEntries: []domain.WorkoutEntry{{ID: "e1", Name: "Running", CaloriesBurned: 300}},
	}
	l := authenticatedLog(fake)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	fake.deleteErr = errors.New("boom")
	if err := l.RemoveWorkout(context.Background(), "e1"); err == nil {
		t.Fatal("expected an error")
	}
	if len(l.Entries()) != 1 {
		t.Errorf("failed remote delete dropped the local entry: %+v", l.Entries())
	}
}

func TestRefresh_AnonymousSkipsFetch(t *testing.T) {
	fake := &fakeWorkoutAPI{
		todayEntries: []domain.WorkoutEntry{{ID: "e1", CaloriesBurned: 300}},
	}
	l := New(fake)

	if err := l.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if fake.todayCalls != 0 {
		t.Errorf("anonymous refresh reached the remote collaborator %d times", fake.todayCalls)
	}
	if len(l.Entries()) != 0 {
		t.Errorf("anonymous refresh produced entries: %+v", l.Entries())
	}
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	fake := &fakeWorkoutAPI{
		logEntry: &domain.WorkoutEntry{ID: "local", CaloriesBurned: 100},
	}
	l := authenticatedLog(fake)
	template := domain.WorkoutTemplate{ID: "w1", LogType: domain.LogTypeTime}
	if _, err := l.LogWorkout(context.Background(), template, Input{DurationMinutes: 10}); err != nil {
		t.Fatal(err)
	}

	fake.todayEntries = []domain.WorkoutEntry{{ID: "server", CaloriesBurned: 250}}
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	entries := l.Entries()
	if len(entries) != 1 || entries[0].ID != "server" {
		t.Fatalf("entries = %+v, want the server list verbatim", entries)
	}
}

func TestTotalCaloriesBurned(t *testing.T) {
	fake := &fakeWorkoutAPI{
		todayEntries: []domain.WorkoutEntry{
			{ID: "e1", CaloriesBurned: 300},
			{ID: "e2", CaloriesBurned: 90.5},
		},
	}
	l := authenticatedLog(fake)
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := l.TotalCaloriesBurned(); got != 390.5 {
		t.Errorf("TotalCaloriesBurned = %v, want 390.5", got)
	}
}

// fakeAuthAPI is the minimal auth collaborator needed to drive a session.
type fakeAuthAPI struct {
	token   string
	profile domain.UserProfile
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (string, error) { return "tok", nil }
func (f *fakeAuthAPI) VerifyOTP(context.Context, string, string) (string, error) {
	return "tok", nil
}
func (f *fakeAuthAPI) RequestPasswordReset(context.Context, string) error      { return nil }
func (f *fakeAuthAPI) ResetPassword(context.Context, string, string, string) error { return nil }
func (f *fakeAuthAPI) CurrentUser(context.Context) (*domain.UserProfile, error) {
	p := f.profile
	return &p, nil
}
func (f *fakeAuthAPI) UpdateProfile(context.Context, domain.ProfileUpdate) (*domain.UserProfile, error) {
	p := f.profile
	return &p, nil
}
func (f *fakeAuthAPI) SetToken(token string) { f.token = token }
func (f *fakeAuthAPI) ClearToken()           { f.token = "" }

func TestTrackSession(t *testing.T) {
	ctx := context.Background()
	workoutAPI := &fakeWorkoutAPI{
		todayEntries: []domain.WorkoutEntry{{ID: "e1", CaloriesBurned: 300}},
	}
	authAPI := &fakeAuthAPI{profile: domain.UserProfile{ID: "u1", Name: "Test"}}
	sess := session.New(authAPI, storage.NewMemoryStore(), "user:1:token")

	l := New(workoutAPI)
	l.TrackSession(sess)

	if err := sess.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if entries := l.Entries(); len(entries) != 1 || entries[0].ID != "e1" {
		t.Fatalf("login did not populate the log: %+v", entries)
	}

	sess.Logout(ctx)
	if entries := l.Entries(); len(entries) != 0 {
		t.Fatalf("logout left entries behind: %+v", entries)
	}
	if workoutAPI.todayCalls != 1 {
		t.Errorf("today fetched %d times, want 1", workoutAPI.todayCalls)
	}
}
