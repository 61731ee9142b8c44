package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"testing"

	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
)

func bodyKeys(t *testing.T, r *http.Request) ([]string, map[string]interface{}) {
	t.Helper()
	var m map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, m
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		keys, m := bodyKeys(t, r)
		if !reflect.DeepEqual(keys, []string{"email", "password"}) {
			t.Errorf("body keys = %v", keys)
		}
		if m["email"] != "a@b.c" || m["password"] != "pw" {
			t.Errorf("body = %v", m)
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	token, err := New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q", token)
	}
}

func TestBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(domain.UserProfile{ID: "u1", Name: "Test"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("tok-123")
	profile, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if profile.ID != "u1" {
		t.Errorf("profile = %+v", profile)
	}

	c.ClearToken()
	if _, err := c.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser after ClearToken: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after ClearToken = %q, want empty", gotAuth)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		wantType apperrors.ErrorType
		wantMsg  string
	}{
		{"unauthorized", 401, `{"msg":"Invalid credentials"}`, apperrors.ErrorTypeAuth, "Invalid credentials"},
		{"forbidden", 403, ``, apperrors.ErrorTypeAuth, "Authentication failed"},
		{"bad request with message", 400, `{"msg":"Duration is required"}`, apperrors.ErrorTypeValidation, "Duration is required"},
		{"bad request without message", 422, ``, apperrors.ErrorTypeValidation, "The server rejected the request"},
		{"server failure", 500, ``, apperrors.ErrorTypeRemote, "The server is unavailable right now"},
		{"bad gateway", 502, ``, apperrors.ErrorTypeRemote, "The server is unavailable right now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).CurrentUser(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := apperrors.TypeOf(err); got != tc.wantType {
				t.Errorf("type = %v, want %v", got, tc.wantType)
			}
			if got := apperrors.UserMessage(err); got != tc.wantMsg {
				t.Errorf("message = %q, want %q", got, tc.wantMsg)
			}
		})
	}
}

func TestLogTimedWorkout_PayloadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/workouts" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		keys, m := bodyKeys(t, r)
		if !reflect.DeepEqual(keys, []string{"duration", "workoutId"}) {
			t.Errorf("body keys = %v, want exactly duration and workoutId", keys)
		}
		if m["workoutId"] != "w1" || m["duration"] != float64(30) {
			t.Errorf("body = %v", m)
		}
		json.NewEncoder(w).Encode(domain.WorkoutEntry{ID: "e1", Name: "Running", Duration: 30, CaloriesBurned: 320})
	}))
	defer srv.Close()

	entry, err := New(srv.URL).LogTimedWorkout(context.Background(), "w1", 30)
	if err != nil {
		t.Fatalf("LogTimedWorkout: %v", err)
	}
	if entry.ID != "e1" || entry.CaloriesBurned != 320 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestLogRepWorkout_PayloadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys, m := bodyKeys(t, r)
		if !reflect.DeepEqual(keys, []string{"reps", "sets", "workoutId"}) {
			t.Errorf("body keys = %v, want exactly reps, sets and workoutId", keys)
		}
		if m["workoutId"] != "w2" || m["sets"] != float64(3) || m["reps"] != float64(12) {
			t.Errorf("body = %v", m)
		}
		json.NewEncoder(w).Encode(domain.WorkoutEntry{ID: "e2", Name: "Push Ups", Sets: 3, Reps: 12, CaloriesBurned: 90})
	}))
	defer srv.Close()

	entry, err := New(srv.URL).LogRepWorkout(context.Background(), "w2", 3, 12)
	if err != nil {
		t.Fatalf("LogRepWorkout: %v", err)
	}
	if entry.Sets != 3 || entry.Reps != 12 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestDeleteWorkout(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL).DeleteWorkout(context.Background(), "e1"); err != nil {
		t.Fatalf("DeleteWorkout: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/workouts/e1" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
}

func TestOutletByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/outlets/o1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.Outlet{
			ID:   "o1",
			Name: "Green Bowl",
			Menu: []domain.MealItem{{ItemName: "Salad", Calories: 250, Protein: 8, Carbs: 20, Fat: 14}},
		})
	}))
	defer srv.Close()

	outlet, err := New(srv.URL).OutletByID(context.Background(), "o1")
	if err != nil {
		t.Fatalf("OutletByID: %v", err)
	}
	if outlet.Name != "Green Bowl" || len(outlet.Menu) != 1 || outlet.Menu[0].ItemName != "Salad" {
		t.Errorf("outlet = %+v", outlet)
	}
}

func TestWorkoutLibrary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/workouts/library" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]domain.WorkoutTemplate{
			{ID: "w1", Name: "Running", Category: "Cardio", LogType: domain.LogTypeTime},
			{ID: "w2", Name: "Push Ups", Category: "Strength", LogType: domain.LogTypeReps},
		})
	}))
	defer srv.Close()

	templates, err := New(srv.URL).WorkoutLibrary(context.Background())
	if err != nil {
		t.Fatalf("WorkoutLibrary: %v", err)
	}
	if len(templates) != 2 || templates[0].LogType != domain.LogTypeTime || templates[1].LogType != domain.LogTypeReps {
		t.Errorf("templates = %+v", templates)
	}
}

func TestResetPassword_Payload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/reset-password" {
			t.Errorf("path = %s", r.URL.Path)
		}
		keys, m := bodyKeys(t, r)
		if !reflect.DeepEqual(keys, []string{"email", "newPassword", "otp"}) {
			t.Errorf("body keys = %v", keys)
		}
		if m["otp"] != "123456" || m["newPassword"] != "hunter2" {
			t.Errorf("body = %v", m)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL).ResetPassword(context.Background(), "a@b.c", "123456", "hunter2"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
}
