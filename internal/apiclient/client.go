// Package apiclient talks to the remote fitbite API. It owns the wire
// format and the mapping from HTTP status codes to the application error
// taxonomy; callers only ever see domain types and AppErrors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fitbite/fitbite-bot/internal/domain"
	apperrors "github.com/fitbite/fitbite-bot/internal/errors"
)

// Client is a bearer-authenticated HTTP client for the remote API. One
// client per user session: the token it carries belongs to a single user.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a client for the API at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken installs the bearer credential used on subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer credential.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type serverError struct {
	Msg string `json:"msg"`
}

// do performs one API call. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrorTypeInternal, "ENCODE", "Failed to encode request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrorTypeInternal, "REQUEST", "Failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewRemoteError(err, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.NewRemoteError(err, path)
		}
	}
	return nil
}

func (c *Client) statusError(resp *http.Response, path string) error {
	var se serverError
	_ = json.NewDecoder(resp.Body).Decode(&se)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		msg := se.Msg
		if msg == "" {
			msg = "Authentication failed"
		}
		return apperrors.New(apperrors.ErrorTypeAuth, "AUTH_FAILED", msg).
			WithContext("endpoint", path)
	case resp.StatusCode < 500:
		msg := se.Msg
		if msg == "" {
			msg = "The server rejected the request"
		}
		return apperrors.New(apperrors.ErrorTypeValidation, "REJECTED", msg).
			WithContext("endpoint", path).
			WithContext("status", resp.StatusCode)
	default:
		return apperrors.New(apperrors.ErrorTypeRemote, "REMOTE_FAILURE", "The server is unavailable right now").
			WithContext("endpoint", path).
			WithContext("status", resp.StatusCode)
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is returned,
// not installed: the session store decides when to adopt it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// VerifyOTP exchanges an emailed one-time code for a bearer token.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	payload := struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}{email, otp}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// RequestPasswordReset triggers an OTP email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	payload := struct {
		Email string `json:"email"`
	}{email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", payload, nil)
}

// ResetPassword sets a new password using the emailed OTP.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	payload := struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}{email, otp, newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", payload, nil)
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile replaces the remote profile and returns the updated copy.
func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, http.MethodPut, "/auth/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Outlets lists the featured outlets.
func (c *Client) Outlets(ctx context.Context) ([]domain.Outlet, error) {
	var outlets []domain.Outlet
	if err := c.do(ctx, http.MethodGet, "/outlets", nil, &outlets); err != nil {
		return nil, err
	}
	return outlets, nil
}

// AllOutlets lists the full outlet catalog.
func (c *Client) AllOutlets(ctx context.Context) ([]domain.Outlet, error) {
	var outlets []domain.Outlet
	if err := c.do(ctx, http.MethodGet, "/outlets/all", nil, &outlets); err != nil {
		return nil, err
	}
	return outlets, nil
}

// OutletByID fetches one outlet with its menu.
func (c *Client) OutletByID(ctx context.Context, id string) (*domain.Outlet, error) {
	var outlet domain.Outlet
	if err := c.do(ctx, http.MethodGet, "/outlets/"+url.PathEscape(id), nil, &outlet); err != nil {
		return nil, err
	}
	return &outlet, nil
}

// WorkoutLibrary fetches the workout template catalog.
func (c *Client) WorkoutLibrary(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	var templates []domain.WorkoutTemplate
	if err := c.do(ctx, http.MethodGet, "/workouts/library", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// TodaysWorkouts fetches today's logged workouts for the authenticated user.
func (c *Client) TodaysWorkouts(ctx context.Context) ([]domain.WorkoutEntry, error) {
	var entries []domain.WorkoutEntry
	if err := c.do(ctx, http.MethodGet, "/workouts/today", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// LogTimedWorkout logs a time-based workout. The payload carries only the
// template id and duration; the server branches on which fields are present,
// so sets/reps must not appear here.
func (c *Client) LogTimedWorkout(ctx context.Context, workoutID string, durationMinutes int) (*domain.WorkoutEntry, error) {
	payload := struct {
		WorkoutID string `json:"workoutId"`
		Duration  int    `json:"duration"`
	}{workoutID, durationMinutes}

	var entry domain.WorkoutEntry
	if err := c.do(ctx, http.MethodPost, "/workouts", payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// LogRepWorkout logs a rep-based workout. Only the template id, sets and
// reps are sent; no duration field.
func (c *Client) LogRepWorkout(ctx context.Context, workoutID string, sets, reps int) (*domain.WorkoutEntry, error) {
	payload := struct {
		WorkoutID string `json:"workoutId"`
		Sets      int    `json:"sets"`
		Reps      int    `json:"reps"`
	}{workoutID, sets, reps}

	var entry domain.WorkoutEntry
	if err := c.do(ctx, http.MethodPost, "/workouts", payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteWorkout removes a logged workout by id.
func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/workouts/%s", url.PathEscape(id)), nil, nil)
}
