package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType classifies failures for surfacing and logging. Auth, validation
// and remote failures are all recoverable by retrying the user action; a
// stale day-scoped cache is recovered silently and is not an error at all.
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRemote     ErrorType = "remote"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is an application error with classification and context.
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is matches by type and code against another AppError, otherwise by the
// wrapped error.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields.
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError recording the caller as its source.
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// TypeOf returns the classification of err, or ErrorTypeInternal when err is
// not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// UserMessage returns the message safe to surface to the user.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// Handler logs errors according to their type.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs err at a severity matching its classification. Auth and
// validation failures are expected user-level events, everything else is a
// real fault.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeAuth, ErrorTypeValidation:
		h.logger.WarnContext(ctx, "Request rejected", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Operation failed", appErr.LogFields()...)
	}
}

// Predefined errors
var (
	ErrInvalidInput   = New(ErrorTypeValidation, "INVALID_INPUT", "Invalid input provided")
	ErrAuthFailed     = New(ErrorTypeAuth, "AUTH_FAILED", "Authentication failed")
	ErrNotLoggedIn    = New(ErrorTypeAuth, "NOT_LOGGED_IN", "You need to log in first")
	ErrRemoteFailure  = New(ErrorTypeRemote, "REMOTE_FAILURE", "The server is unavailable right now")
	ErrStorageFailure = New(ErrorTypeStorage, "STORAGE_FAILURE", "Local storage is unavailable")
)

// Convenience constructors for common errors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewAuthError(err error, message string) *AppError {
	return Wrap(err, ErrorTypeAuth, "AUTH_FAILED", message)
}

func NewRemoteError(err error, endpoint string) *AppError {
	return Wrap(err, ErrorTypeRemote, "REMOTE_FAILURE", "The server is unavailable right now").
		WithContext("endpoint", endpoint)
}

func NewStorageError(err error) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE_FAILURE", "Local storage is unavailable")
}
