package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// ConfigErrorMessage describes an invalid knowledge table or pattern set.
	ConfigErrorMessage = "invalid knowledge configuration"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// SessionNotFoundMessage is returned when no stored state exists for a session.
	SessionNotFoundMessage = "session not found"
)

var (
	// ErrInvalidKnowledge marks configuration errors detected while loading the
	// knowledge table. They are fatal at startup.
	ErrInvalidKnowledge = errors.New("invalid knowledge table")
	// ErrSessionNotFound is returned by repositories when a session has no stored state.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCorruptSession marks stored state that can no longer be decoded.
	ErrCorruptSession = errors.New("corrupt session state")
)

// AppError wraps an underlying error with an HTTP-like status and a safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// Config wraps knowledge/pattern validation problems. The result matches
// ErrInvalidKnowledge with errors.Is.
func Config(problems ...error) error {
	if len(problems) == 0 {
		return nil
	}
	return New(errors.Join(append([]error{ErrInvalidKnowledge}, problems...)...), http.StatusInternalServerError, ConfigErrorMessage)
}

// WrapRedis maps Redis errors to AppError. redis.Nil becomes ErrSessionNotFound.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(errors.Join(ErrSessionNotFound, err), http.StatusNotFound, SessionNotFoundMessage)
	}
	return New(err, http.StatusBadGateway, RedisErrorMessage)
}

// Status returns the status carried by err, or 500 when err is not an AppError.
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// UserMessage returns the safe message carried by err, or SystemErrorMessage.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return SystemErrorMessage
}
