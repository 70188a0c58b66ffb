// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common application errors.
var (
	// Input errors. Rejected locally, never sent to the service.
	ErrInvalidInput = errors.New("invalid input")

	// Service errors.
	ErrNetwork     = errors.New("network error")
	ErrServer      = errors.New("server error")
	ErrEmptyResult = errors.New("no data for the selected period")

	// State errors.
	ErrNotReady = errors.New("nothing staged to classify")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ServerError is a non-2xx response from the classification service.
type ServerError struct {
	Message    string
	StatusCode int
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return ErrServer
}

// NetworkError wraps a transport failure (timeout, refused connection).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// NewNetworkError wraps err as a network failure.
func NewNetworkError(err error) error {
	return &NetworkError{Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// DisplayMessage picks the message to show for err. Server messages are
// passed through verbatim; when the server gave none, fallback is used.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return fallback
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	if errors.Is(err, ErrNetwork) || errors.Is(err, ErrInvalidInput) {
		return err.Error()
	}

	return fallback
}

// ServerMessage returns the message the service attached to err, or fallback
// when err is not a service response or the service gave no message.
func ServerMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return fallback
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNetwork) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryable determines if an error should trigger a retry. Transport
// failures and rate limiting are transient; everything else is final.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) || IsNetworkError(err)
}
