package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks responses that invalidate the session (401). Callers
// test it with errors.Is and downgrade to logged-out state.
var ErrUnauthorized = errors.New("non autorisé")

// ErrInvalidResponse marks a 2xx response whose shape does not match the
// documented contract. It propagates to the calling page, which notifies.
var ErrInvalidResponse = errors.New("réponse du serveur invalide")

// Error is a backend-reported failure: the HTTP status plus the message the
// backend sent, when it sent one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// UserMessage returns the backend's own message, or the given fallback when
// the backend sent none.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
