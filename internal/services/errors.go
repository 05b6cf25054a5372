package services

import (
	"errors"
	"fmt"

	"github.com/ac1714/chirp/internal/shared"
)

// ErrorKind is the taxonomy for failed remote calls.
type ErrorKind int

const (
	// KindUnauthorized marks a 401: the persisted token is invalid and
	// has been cleared; the caller should offer re-authentication.
	KindUnauthorized ErrorKind = iota
	// KindRemote marks any other remote failure; the message is surfaced
	// verbatim and the session is left untouched.
	KindRemote
)

// APIError is a classified remote failure.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Kind == KindUnauthorized {
		return fmt.Sprintf("unauthorized (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("spotify API error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps the classification onto the shared sentinel errors so
// callers can branch with [errors.Is].
func (e *APIError) Unwrap() error {
	if e.Kind == KindUnauthorized {
		return shared.ErrUnauthorized
	}
	return shared.ErrAPIRequest
}

// TokenInvalidator clears the persisted credential. Implemented by
// [auth.Manager].
type TokenInvalidator interface {
	Invalidate() error
}

// Classifier maps a failed remote call's status and payload to the error
// taxonomy. A 401 additionally invalidates the session, making the
// re-auth offer the caller's only recovery path.
type Classifier struct {
	auth TokenInvalidator
}

// NewClassifier creates a Classifier bound to the given session.
func NewClassifier(auth TokenInvalidator) *Classifier {
	return &Classifier{auth: auth}
}

// Classify converts a failure status and message into an [*APIError].
// On 401 the persisted token is cleared before returning.
func (c *Classifier) Classify(status int, message string) *APIError {
	if status == 401 {
		if c.auth != nil {
			// Best effort: the caller is told to re-authenticate either way.
			_ = c.auth.Invalidate()
		}
		return &APIError{Kind: KindUnauthorized, Status: status, Message: message}
	}
	return &APIError{Kind: KindRemote, Status: status, Message: message}
}

// AsAPIError unwraps err into an [*APIError] when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
