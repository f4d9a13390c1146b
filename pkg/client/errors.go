package client

import (
	"errors"
	"fmt"
)

// AuthError is a 401/403 response: the bearer token is missing, expired
// or rejected. Screens that observe one must drop the session and return
// to the login screen.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// RequestError is any other non-2xx response: a business-rule or server
// failure unrelated to authentication. It is shown inline and leaves the
// session alone.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed: %d", e.StatusCode)
}

// IsAuthError returns true if err (or any wrapped error) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
