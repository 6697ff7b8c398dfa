package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrViewNotFound is returned when a session has no open view of a course
	ErrViewNotFound = errors.New("course view not open")
	// ErrUnauthenticated is returned when an operation needs a logged-in session
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials is returned when the remote API rejects a login
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError holds per-field validation messages keyed by JSON field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// statusCoder is implemented by errors carrying a remote HTTP status
type statusCoder interface {
	HTTPStatus() int
}

// RemoteStatus returns the HTTP status of a remote API failure wrapped in err, or 0
func RemoteStatus(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.HTTPStatus()
	}
	return 0
}
