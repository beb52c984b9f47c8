package oracle

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrValidation indicates the query was rejected before any network call.
	ErrValidation = errors.New("invalid query")

	// ErrNetwork indicates the fetch itself failed.
	ErrNetwork = errors.New("network error")
)

// ValidationError lists every rule the query violated.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+" "+v.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NetworkError reports a transport failure. Message keeps the original
// transport error text.
type NetworkError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("%s (%s)", ErrNetwork.Error(), e.Kind)
	}
	return fmt.Sprintf("%s (%s): %s", ErrNetwork.Error(), e.Kind, e.Message)
}

// Unwrap exposes both the sentinel and the underlying transport error.
func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}
