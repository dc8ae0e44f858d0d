package action

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks user input that is missing or malformed. The
	// provider is never called.
	ErrValidation = errors.New("validation failed")
	// ErrMissingCredential marks a missing API key or service account. The
	// provider is never called.
	ErrMissingCredential = errors.New("missing credential")
	// ErrProvider marks a failure reported by, or while talking to, an
	// external provider.
	ErrProvider = errors.New("provider call failed")
	// ErrInFlight is returned by Runner.Run when a call is already running.
	ErrInFlight = errors.New("action already in flight")
)

// Category is the user-facing class of an action error.
type Category string

const (
	CategoryNone       Category = ""
	CategoryValidation Category = "validation"
	CategoryCredential Category = "credential"
	CategoryProvider   Category = "provider"
	CategoryBusy       Category = "busy"
)

// Classify maps err onto a Category. Unclassified errors count as provider
// errors: whatever went wrong happened outside the node.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	case errors.Is(err, ErrMissingCredential):
		return CategoryCredential
	case errors.Is(err, ErrInFlight):
		return CategoryBusy
	default:
		return CategoryProvider
	}
}

// Message returns the text shown next to the node: err's message with the
// sentinel prefix removed.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrMissingCredential, ErrProvider} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

// Wrap tags an error returned by a provider. Errors matching one of missing
// become ErrMissingCredential, errors already carrying a sentinel pass
// through, and everything else becomes ErrProvider.
func Wrap(err error, missing ...error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrValidation, ErrMissingCredential, ErrProvider, ErrInFlight} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	for _, m := range missing {
		if errors.Is(err, m) {
			return fmt.Errorf("%w: %w", ErrMissingCredential, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrProvider, err)
}
