package ai

import (
	"errors"
	"fmt"
)

// Kind classifies a failed AI operation.
type Kind int

const (
	// KindNotConfigured means no usable credentials were available.
	KindNotConfigured Kind = iota
	// KindProvider covers transport and upstream API failures.
	KindProvider
	// KindMalformed means the provider responded but the payload could not
	// be interpreted.
	KindMalformed
	// KindTruncated means the provider stopped at its output limit.
	KindTruncated
	// KindTimeout means the call deadline elapsed.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindProvider:
		return "provider"
	case KindMalformed:
		return "malformed"
	case KindTruncated:
		return "truncated"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind, usable with errors.Is.
var (
	ErrNotConfigured = errors.New("ai provider not configured")
	ErrProvider      = errors.New("ai provider request failed")
	ErrMalformed     = errors.New("ai response malformed")
	ErrTruncated     = errors.New("ai response truncated")
	ErrTimeout       = errors.New("ai request timed out")
)

// errNoContent marks a well-formed provider reply that carried no
// completion at all. Absent content without a truncation signal is a
// malformed response, not a provider outage.
var errNoContent = errors.New("provider returned no choices")

// Error is a classified operation failure.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind, so callers can test with
// errors.Is(err, ai.ErrTruncated) without unwrapping manually.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNotConfigured:
		return target == ErrNotConfigured
	case KindProvider:
		return target == ErrProvider
	case KindMalformed:
		return target == ErrMalformed
	case KindTruncated:
		return target == ErrTruncated
	case KindTimeout:
		return target == ErrTimeout
	default:
		return false
	}
}

func opError(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Message renders a user-facing failure message for err.
func Message(err error) string {
	var ae *Error
	if !errors.As(err, &ae) {
		return "AI request failed"
	}
	switch ae.Kind {
	case KindNotConfigured:
		return "AI provider is not configured. Set an API key first."
	case KindTruncated:
		return "The AI response was cut off before completing. Try a shorter prompt."
	case KindMalformed:
		return "The AI response could not be understood."
	case KindTimeout:
		return "The AI request timed out."
	default:
		return "The AI provider request failed."
	}
}
