package prover

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind categorizes client failures.
type ErrorKind int

const (
	ErrInvalidArgument ErrorKind = iota
	ErrTransport
	ErrRemote
	ErrEventNotFound
	ErrChainIDUnavailable
	ErrProofFailed
	ErrProofTimeout
	ErrCancelled
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrTransport:
		return "transport"
	case ErrRemote:
		return "remote"
	case ErrEventNotFound:
		return "event_not_found"
	case ErrChainIDUnavailable:
		return "chain_id_unavailable"
	case ErrProofFailed:
		return "proof_failed"
	case ErrProofTimeout:
		return "proof_timeout"
	case ErrCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the structured error returned by every operation in this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error

	// Set by the polling engine when applicable.
	JobID    string
	Attempts int
	Elapsed  time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("prover %s error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("prover %s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates an error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches the underlying cause.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithJob attaches the job identifier the failure relates to.
func (e *Error) WithJob(jobID string) *Error {
	e.JobID = jobID
	return e
}

// WithAttempts records how many poll attempts were consumed.
func (e *Error) WithAttempts(n int) *Error {
	e.Attempts = n
	return e
}

// WithElapsed records the wall-clock budget spent before failing.
func (e *Error) WithElapsed(d time.Duration) *Error {
	e.Elapsed = d
	return e
}

// IsKind reports whether err is (or wraps) a prover Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
