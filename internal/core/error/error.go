package errx

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch on the outcome instead of
// matching message strings.
type Kind int

const (
	// KindUnknown is the zero value for errors that were not classified.
	KindUnknown Kind = iota
	// KindInput marks invalid user input (missing topic, unsupported file
	// type). Surfaced before any remote call is made.
	KindInput
	// KindTimeout marks a remote-call timeout whose retry budget is spent.
	KindTimeout
	// KindTransport marks a non-timeout remote failure. Never retried on the
	// course path.
	KindTransport
	// KindMalformed marks model output that could not be decoded. The raw
	// text stays with the caller for inspection.
	KindMalformed
	// KindRetryBudget marks a call abandoned after its full retry budget.
	KindRetryBudget
	// KindArtifact marks a best-effort disk write failure.
	KindArtifact
	// KindStorage marks a database or cache failure.
	KindStorage
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// UnsupportedFileMessage describes an upload the extractor cannot handle.
	UnsupportedFileMessage = "unsupported file type"
)

// AppError wraps an underlying error with a failure kind and a safe,
// user-facing message.
type AppError struct {
	Err     error
	Kind    Kind
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
func New(err error, kind Kind, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    kind,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// KindOf extracts the Kind from an error chain, or KindUnknown.
func KindOf(err error) Kind {
	var app *AppError
	if errors.As(err, &app) {
		return app.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
