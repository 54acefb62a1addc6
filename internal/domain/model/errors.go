package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record validation. A *RecordError wraps one of these
// and also matches ErrInvalidRecord.
var (
	ErrInvalidRecord   = errors.New("invalid score record")
	ErrEmptyName       = errors.New("name must not be empty")
	ErrEmptySubject    = errors.New("subject must not be empty")
	ErrUnknownSubject  = errors.New("unknown subject")
	ErrNegativeScore   = errors.New("score must not be negative")
	ErrMissingScore    = errors.New("score is required")
	ErrNonIntegerScore = errors.New("score must be an integer")
)

// RecordError reports which record in a list failed and why.
type RecordError struct {
	Index int // position in the input list, -1 when unknown
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %v", ErrInvalidRecord, e.Field, e.Err)
	}
	return fmt.Sprintf("%s #%d: %s: %v", ErrInvalidRecord, e.Index, e.Field, e.Err)
}

// Unwrap exposes both the specific kind and ErrInvalidRecord to errors.Is.
func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}

// Reason returns a short label for metrics.
func (e *RecordError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrEmptyName):
		return "empty_name"
	case errors.Is(e.Err, ErrEmptySubject):
		return "empty_subject"
	case errors.Is(e.Err, ErrUnknownSubject):
		return "unknown_subject"
	case errors.Is(e.Err, ErrNegativeScore):
		return "negative_score"
	case errors.Is(e.Err, ErrMissingScore):
		return "missing_score"
	case errors.Is(e.Err, ErrNonIntegerScore):
		return "non_integer_score"
	default:
		return "other"
	}
}
