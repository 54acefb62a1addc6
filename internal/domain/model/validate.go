package model

import (
	"fmt"
	"strings"
)

// Validate checks a single record. When subjects is non-empty the record's
// subject must be one of them.
func (r ScoreRecord) Validate(subjects []Subject) error {
	return r.validate(-1, subjects)
}

func (r ScoreRecord) validate(index int, subjects []Subject) error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return &RecordError{Index: index, Field: "name", Err: ErrEmptyName}
	case strings.TrimSpace(string(r.Subject)) == "":
		return &RecordError{Index: index, Field: "subject", Err: ErrEmptySubject}
	case r.Number < 0:
		return &RecordError{Index: index, Field: "number", Err: fmt.Errorf("%w: %d", ErrNegativeScore, r.Number)}
	}
	if len(subjects) > 0 && !containsSubject(subjects, r.Subject) {
		return &RecordError{Index: index, Field: "subject", Err: fmt.Errorf("%w: %q", ErrUnknownSubject, r.Subject)}
	}
	return nil
}

// Validate checks every record and stops at the first invalid one.
func Validate(records []ScoreRecord, subjects []Subject) error {
	for i, r := range records {
		if err := r.validate(i, subjects); err != nil {
			return err
		}
	}
	return nil
}

func containsSubject(subjects []Subject, s Subject) bool {
	for _, known := range subjects {
		if known == s {
			return true
		}
	}
	return false
}
