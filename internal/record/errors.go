package record

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MinNameLen is the shortest name the record endpoint accepts.
	MinNameLen = 3
	// MinSaveNameLen is the shortest name a client may save under.
	MinSaveNameLen = 6
)

// ErrNotFound is returned when no record exists for a name.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateName checks that name has at least minLen characters.
func ValidateName(name string, minLen int) error {
	if utf8.RuneCountInString(name) < minLen {
		return &ValidationError{
			Field:  "nameSlug",
			Reason: fmt.Sprintf("must be at least %d characters", minLen),
		}
	}
	return nil
}
