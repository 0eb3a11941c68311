package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyMessage is returned for a message with no visible text
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong is returned for a message over the platform limit
	ErrMessageTooLong = errors.New("message exceeds length limit")
)

// Validator checks outgoing messages against the platform limits
type Validator struct {
	maxLength int
}

// NewValidator creates a new validator with the given character limit
func NewValidator(maxLength int) *Validator {
	return &Validator{
		maxLength: maxLength,
	}
}

// MaxLength returns the configured character limit
func (v *Validator) MaxLength() int {
	return v.maxLength
}

// ValidateMessage checks that msg is non-blank and at most maxLength characters.
// Characters are counted as Unicode code points.
func (v *Validator) ValidateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return ErrEmptyMessage
	}

	length := utf8.RuneCountInString(msg)
	if length > v.maxLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrMessageTooLong, length, v.maxLength)
	}

	return nil
}
