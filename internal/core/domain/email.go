package domain

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated address of the form local@domain.tld.
// The zero value is not a valid Email; use NewEmail.
type Email struct {
	value string
}

// NewEmail validates s and wraps it. It is the only way to obtain a non-zero Email.
func NewEmail(s string) (Email, error) {
	if s == "" {
		return Email{}, NewValidation("email is required", FieldViolation{
			Field: "email", Rule: "required", Message: "email is required",
		})
	}
	// RE2's \s is ASCII-only; unicode spaces are rejected separately.
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 || !emailPattern.MatchString(s) {
		return Email{}, NewValidation("email must be a valid email", FieldViolation{
			Field: "email", Rule: "email", Message: "email must be a valid email",
		})
	}
	return Email{value: s}, nil
}

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
