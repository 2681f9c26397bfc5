package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

const (
	minPasswordLen = 8
	// bcrypt ignores bytes past 72.
	maxPasswordLen = 72
)

// RegisterInput holds parameters for password signup.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if n := utf8.RuneCountInString(strings.TrimSpace(i.Name)); n == 0 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if n > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if n := utf8.RuneCountInString(i.Username); n < 2 || n > 50 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "must be between 2 and 50 characters"})
	}

	errs = appendEmailErr(errs, i.Email)

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < minPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	} else if len(i.Password) > maxPasswordLen {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at most 72 bytes"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	errs = appendEmailErr(errs, i.Email)
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendEmailErr(errs []domain.FieldError, email string) []domain.FieldError {
	switch {
	case email == "":
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > 254:
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	return errs
}
