package service

import (
	"errors"
	"strings"
)

var (
	ErrPasswordRequired  = errors.New("current password and new password are required")
	ErrPasswordTooShort  = errors.New("new password must be at least 6 characters long")
	ErrPasswordCommon    = errors.New("please choose a more secure password")
	ErrPasswordUnchanged = errors.New("new password must be different from current password")
)

const minPasswordLength = 6

var commonPasswords = []string{"password", "123456", "qwerty", "admin123"}

// validateNewPassword applies the change-password policy in order and
// returns the first failure.
func validateNewPassword(current, newPassword string) error {
	if current == "" || newPassword == "" {
		return ErrPasswordRequired
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	lowered := strings.ToLower(newPassword)
	for _, common := range commonPasswords {
		if lowered == common {
			return ErrPasswordCommon
		}
	}
	if newPassword == current {
		return ErrPasswordUnchanged
	}
	return nil
}

// IsPolicyViolation reports whether err is a password-policy failure, i.e. a
// client error rather than a credential or persistence problem.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordCommon) ||
		errors.Is(err, ErrPasswordUnchanged)
}
