// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const (
	MaxUsernameLen = 36
	MaxPasswordLen = 72 // bcrypt input limit
)

var (
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameTooLong = errors.New("username too long")
	ErrPasswordEmpty   = errors.New("password empty")
	ErrPasswordTooLong = errors.New("password too long")
)

// Account is a stored user record. It never enters the room subsystem,
// which only ever sees anonymous display names.
type Account struct {
	Username      string
	PasswordHash  string
	Email         string
	FirstTimeUser bool
}

// ValidateCredentials checks raw signup input before hashing.
func ValidateCredentials(username, password string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if len(password) == 0 {
		return ErrPasswordEmpty
	}
	if len(password) > MaxPasswordLen {
		return ErrPasswordTooLong
	}
	return nil
}
