package validation

import (
	"fmt"
	"net/mail"
	"regexp"
)

// UsernamePattern defines the allowed username format. Existing game
// accounts were created against the old backend's user model, so the
// character set and length bound match it: letters, digits and
// @/./+/-/_, up to 150 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_@+.-]+$`)

const (
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 150
	// MinPasswordLen is the minimum password length
	MinPasswordLen = 8
	// MaxEmailLen is the maximum accepted email length
	MaxEmailLen = 254
)

// ValidateUsername checks that a username matches the account rules.
// Format: latin letters (a-z, A-Z), digits (0-9) and @/./+/-/_,
// 1-150 characters.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and @/./+/-/_ characters")
	}

	return nil
}

// ValidateEmail checks that an email address is parseable and a bare
// address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("enter a valid email address")
	}

	if addr.Address != email {
		return fmt.Errorf("enter a valid email address")
	}

	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}
