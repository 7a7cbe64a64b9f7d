package validation

import (
	"errors"
	"fmt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordLength = 6
)

// AuthValidator validates login and registration requests
type AuthValidator struct{}

// NewAuthValidator creates a new AuthValidator
func NewAuthValidator() *AuthValidator {
	return &AuthValidator{}
}

// ValidateUsername checks the username format. Only alphanumeric names are
// accepted, which also keeps per-user record file prefixes unambiguous.
func (v *AuthValidator) ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength)
	}
	for _, r := range username {
		if !isAlphanumeric(r) {
			return errors.New("username must contain only letters and digits")
		}
	}
	return nil
}

// ValidatePassword checks the password strength requirements
func (v *AuthValidator) ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// ValidateLogin validates a complete login request
func (v *AuthValidator) ValidateLogin(username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

// ValidateRegistration validates a complete registration request
func (v *AuthValidator) ValidateRegistration(username, password string) error {
	if err := v.ValidateUsername(username); err != nil {
		return err
	}
	return v.ValidatePassword(password)
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
