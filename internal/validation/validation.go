// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return fmt.Errorf("username is required")
	}
	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}
	if !regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`).MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, hyphens, and dots")
	}
	return nil
}

// ValidatePassword checks password length bounds. Complexity rules are
// intentionally not enforced.
func ValidatePassword(password string) error {
	if len(password) == 0 {
		return fmt.Errorf("password is required")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// ValidateAge bounds the self-reported age field.
func ValidateAge(age int) error {
	if age <= 0 || age > 150 {
		return fmt.Errorf("age must be between 1 and 150")
	}
	return nil
}
