package auth

import (
	"strings"

	"artvista/internal/apperror"
)

const (
	// MinPasswordLength is the shortest password accepted at sign up.
	MinPasswordLength = 6
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

// ValidateSignUp checks a registration form before it reaches the store.
func ValidateSignUp(email, password, confirm string) error {
	if !validEmail(email) {
		return apperror.Invalid("email", "Please provide a valid email address.")
	}
	if len(password) < MinPasswordLength {
		return apperror.Invalid("password", "Password must be at least 6 characters long.")
	}
	if len(password) > MaxPasswordLength {
		return apperror.Invalid("password", "Password must be at most 72 characters long.")
	}
	if password != confirm {
		return apperror.Invalid("confirm_password", "Passwords do not match.")
	}
	return nil
}

// ValidateSignIn checks a sign-in form before it reaches the store.
func ValidateSignIn(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return apperror.Invalid("email", "Email and password are required.")
	}
	if !validEmail(email) {
		return apperror.Invalid("email", "Please provide a valid email address.")
	}
	return nil
}

func validEmail(email string) bool {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	return !strings.ContainsAny(domain, "@ ")
}
