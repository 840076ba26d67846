package auth

import "errors"

// Errors returned by the session store. Messages are shown to the user verbatim.
var (
	ErrDuplicateStaffEmail     = errors.New("This email is reserved for staff. Please use a different email.")
	ErrDuplicateAccount        = errors.New("An account with this email already exists. Please sign in.")
	ErrAccountNotFound         = errors.New("No account found with this email. Please sign up first.")
	ErrIncorrectPassword       = errors.New("Incorrect password. Please try again.")
	ErrInvalidStaffCredentials = errors.New("Invalid staff credentials.")
	ErrInvalidAdminCredentials = errors.New("Invalid admin credentials.")
	ErrLegacyLoginDisabled     = errors.New("Role login is disabled.")
)
