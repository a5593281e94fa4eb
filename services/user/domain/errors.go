package domain

import "errors"

// Sentinel errors for the user domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates another account already uses the email address.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUser indicates the user violates a domain constraint.
	ErrInvalidUser = errors.New("invalid user")
)
