package domain

import "errors"

// Sentinel errors for the category domain. Use errors.Is() to check these.
var (
	// ErrCategoryNotFound indicates no category has the requested ID.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryName indicates a blank category name.
	ErrInvalidCategoryName = errors.New("invalid category name")
)
