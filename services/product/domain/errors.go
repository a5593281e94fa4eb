package domain

import "errors"

// Sentinel errors for the product domain. Use errors.Is() to check these.
var (
	// ErrProductNotFound covers both a missing ID and a product owned by
	// someone else; callers cannot tell the two apart.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateName indicates the owner already has a product whose name
	// matches case-insensitively.
	ErrDuplicateName = errors.New("product with this name already exists")

	// ErrUnknownCategory indicates a referenced category does not exist.
	ErrUnknownCategory = errors.New("one or more categories do not exist")

	// ErrInvalidProduct indicates the product violates a domain constraint.
	ErrInvalidProduct = errors.New("invalid product")
)
