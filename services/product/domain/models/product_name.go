package models

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest product name, in characters.
	MaxNameLength = 100
	// MaxDescriptionLength is the longest description, in characters.
	MaxDescriptionLength = 500
	// MaxQuantity is the largest stock count the quantity column holds.
	MaxQuantity = math.MaxInt32
)

// ProductName is a trimmed, non-empty name of at most MaxNameLength characters.
type ProductName string

// NewProductName trims s and checks its length.
func NewProductName(s string) (ProductName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("product name is required")
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return "", fmt.Errorf("product name must not exceed %d characters", MaxNameLength)
	}
	return ProductName(s), nil
}

// String returns the underlying string value.
func (n ProductName) String() string {
	return string(n)
}

// EqualFold reports whether two names collide under the per-owner
// uniqueness rule.
func (n ProductName) EqualFold(other ProductName) bool {
	return strings.EqualFold(string(n), string(other))
}
