package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is a named tag products reference. Name and Slug are each unique.
type Category struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory builds a Category from a display name, deriving its slug.
func NewCategory(name string) (*Category, error) {
	c := &Category{ID: uuid.New()}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return c, nil
}

// Rename changes the display name and regenerates the slug.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	c.Name = name
	c.Slug = Slugify(name)
	return nil
}

// Slugify lowercases s and replaces each run of whitespace with a single '-'.
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
