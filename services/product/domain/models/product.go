package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CategoryRef is a product's link to a category, with the name resolved.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// Product is the aggregate for this bounded context. Every read and write is
// scoped by OwnerID.
type Product struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        ProductName
	Description string
	Quantity    int
	Categories  []CategoryRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft holds the caller-supplied fields of a full create or replace.
type Draft struct {
	Name        string
	Description string
	Quantity    int
	CategoryIDs []uuid.UUID
}

// Patch holds the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Name        *string
	Description *string
	Quantity    *int
	CategoryIDs []uuid.UUID
}

// NewProduct builds a Product for ownerID from d.
func NewProduct(ownerID uuid.UUID, d Draft) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Replace(d); err != nil {
		return nil, err
	}
	p.UpdatedAt = now
	return p, nil
}

// Replace overwrites every editable field with d.
func (p *Product) Replace(d Draft) error {
	return p.Apply(Patch{
		Name:        &d.Name,
		Description: &d.Description,
		Quantity:    &d.Quantity,
		CategoryIDs: d.CategoryIDs,
	})
}

// Apply changes the fields present in patch. On error p is unchanged.
func (p *Product) Apply(patch Patch) error {
	next := *p

	if patch.Name != nil {
		name, err := NewProductName(*patch.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if desc == "" {
			return fmt.Errorf("description is required")
		}
		if utf8.RuneCountInString(desc) > MaxDescriptionLength {
			return fmt.Errorf("description must not exceed %d characters", MaxDescriptionLength)
		}
		next.Description = desc
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return fmt.Errorf("quantity cannot be negative")
		}
		if *patch.Quantity > MaxQuantity {
			return fmt.Errorf("quantity must not exceed %d", MaxQuantity)
		}
		next.Quantity = *patch.Quantity
	}
	if patch.CategoryIDs != nil {
		ids := dedupe(patch.CategoryIDs)
		for _, id := range ids {
			if id == uuid.Nil {
				return fmt.Errorf("invalid category id %s", id)
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("at least one category must be selected")
		}
		next.Categories = make([]CategoryRef, len(ids))
		for i, id := range ids {
			next.Categories[i] = CategoryRef{ID: id}
		}
	}

	next.UpdatedAt = time.Now().UTC()
	*p = next
	return nil
}

// CategoryIDs returns the referenced category IDs in order.
func (p *Product) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Categories))
	for i, c := range p.Categories {
		ids[i] = c.ID
	}
	return ids
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
