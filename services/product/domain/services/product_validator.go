// Package services contains stateless domain services for the product
// bounded context.
package services

import (
	"fmt"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/product/domain/models"
)

// ValidateName rejects names containing control characters. Length and
// trimming are enforced by models.NewProductName.
func ValidateName(name models.ProductName) error {
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return fmt.Errorf("product name must not contain control characters")
		}
	}
	return nil
}

// ValidateForSave checks a product aggregate right before it is persisted.
func ValidateForSave(p *models.Product) error {
	if p == nil {
		return fmt.Errorf("product cannot be nil")
	}
	if p.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}
	if p.OwnerID == uuid.Nil {
		return fmt.Errorf("owner must be set")
	}
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("at least one category must be selected")
	}
	for _, c := range p.Categories {
		if c.ID == uuid.Nil {
			return fmt.Errorf("category id must be set")
		}
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if p.Quantity > models.MaxQuantity {
		return fmt.Errorf("quantity must not exceed %d", models.MaxQuantity)
	}
	return nil
}
