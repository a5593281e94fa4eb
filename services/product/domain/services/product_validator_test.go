package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/product/domain/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ProductName
		wantErr bool
	}{
		{"plain", "Widget", false},
		{"punctuation", "Widget-2000 (blue) & co.", false},
		{"unicode", "Café crème", false},
		{"tab", "Wid\tget", true},
		{"newline", "Wid\nget", true},
		{"null byte", "Widget\x00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateName(tt.input); (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateForSave(t *testing.T) {
	valid := func() *models.Product {
		return &models.Product{
			ID:         uuid.New(),
			OwnerID:    uuid.New(),
			Name:       "Widget",
			Quantity:   1,
			Categories: []models.CategoryRef{{ID: uuid.New()}},
		}
	}

	t.Run("nil", func(t *testing.T) {
		if err := ValidateForSave(nil); err == nil {
			t.Fatal("expected error for nil product")
		}
	})
	t.Run("valid", func(t *testing.T) {
		if err := ValidateForSave(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	t.Run("zero owner", func(t *testing.T) {
		p := valid()
		p.OwnerID = uuid.Nil
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error for zero owner")
		}
	})
	t.Run("zero id", func(t *testing.T) {
		p := valid()
		p.ID = uuid.Nil
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error for zero id")
		}
	})
	t.Run("no categories", func(t *testing.T) {
		p := valid()
		p.Categories = nil
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error without categories")
		}
	})
	t.Run("nil category id", func(t *testing.T) {
		p := valid()
		p.Categories = append(p.Categories, models.CategoryRef{ID: uuid.Nil})
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error for nil category id")
		}
	})
	t.Run("quantity above column range", func(t *testing.T) {
		p := valid()
		p.Quantity = models.MaxQuantity + 1
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error for oversized quantity")
		}
	})
	t.Run("control character in name", func(t *testing.T) {
		p := valid()
		p.Name = "bad\x07name"
		if err := ValidateForSave(p); err == nil {
			t.Fatal("expected error for control character")
		}
	})
}
