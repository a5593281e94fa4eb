package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/httpx"
	productdomain "github.com/ghuser/inventory/services/product/domain"
	"github.com/ghuser/inventory/services/product/domain/models"
)

// Success messages.
const (
	MsgCreated = "Product created successfully"
	MsgUpdated = "Product updated successfully"
	MsgDeleted = "Product deleted successfully"
)

// Page size defaults for GET /products.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ProductRequest is the request body for POST /products and PUT /products/{id}.
// Quantity is a json.Number so "5" and 5 both decode and non-integers are
// reported as a field error rather than a decode failure.
type ProductRequest struct {
	Name        string      `json:"name"        validate:"required,maxrunes=100"    example:"Wireless Mouse"`
	Description string      `json:"description" validate:"required,maxrunes=500"    example:"Ergonomic 2.4GHz mouse"`
	Quantity    json.Number `json:"quantity"    validate:"required,wholenumber,intmax=2147483647" example:"25" swaggertype:"integer"`
	Categories  []string    `json:"categories"  validate:"required,min=1,dive,uuid,notniluuid" example:"550e8400-e29b-41d4-a716-446655440000"`
} // @name ProductRequest

// Normalize trims text fields before validation.
func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// FieldMessage supplies the user-facing message per field and rule.
func (r *ProductRequest) FieldMessage(field, tag, _ string) string {
	return fieldMessage(field, tag)
}

// Draft converts a validated request into a domain draft.
func (r *ProductRequest) Draft() models.Draft {
	qty, _ := strconv.Atoi(r.Quantity.String())
	return models.Draft{
		Name:        r.Name,
		Description: r.Description,
		Quantity:    qty,
		CategoryIDs: mustUUIDs(r.Categories),
	}
}

// PatchProductRequest is the request body for PATCH /products/{id}. Absent
// fields are left unchanged; present fields follow the same rules as POST.
type PatchProductRequest struct {
	Name        *string      `json:"name,omitempty"        validate:"omitnil,required,maxrunes=100"`
	Description *string      `json:"description,omitempty" validate:"omitnil,required,maxrunes=500"`
	Quantity    *json.Number `json:"quantity,omitempty"    validate:"omitnil,required,wholenumber,intmax=2147483647" swaggertype:"integer"`
	Categories  []string     `json:"categories,omitempty"  validate:"omitnil,min=1,dive,uuid,notniluuid"`
} // @name PatchProductRequest

// Normalize trims text fields before validation.
func (r *PatchProductRequest) Normalize() {
	if r.Name != nil {
		s := strings.TrimSpace(*r.Name)
		r.Name = &s
	}
	if r.Description != nil {
		s := strings.TrimSpace(*r.Description)
		r.Description = &s
	}
}

// FieldMessage supplies the user-facing message per field and rule.
func (r *PatchProductRequest) FieldMessage(field, tag, _ string) string {
	return fieldMessage(field, tag)
}

// Patch converts a validated request into a domain patch.
func (r *PatchProductRequest) Patch() models.Patch {
	p := models.Patch{Name: r.Name, Description: r.Description}
	if r.Quantity != nil {
		qty, _ := strconv.Atoi(r.Quantity.String())
		p.Quantity = &qty
	}
	if r.Categories != nil {
		p.CategoryIDs = mustUUIDs(r.Categories)
	}
	return p
}

func fieldMessage(field, tag string) string {
	switch field {
	case "name":
		if tag == "required" {
			return "Product name is required"
		}
		return "Product name must not exceed 100 characters"
	case "description":
		if tag == "required" {
			return "Description is required"
		}
		return "Description must not exceed 500 characters"
	case "quantity":
		switch tag {
		case "required":
			return "Quantity is required"
		case "intmax":
			return fmt.Sprintf("Quantity must not exceed %d", models.MaxQuantity)
		}
		return "Quantity must be a positive number"
	case "categories":
		if tag == "uuid" || tag == "notniluuid" {
			return "Invalid category ID format"
		}
		return "At least one category must be selected"
	}
	return ""
}

// mustUUIDs parses ids that already passed uuid validation.
func mustUUIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		if id, err := uuid.Parse(s); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// CategoryRefResponse is a category embedded in a product.
type CategoryRefResponse struct {
	ID   uuid.UUID `json:"_id"  example:"550e8400-e29b-41d4-a716-446655440000"`
	Name string    `json:"name" example:"Electronics"`
} // @name CategoryRef

// ProductResponse is the JSON shape of a product.
type ProductResponse struct {
	ID          uuid.UUID             `json:"_id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string                `json:"name"        example:"Wireless Mouse"`
	Description string                `json:"description" example:"Ergonomic 2.4GHz mouse"`
	Quantity    int                   `json:"quantity"    example:"25"`
	Categories  []CategoryRefResponse `json:"categories"`
	User        uuid.UUID             `json:"user"        example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	CreatedAt   time.Time             `json:"createdAt"   example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time             `json:"updatedAt"   example:"2024-01-15T10:30:00Z"`
} // @name Product

// NewProductResponse renders p.
func NewProductResponse(p *models.Product) ProductResponse {
	cats := make([]CategoryRefResponse, len(p.Categories))
	for i, c := range p.Categories {
		cats[i] = CategoryRefResponse{ID: c.ID, Name: c.Name}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name.String(),
		Description: p.Description,
		Quantity:    p.Quantity,
		Categories:  cats,
		User:        p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductEnvelope documents single-product responses.
type ProductEnvelope struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty" example:"Product created successfully"`
	Data    ProductResponse `json:"data"`
} // @name ProductEnvelope

// ProductListEnvelope documents GET /products responses.
type ProductListEnvelope struct {
	Success    bool              `json:"success" example:"true"`
	Data       []ProductResponse `json:"data"`
	Pagination httpx.Pagination  `json:"pagination"`
} // @name ProductListEnvelope

// productIDParam reads {id}. A malformed id cannot name any product, so it is
// reported as not found.
func productIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, productdomain.ErrProductNotFound
	}
	return id, nil
}
