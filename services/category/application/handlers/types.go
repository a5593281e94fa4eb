package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/services/category/domain/models"
)

// CategoryResponse is the JSON shape of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"_id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string    `json:"name"      example:"Home & Garden"`
	Slug      string    `json:"slug"      example:"home-&-garden"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
} // @name Category

// NewCategoryResponse renders c.
func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CategoryListEnvelope documents GET /categories responses.
type CategoryListEnvelope struct {
	Success bool               `json:"success" example:"true"`
	Data    []CategoryResponse `json:"data"`
} // @name CategoryListEnvelope

// CategoryEnvelope documents GET /categories/{id} responses.
type CategoryEnvelope struct {
	Success bool             `json:"success" example:"true"`
	Data    CategoryResponse `json:"data"`
} // @name CategoryEnvelope
