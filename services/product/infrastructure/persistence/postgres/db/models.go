package db

import (
	"time"

	"github.com/google/uuid"
)

type ProductProduct struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Quantity    int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductCategoryRef struct {
	ProductID    uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
}
