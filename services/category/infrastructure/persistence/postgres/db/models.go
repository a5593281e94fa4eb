package db

import (
	"time"

	"github.com/google/uuid"
)

type CategoryCategory struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
