package db

import (
	"time"

	"github.com/google/uuid"
)

type UserUser struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
