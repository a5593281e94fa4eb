package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics published by the product repository inside the write transaction.
const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
)

// EventVersion is the schema version stamped on every product event.
const EventVersion = 1

// CategorySnapshot is a resolved category reference carried in events.
type CategorySnapshot struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductSnapshot is the full product state after a write.
type ProductSnapshot struct {
	ID          uuid.UUID          `json:"id"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Quantity    int                `json:"quantity"`
	Categories  []CategorySnapshot `json:"categories"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ProductCreatedEvent is published after a product is inserted.
type ProductCreatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ProductUpdatedEvent is published after a product is changed.
type ProductUpdatedEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Version    int             `json:"version"`
	Product    ProductSnapshot `json:"product"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ProductDeletedEvent is published after a product is removed.
type ProductDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ProductID  uuid.UUID `json:"product_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
