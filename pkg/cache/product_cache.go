package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultProductTTL applies when NewProductCache is given a zero TTL.
	DefaultProductTTL = time.Hour

	productKeyPrefix = "product"
)

// ErrMiss is returned by Get when no entry exists for the key.
var ErrMiss = errors.New("cache miss")

// CachedCategory is a category reference inside a cached product.
type CachedCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CachedProduct is the denormalized product view stored in Redis, with
// category names already resolved.
type CachedProduct struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity"`
	Categories  []CachedCategory `json:"categories"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductCache reads and writes product entries. Keys are scoped by owner so
// one user's lookup can never hit another user's entry.
// Key format: "product:{ownerID}:{productID}"
type ProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewProductCache returns a ProductCache storing entries for ttl.
func NewProductCache(client redis.Cmdable, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultProductTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

// Get returns the cached product or ErrMiss.
func (c *ProductCache) Get(ctx context.Context, ownerID, productID uuid.UUID) (*CachedProduct, error) {
	raw, err := c.client.Get(ctx, Key(ownerID, productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var p CachedProduct
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &p, nil
}

// Set stores p under its owner-scoped key.
func (c *ProductCache) Set(ctx context.Context, p *CachedProduct) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(p.OwnerID, p.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete evicts an entry. Deleting a missing key is not an error.
func (c *ProductCache) Delete(ctx context.Context, ownerID, productID uuid.UUID) error {
	if err := c.client.Del(ctx, Key(ownerID, productID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Key builds the Redis key for a product.
func Key(ownerID, productID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", productKeyPrefix, ownerID, productID)
}
