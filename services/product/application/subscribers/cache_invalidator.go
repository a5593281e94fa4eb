// Package subscribers holds the product event handlers run by the worker.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/events"
	"github.com/ghuser/inventory/pkg/logger"
	productevents "github.com/ghuser/inventory/services/product/domain/events"
)

// ProductCacheEvictor is the part of the product cache the invalidator needs.
type ProductCacheEvictor interface {
	Delete(ctx context.Context, ownerID, productID uuid.UUID) error
}

// CacheInvalidator evicts cached products whenever they change. It never
// writes entries: the topics are consumed independently, so a created or
// updated event may arrive after the delete that followed it. Entries are
// refilled from the database by the read-through in ProductService.GetByID.
//
// Handlers are idempotent; replaying an event re-deletes the same key.
type CacheInvalidator struct {
	cache ProductCacheEvictor
	log   logger.Logger
}

// NewCacheInvalidator returns a CacheInvalidator evicting from c.
func NewCacheInvalidator(c ProductCacheEvictor, log logger.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: c, log: log}
}

// Topics returns the topics the invalidator consumes with their handlers.
func (w *CacheInvalidator) Topics() map[string]events.Handler {
	return map[string]events.Handler{
		productevents.TopicProductCreated: w.HandleCreated,
		productevents.TopicProductUpdated: w.HandleUpdated,
		productevents.TopicProductDeleted: w.HandleDeleted,
	}
}

// Register subscribes every handler on bus. Subscriber errors are logged
// until ctx ends.
func (w *CacheInvalidator) Register(ctx context.Context, bus *events.EventBus) error {
	for topic, h := range w.Topics() {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return err
		}
		go func(topic string) {
			for err := range errCh {
				w.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}
	return nil
}

// HandleCreated drops any entry left under the new product's key.
func (w *CacheInvalidator) HandleCreated(ctx context.Context, msg *message.Message) error {
	var evt productevents.ProductCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode product.created: %w", err)
	}
	return w.evict(ctx, productevents.TopicProductCreated, evt.Product.OwnerID, evt.Product.ID)
}

// HandleUpdated drops the stale entry.
func (w *CacheInvalidator) HandleUpdated(ctx context.Context, msg *message.Message) error {
	var evt productevents.ProductUpdatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode product.updated: %w", err)
	}
	return w.evict(ctx, productevents.TopicProductUpdated, evt.Product.OwnerID, evt.Product.ID)
}

// HandleDeleted drops the entry of the removed product.
func (w *CacheInvalidator) HandleDeleted(ctx context.Context, msg *message.Message) error {
	var evt productevents.ProductDeletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode product.deleted: %w", err)
	}
	return w.evict(ctx, productevents.TopicProductDeleted, evt.OwnerID, evt.ProductID)
}

// evict deletes one key. A failed delete is returned so the bus retries it.
func (w *CacheInvalidator) evict(ctx context.Context, topic string, ownerID, productID uuid.UUID) error {
	if err := w.cache.Delete(ctx, ownerID, productID); err != nil {
		return fmt.Errorf("evict product %s: %w", productID, err)
	}
	w.log.InfoContext(ctx, "cache evicted", "topic", topic, "product_id", productID, "owner_id", ownerID)
	return nil
}
