package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/inventory/products"

// ProductMetrics counts product writes and read-cache outcomes.
type ProductMetrics struct {
	writes     metric.Int64Counter
	duplicates metric.Int64Counter
	cacheReads metric.Int64Counter
}

// NewProductMetrics registers the product counters on the global meter
// provider. Call after Setup.
func NewProductMetrics() (*ProductMetrics, error) {
	meter := otel.Meter(meterName)

	writes, err := meter.Int64Counter("inventory.product.writes",
		metric.WithDescription("Product create, update, and delete operations that committed"))
	if err != nil {
		return nil, fmt.Errorf("product writes counter: %w", err)
	}
	duplicates, err := meter.Int64Counter("inventory.product.duplicate_name",
		metric.WithDescription("Writes rejected because the owner already has a product with that name"))
	if err != nil {
		return nil, fmt.Errorf("duplicate name counter: %w", err)
	}
	cacheReads, err := meter.Int64Counter("inventory.product.cache_reads",
		metric.WithDescription("Product read-through cache lookups by result"))
	if err != nil {
		return nil, fmt.Errorf("cache reads counter: %w", err)
	}

	return &ProductMetrics{writes: writes, duplicates: duplicates, cacheReads: cacheReads}, nil
}

// Write records a committed write; op is "create", "update", or "delete".
func (m *ProductMetrics) Write(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// DuplicateName records a rejected duplicate.
func (m *ProductMetrics) DuplicateName(ctx context.Context) {
	if m == nil {
		return
	}
	m.duplicates.Add(ctx, 1)
}

// CacheRead records a cache lookup outcome.
func (m *ProductMetrics) CacheRead(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheReads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
