package services

import (
	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/pkg/cache"
	"github.com/ghuser/inventory/services/product/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the product context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Product *ProductService
}

// New wires all product application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewProductRepository(a.Db, a.EventBus)

	var productCache ProductCache
	if a.Redis != nil {
		ttl := cache.DefaultProductTTL
		if a.Config != nil {
			ttl = a.Config.ProductCacheTTL
		}
		productCache = cache.NewProductCache(a.Redis.Client(), ttl)
	}

	return &Services{
		Product: NewProductService(repo, productCache, a.Metrics, a.Logger),
	}
}
