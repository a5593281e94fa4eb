package services

import (
	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/services/category/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the category context.
type Services struct {
	Category *CategoryService
}

// New wires the category services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Category: NewCategoryService(postgres.NewCategoryRepository(a.Db), a.Logger),
	}
}
