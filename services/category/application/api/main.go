package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/services/category/application/handlers"
	appsvcs "github.com/ghuser/inventory/services/category/application/services"
)

// CategoryRoutes registers the public, read-only category endpoints on the
// provided chi router.
func CategoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.NewListCategoriesHandler(svcs, a.Logger).Execute)
			r.Get("/{id}", handlers.NewGetCategoryHandler(svcs, a.Logger).Execute)
		})
	})
}
