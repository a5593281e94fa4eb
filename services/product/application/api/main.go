package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/services/product/application/handlers"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
)

// ProductRoutes registers product endpoints on the provided chi router. Every
// route requires an authenticated user.
func ProductRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(a.Auth.RequireAuth)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.NewListProductsHandler(svcs, a.Logger).Execute)
			r.Post("/", handlers.NewPostProductHandler(svcs, a.Logger).Execute)
			r.Get("/{id}", handlers.NewGetProductHandler(svcs, a.Logger).Execute)
			r.Put("/{id}", handlers.NewPutProductHandler(svcs, a.Logger).Execute)
			r.Patch("/{id}", handlers.NewPatchProductHandler(svcs, a.Logger).Execute)
			r.Delete("/{id}", handlers.NewDeleteProductHandler(svcs, a.Logger).Execute)
		})
	})
}
