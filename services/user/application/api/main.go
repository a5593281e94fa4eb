package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/services/user/application/handlers"
	appsvcs "github.com/ghuser/inventory/services/user/application/services"
)

// AuthRoutes registers account endpoints on the provided chi router.
// Register and login are public; logout and me require a signed-in user.
func AuthRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.NewRegisterHandler(svcs, a.Auth, a.Logger).Execute)
		r.Post("/login", handlers.NewLoginHandler(svcs, a.Auth, a.Logger).Execute)

		r.Group(func(r chi.Router) {
			r.Use(a.Auth.RequireAuth)
			r.Post("/logout", handlers.NewLogoutHandler(a.Auth, a.Logger).Execute)
			r.Get("/me", handlers.NewMeHandler(svcs, a.Logger).Execute)
		})
	})
}
