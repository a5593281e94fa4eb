package services

import (
	"github.com/ghuser/inventory/pkg/app"
	"github.com/ghuser/inventory/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the user context.
type Services struct {
	Auth *AuthService
}

// New wires the user services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Auth: NewAuthService(postgres.NewUserRepository(a.Db), 0, a.Logger),
	}
}
