package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/logger"
	pkgvalidator "github.com/ghuser/inventory/pkg/validator"
	appsvcs "github.com/ghuser/inventory/services/user/application/services"
)

// RegisterHandler handles POST /auth/register requests.
type RegisterHandler struct {
	svc  *appsvcs.Services
	gate *auth.Gate
	log  logger.Logger
}

// NewRegisterHandler returns a RegisterHandler.
func NewRegisterHandler(svc *appsvcs.Services, gate *auth.Gate, log logger.Logger) *RegisterHandler {
	return &RegisterHandler{svc: svc, gate: gate, log: log}
}

// Execute creates an account and signs it in.
//
//	@Summary		Register
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Account"
//	@Success		201		{object}	AuthResponse
//	@Failure		400		{object}	httpx.Envelope
//	@Router			/auth/register [post]
func (h *RegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}
	u, err := h.svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	if err := signIn(w, r, h.gate, u, http.StatusCreated); err != nil {
		errhttp.WriteError(w, r, err, h.log)
	}
}
