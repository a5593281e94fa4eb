package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/logger"
	pkgvalidator "github.com/ghuser/inventory/pkg/validator"
	appsvcs "github.com/ghuser/inventory/services/user/application/services"
)

// LoginHandler handles POST /auth/login requests.
type LoginHandler struct {
	svc  *appsvcs.Services
	gate *auth.Gate
	log  logger.Logger
}

// NewLoginHandler returns a LoginHandler.
func NewLoginHandler(svc *appsvcs.Services, gate *auth.Gate, log logger.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, gate: gate, log: log}
}

// Execute checks credentials, returns a bearer token, and starts a cookie session.
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	AuthResponse
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/auth/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}
	u, err := h.svc.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	if err := signIn(w, r, h.gate, u, http.StatusOK); err != nil {
		errhttp.WriteError(w, r, err, h.log)
	}
}
