package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/user/application/services"
)

// MeHandler handles GET /auth/me requests.
type MeHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewMeHandler returns a MeHandler.
func NewMeHandler(svc *appsvcs.Services, log logger.Logger) *MeHandler {
	return &MeHandler{svc: svc, log: log}
}

// Execute returns the signed-in account.
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	UserEnvelope
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/auth/me [get]
func (h *MeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	u, err := h.svc.Auth.Get(r.Context(), userID)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OK(w, http.StatusOK, newUserResponse(u))
}
