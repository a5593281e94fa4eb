package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
)

// LogoutHandler handles POST /auth/logout requests.
type LogoutHandler struct {
	gate *auth.Gate
	log  logger.Logger
}

// NewLogoutHandler returns a LogoutHandler.
func NewLogoutHandler(gate *auth.Gate, log logger.Logger) *LogoutHandler {
	return &LogoutHandler{gate: gate, log: log}
}

// Execute ends the cookie session. Bearer tokens stay valid until they
// expire; clients drop them on their side.
//
//	@Summary		Log out
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	httpx.Envelope
//	@Failure		401	{object}	httpx.Envelope
//	@Router			/auth/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if store := h.gate.Store(); store != nil {
		if err := auth.EndSession(store, w, r); err != nil {
			errhttp.WriteError(w, r, err, h.log)
			return
		}
	}
	httpx.OKMessage(w, http.StatusOK, "Logged out successfully", nil)
}
