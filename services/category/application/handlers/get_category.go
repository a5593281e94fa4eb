package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/category/application/services"
	categorydomain "github.com/ghuser/inventory/services/category/domain"
)

// GetCategoryHandler handles GET /categories/{id} requests.
type GetCategoryHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetCategoryHandler returns a GetCategoryHandler backed by the given services.
func NewGetCategoryHandler(svc *appsvcs.Services, log logger.Logger) *GetCategoryHandler {
	return &GetCategoryHandler{svc: svc, log: log}
}

// Execute returns one category.
//
//	@Summary		Get category
//	@Tags			categories
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	CategoryEnvelope
//	@Failure		404	{object}	httpx.Envelope
//	@Router			/categories/{id} [get]
func (h *GetCategoryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, r, categorydomain.ErrCategoryNotFound, h.log)
		return
	}
	c, err := h.svc.Category.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OK(w, http.StatusOK, NewCategoryResponse(c))
}
