package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
)

// GetProductHandler handles GET /products/{id} requests.
type GetProductHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetProductHandler returns a GetProductHandler backed by the given services.
func NewGetProductHandler(svc *appsvcs.Services, log logger.Logger) *GetProductHandler {
	return &GetProductHandler{svc: svc, log: log}
}

// Execute returns one of the caller's products.
//
//	@Summary		Get product
//	@Tags			products
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	ProductEnvelope
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Router			/products/{id} [get]
func (h *GetProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	p, err := h.svc.Product.GetByID(r.Context(), ownerID, id)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OK(w, http.StatusOK, NewProductResponse(p))
}
