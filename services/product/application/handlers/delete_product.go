package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
)

// DeleteProductHandler handles DELETE /products/{id} requests.
type DeleteProductHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewDeleteProductHandler returns a DeleteProductHandler backed by the given services.
func NewDeleteProductHandler(svc *appsvcs.Services, log logger.Logger) *DeleteProductHandler {
	return &DeleteProductHandler{svc: svc, log: log}
}

// Execute deletes one of the caller's products.
//
//	@Summary		Delete product
//	@Tags			products
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Product ID"
//	@Success		200	{object}	httpx.Envelope
//	@Failure		401	{object}	httpx.Envelope
//	@Failure		404	{object}	httpx.Envelope
//	@Router			/products/{id} [delete]
func (h *DeleteProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.Product.Delete(r.Context(), ownerID, id); err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OKMessage(w, http.StatusOK, MsgDeleted, nil)
}
