package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	pkgvalidator "github.com/ghuser/inventory/pkg/validator"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
)

// PutProductHandler handles PUT /products/{id} requests.
type PutProductHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPutProductHandler returns a PutProductHandler backed by the given services.
func NewPutProductHandler(svc *appsvcs.Services, log logger.Logger) *PutProductHandler {
	return &PutProductHandler{svc: svc, log: log}
}

// Execute replaces every editable field of one of the caller's products.
//
//	@Summary		Replace product
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Product ID"
//	@Param			request	body		ProductRequest	true	"Product"
//	@Success		200		{object}	ProductEnvelope
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope
//	@Router			/products/{id} [put]
func (h *PutProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ProductRequest](w, r)
	if !ok {
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	p, err := h.svc.Product.Update(r.Context(), ownerID, id, req.Draft())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OKMessage(w, http.StatusOK, MsgUpdated, NewProductResponse(p))
}
