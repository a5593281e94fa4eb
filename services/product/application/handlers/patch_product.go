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

// PatchProductHandler handles PATCH /products/{id} requests.
type PatchProductHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPatchProductHandler returns a PatchProductHandler backed by the given services.
func NewPatchProductHandler(svc *appsvcs.Services, log logger.Logger) *PatchProductHandler {
	return &PatchProductHandler{svc: svc, log: log}
}

// Execute changes only the supplied fields of one of the caller's products.
//
//	@Summary		Update product fields
//	@Description	Only supplied fields are validated and changed. The name uniqueness check runs only when name is supplied.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Product ID"
//	@Param			request	body		PatchProductRequest	true	"Fields to change"
//	@Success		200		{object}	ProductEnvelope
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope
//	@Router			/products/{id} [patch]
func (h *PatchProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PatchProductRequest](w, r)
	if !ok {
		return
	}
	id, err := productIDParam(r)
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	p, err := h.svc.Product.Patch(r.Context(), ownerID, id, req.Patch())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OKMessage(w, http.StatusOK, MsgUpdated, NewProductResponse(p))
}
