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

// PostProductHandler handles POST /products requests.
type PostProductHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPostProductHandler returns a PostProductHandler backed by the given services.
func NewPostProductHandler(svc *appsvcs.Services, log logger.Logger) *PostProductHandler {
	return &PostProductHandler{svc: svc, log: log}
}

// Execute creates a product owned by the caller.
//
//	@Summary		Create product
//	@Description	Creates a product owned by the caller. Names are unique per owner, case-insensitively.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ProductRequest	true	"Product"
//	@Success		201		{object}	ProductEnvelope
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/products [post]
func (h *PostProductHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Product.Create(r.Context(), ownerID, req.Draft())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	httpx.OKMessage(w, http.StatusCreated, MsgCreated, NewProductResponse(p))
}
