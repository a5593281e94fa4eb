package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/inventory/pkg/auth"
	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	pkgvalidator "github.com/ghuser/inventory/pkg/validator"
	appsvcs "github.com/ghuser/inventory/services/product/application/services"
	"github.com/ghuser/inventory/services/product/domain/models"
)

// ListProductsHandler handles GET /products requests.
type ListProductsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewListProductsHandler returns a ListProductsHandler backed by the given services.
func NewListProductsHandler(svc *appsvcs.Services, log logger.Logger) *ListProductsHandler {
	return &ListProductsHandler{svc: svc, log: log}
}

// Execute lists the caller's products, newest first.
//
//	@Summary		List products
//	@Description	Lists the caller's products newest first, optionally filtered by a case-insensitive name substring and by any of a set of categories
//	@Tags			products
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int		false	"Page number (default 1)"
//	@Param			limit		query		int		false	"Page size (default 10, max 100)"
//	@Param			search		query		string	false	"Name substring, case-insensitive"
//	@Param			categories	query		string	false	"Comma-separated category IDs; matches any"
//	@Success		200			{object}	ProductListEnvelope
//	@Failure		400			{object}	httpx.Envelope
//	@Failure		401			{object}	httpx.Envelope
//	@Router			/products [get]
func (h *ListProductsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := auth.UserIDFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	params := httpx.ParsePageParams(r, DefaultPageSize, MaxPageSize)
	categoryIDs, ok := parseCategoryFilter(r.URL.Query().Get("categories"))
	if !ok {
		httpx.FailFields(w, http.StatusBadRequest, pkgvalidator.ValidationFailedMessage, []httpx.FieldError{
			{Field: "categories", Message: "Invalid category ID format"},
		})
		return
	}

	page, err := h.svc.Product.List(r.Context(), models.ListQuery{
		OwnerID:     ownerID,
		Page:        params.Page,
		Limit:       params.Limit,
		Search:      r.URL.Query().Get("search"),
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}

	data := make([]ProductResponse, len(page.Items))
	for i, p := range page.Items {
		data[i] = NewProductResponse(p)
	}
	httpx.OKPage(w, data, httpx.Pagination{
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalCount:  page.TotalCount,
		HasMore:     page.HasMore,
	})
}

// parseCategoryFilter parses a comma-joined id list. Duplicates are dropped.
func parseCategoryFilter(raw string) ([]uuid.UUID, bool) {
	parts := httpx.SplitCSV(raw)
	if len(parts) == 0 {
		return nil, true
	}
	seen := make(map[uuid.UUID]bool, len(parts))
	ids := make([]uuid.UUID, 0, len(parts))
	for _, s := range parts {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, false
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, true
}
