package handlers

import (
	"net/http"

	"github.com/ghuser/inventory/pkg/errhttp"
	"github.com/ghuser/inventory/pkg/httpx"
	"github.com/ghuser/inventory/pkg/logger"
	appsvcs "github.com/ghuser/inventory/services/category/application/services"
)

// ListCategoriesHandler handles GET /categories requests.
type ListCategoriesHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewListCategoriesHandler returns a ListCategoriesHandler backed by the given services.
func NewListCategoriesHandler(svc *appsvcs.Services, log logger.Logger) *ListCategoriesHandler {
	return &ListCategoriesHandler{svc: svc, log: log}
}

// Execute lists every category sorted by name.
//
//	@Summary		List categories
//	@Tags			categories
//	@Produce		json
//	@Success		200	{object}	CategoryListEnvelope
//	@Router			/categories [get]
func (h *ListCategoriesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Category.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, err, h.log)
		return
	}
	data := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		data[i] = NewCategoryResponse(c)
	}
	httpx.OK(w, http.StatusOK, data)
}
