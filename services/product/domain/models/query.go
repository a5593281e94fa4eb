package models

import (
	"math"

	"github.com/google/uuid"
)

// ListQuery selects one page of an owner's products.
// Search matches names case-insensitively as an unanchored substring; an
// empty Search means no text filter. A product matches CategoryIDs when it
// carries any of them.
type ListQuery struct {
	OwnerID     uuid.UUID
	Page        int
	Limit       int
	Search      string
	CategoryIDs []uuid.UUID
}

// Window returns the rows to skip and take for q. An offset that would not
// fit in an int saturates at math.MaxInt, which lies past any result set.
func (q ListQuery) Window() (offset, limit int) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt, limit
	}
	return (page - 1) * limit, limit
}

// Page is one window of a filtered, newest-first product listing.
type Page struct {
	Items       []*Product
	CurrentPage int
	TotalPages  int
	TotalCount  int
	HasMore     bool
}

// NewPage computes page metadata for items returned by q out of total matches.
// A page past the end yields no items and HasMore false.
func NewPage(q ListQuery, items []*Product, total int) *Page {
	_, limit := q.Window()
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	if items == nil {
		items = []*Product{}
	}
	return &Page{
		Items:       items,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasMore:     q.Page < totalPages,
	}
}
