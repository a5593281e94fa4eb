package models

import (
	"math"
	"testing"
)

func TestListQuery_Window(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantOffset, wantLim int
	}{
		{1, 10, 0, 10},
		{2, 10, 10, 10},
		{3, 5, 10, 5},
		{0, 5, 0, 5},
		{-4, 0, 0, 1},
		{1<<62 + 1, 4, math.MaxInt, 4},
		{math.MaxInt, 100, math.MaxInt, 100},
		{math.MaxInt, 1, math.MaxInt - 1, 1},
	}
	for _, tt := range tests {
		off, lim := ListQuery{Page: tt.page, Limit: tt.limit}.Window()
		if off != tt.wantOffset || lim != tt.wantLim {
			t.Errorf("Window(page=%d, limit=%d) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, off, lim, tt.wantOffset, tt.wantLim)
		}
	}
}

func TestNewPage_Metadata(t *testing.T) {
	tests := []struct {
		name           string
		page, limit    int
		total          int
		wantTotalPages int
		wantHasMore    bool
	}{
		{"first of three", 1, 5, 12, 3, true},
		{"middle", 2, 5, 12, 3, true},
		{"last partial", 3, 5, 12, 3, false},
		{"beyond last", 4, 5, 12, 3, false},
		{"exact fit", 2, 5, 10, 2, false},
		{"empty", 1, 10, 0, 0, false},
		{"single item", 1, 10, 1, 1, false},
		{"page whose offset overflows", 1<<62 + 1, 4, 12, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(ListQuery{Page: tt.page, Limit: tt.limit}, nil, tt.total)
			if p.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantTotalPages)
			}
			if p.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", p.HasMore, tt.wantHasMore)
			}
			if p.CurrentPage != tt.page || p.TotalCount != tt.total {
				t.Errorf("CurrentPage/TotalCount = %d/%d", p.CurrentPage, p.TotalCount)
			}
			if p.Items == nil {
				t.Error("Items must be non-nil so it encodes as []")
			}
		})
	}
}

func TestNewPage_HasMoreMatchesTotalPagesForEveryPage(t *testing.T) {
	for total := 0; total <= 23; total++ {
		for limit := 1; limit <= 7; limit++ {
			last := NewPage(ListQuery{Page: 1, Limit: limit}, nil, total).TotalPages
			for page := 1; page <= last+1; page++ {
				p := NewPage(ListQuery{Page: page, Limit: limit}, nil, total)
				if want := (total + limit - 1) / limit; p.TotalPages != want {
					t.Fatalf("total=%d limit=%d: TotalPages=%d want %d", total, limit, p.TotalPages, want)
				}
				if p.HasMore != (page < p.TotalPages) {
					t.Fatalf("total=%d limit=%d page=%d: HasMore=%v", total, limit, page, p.HasMore)
				}
			}
		}
	}
}

func TestListQuery_WindowNeverWrapsToEarlierRows(t *testing.T) {
	for _, limit := range []int{2, 3, 10, 100} {
		for _, page := range []int{math.MaxInt / limit, math.MaxInt/limit + 1, math.MaxInt/limit + 2, math.MaxInt} {
			off, _ := ListQuery{Page: page, Limit: limit}.Window()
			if off < 0 || off < page-1 {
				t.Fatalf("Window(page=%d, limit=%d) offset = %d", page, limit, off)
			}
		}
	}
}
