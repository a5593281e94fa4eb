package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

// PageParams holds the page window requested by a list call.
type PageParams struct {
	Page  int
	Limit int
}

// ParsePageParams reads ?page and ?limit. Missing, malformed, or non-positive
// values fall back to page 1 and defaultLimit; limit is capped at maxLimit.
func ParsePageParams(r *http.Request, defaultLimit, maxLimit int) PageParams {
	q := r.URL.Query()
	p := PageParams{Page: 1, Limit: defaultLimit}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// SplitCSV splits a comma-joined query value, dropping blank segments.
func SplitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
