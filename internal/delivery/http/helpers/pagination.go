package helpers

import (
	"net/http"
	"strconv"

	"organizaai/internal/domain"
)

// ParsePagination reads skip and take from the request query string.
// Invalid or missing values fall back to zero; the service layer clamps and
// caps them.
func ParsePagination(r *http.Request) domain.PaginationParams {
	var p domain.PaginationParams
	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			p.Skip = v
		}
	}
	if s := r.URL.Query().Get("take"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			p.Take = v
		}
	}
	return p
}
