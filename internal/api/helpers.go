package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/ergolog/internal/errors"
)

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil || v < 1 {
		return def
	}
	return v
}

// queryDate reads a YYYY-MM-DD query parameter; empty means unset.
func queryDate(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.NewValidationError(key, "must be YYYY-MM-DD")
	}
	return &t, nil
}

type pagination struct {
	Page       int
	TotalPages int
	Total      int
}

func newPagination(page, perPage, total int) pagination {
	pages := 1
	if total > 0 && perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return pagination{Page: page, TotalPages: pages, Total: total}
}

func (p pagination) HasPrev() bool { return p.Page > 1 }
func (p pagination) HasNext() bool { return p.Page < p.TotalPages }
