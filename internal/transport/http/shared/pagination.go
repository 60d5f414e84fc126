package shared

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination is a limit/offset window over an in-memory list.
type Pagination struct {
	Limit  int
	Offset int
}

// Pagination reads limit and offset from the query. Missing values fall back
// to defaultLimit and 0; limits above maxLimit are clamped.
func (v *Validator) Pagination(query url.Values, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		v.Check(err == nil && n > 0, "limit", "must be a positive integer")
		if n > 0 {
			p.Limit = n
		}
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		n, err := strconv.Atoi(raw)
		v.Check(err == nil && n >= 0, "offset", "must be zero or a positive integer")
		if n > 0 {
			p.Offset = n
		}
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Page returns the window of items the pagination selects.
func Page[T any](items []T, p Pagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}
