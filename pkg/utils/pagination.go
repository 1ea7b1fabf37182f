package utils

import (
	"net/url"
	"strconv"
)

// PaginationParams represents pagination parameters for a list request
type PaginationParams struct {
	Page     int
	PageSize int
}

// ClampPagination normalizes page/limit values the same way the backend does,
// so the client never sends a request the server would silently rewrite.
func ClampPagination(page, pageSize int) PaginationParams {
	if page <= 0 {
		page = 1
	}

	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20 // Default page size
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
	}
}

// Query encodes pagination into the page/limit parameters every admin list
// endpoint accepts.
func (p PaginationParams) Query(extra url.Values) url.Values {
	q := url.Values{}
	for key, vals := range extra {
		for _, v := range vals {
			if v != "" {
				q.Add(key, v)
			}
		}
	}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("limit", strconv.Itoa(p.PageSize))
	return q
}
