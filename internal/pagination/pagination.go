// Package pagination implements the two listing styles used by the API:
// page-number (offset) pages and numeric-offset cursors for infinite scroll.
// Both over-fetch one row to learn whether another page exists.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"quillhub/internal/common"
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// OffsetRequest is a 1-based page-number request.
type OffsetRequest struct {
	Page     int
	PageSize int
}

// NewOffsetRequest normalizes page and size. Pages below 1 become 1; pages
// whose offset would not fit in an int are rejected.
func NewOffsetRequest(page, size int, cfg PageSizeConfig) (OffsetRequest, error) {
	if page < 1 {
		page = 1
	}
	pageSize := ClampPageSize(size, cfg)
	if page-1 > math.MaxInt/pageSize {
		return OffsetRequest{}, common.Invalid("page", "is too large")
	}
	return OffsetRequest{Page: page, PageSize: pageSize}, nil
}

// Offset is the number of rows to skip.
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Limit is the number of rows to fetch: one more than the page size.
func (r OffsetRequest) Limit() int {
	return r.PageSize + 1
}

// CursorRequest continues a listing from a numeric offset.
type CursorRequest struct {
	Offset int
	Take   int
}

// ParseCursor decodes an opaque cursor string. Empty means "from the start".
func ParseCursor(cursor string, take int, cfg PageSizeConfig) (CursorRequest, error) {
	req := CursorRequest{Take: ClampPageSize(take, cfg)}
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return req, nil
	}
	offset, err := strconv.Atoi(cursor)
	if err != nil || offset < 0 {
		return CursorRequest{}, common.Invalid("cursor", "must be a non-negative integer")
	}
	req.Offset = offset
	return req, nil
}

// Limit is the number of rows to fetch: one more than Take.
func (r CursorRequest) Limit() int {
	return r.Take + 1
}

// Trim cuts an over-fetched slice down to size and reports whether more rows exist.
func Trim[T any](rows []T, size int) ([]T, bool) {
	if len(rows) > size {
		return rows[:size], true
	}
	return rows, false
}

// Page is the result of an offset listing.
type Page[T any] struct {
	Items   []T  `json:"items"`
	HasMore bool `json:"hasMore"`
	Page    int  `json:"page"`
}

// NewPage builds a Page from over-fetched rows.
func NewPage[T any](rows []T, req OffsetRequest) Page[T] {
	items, more := Trim(rows, req.PageSize)
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, HasMore: more, Page: req.Page}
}

// Window is the result of a cursor listing. NextCursor is empty on the last window.
type Window[T any] struct {
	Items      []T    `json:"items"`
	HasMore    bool   `json:"hasMore"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// NewWindow builds a Window from over-fetched rows.
func NewWindow[T any](rows []T, req CursorRequest) Window[T] {
	items, more := Trim(rows, req.Take)
	if items == nil {
		items = []T{}
	}
	w := Window[T]{Items: items, HasMore: more}
	if more {
		w.NextCursor = strconv.Itoa(req.Offset + len(items))
	}
	return w
}
