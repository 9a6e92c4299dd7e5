// Package listutil parses paging parameters and computes page metadata for long lists.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 25

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{25, 50, 100}

// PageParams carries paging parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed
	PerPage int
}

// ParsePageParams extracts page and per_page from URL query values.
// POST: Page >= 1 and PerPage is one of PerPageOptions
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// PageInfo carries paging metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int // at least 1
}

// NewPageInfo computes paging metadata with Page clamped to [1, TotalPages].
// PRE: total >= 0
func NewPageInfo(p PageParams, total int) PageInfo {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := max((total+perPage-1)/perPage, 1)
	page := min(max(p.Page, 1), totalPages)
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the SQL OFFSET for the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether an earlier page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a later page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number, or 1.
func (p PageInfo) PrevPage() int { return max(p.Page-1, 1) }

// NextPage returns the next page number, or the last page.
func (p PageInfo) NextPage() int { return min(p.Page+1, p.TotalPages) }

// ShowPagination reports whether paging controls are needed.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}
