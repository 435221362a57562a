// Package listview derives the list screen's rows from the record cache:
// case-insensitive substring filtering over id, name, and description, and
// fixed-size pagination. The model holds only the search term, the page
// size, and the page index; everything else is recomputed from the records
// passed in, so a derived view is never stale relative to the cache.
package listview

import (
	"strings"

	"vitrine/internal/product"
)

// PageSizes is the fixed set of selectable page sizes.
var PageSizes = []int{5, 10, 20}

// DefaultPageSize is used until the user picks another size.
const DefaultPageSize = 5

// Model is the list view's own state. The zero value is not ready; use New.
type Model struct {
	searchTerm string
	pageSize   int
	page       int // 1-based
}

// New returns a model on page 1 with the given page size, falling back to
// the default when the size is not one of PageSizes.
func New(pageSize int) Model {
	if !validPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return Model{pageSize: pageSize, page: 1}
}

// SearchTerm returns the current search term.
func (m Model) SearchTerm() string { return m.searchTerm }

// PageSize returns the current page size.
func (m Model) PageSize() int { return m.pageSize }

// Page returns the current 1-based page index.
func (m Model) Page() int { return m.page }

// SetSearch replaces the search term and resets to page 1.
func (m Model) SetSearch(term string) Model {
	m.searchTerm = term
	m.page = 1
	return m
}

// SetPageSize switches the page size and resets to page 1. Sizes outside
// the enumerated set are ignored.
func (m Model) SetPageSize(size int) Model {
	if !validPageSize(size) {
		return m
	}
	m.pageSize = size
	m.page = 1
	return m
}

// CyclePageSize advances to the next size in PageSizes, wrapping around.
func (m Model) CyclePageSize() Model {
	for i, size := range PageSizes {
		if size == m.pageSize {
			return m.SetPageSize(PageSizes[(i+1)%len(PageSizes)])
		}
	}
	return m.SetPageSize(DefaultPageSize)
}

// GoTo moves to page n. Requests outside [1, TotalPages] leave the model
// unchanged.
func (m Model) GoTo(n int, records []product.Product) Model {
	if n < 1 || n > m.TotalPages(records) {
		return m
	}
	m.page = n
	return m
}

// Next advances one page when possible.
func (m Model) Next(records []product.Product) Model {
	return m.GoTo(m.page+1, records)
}

// Prev goes back one page when possible.
func (m Model) Prev(records []product.Product) Model {
	return m.GoTo(m.page-1, records)
}

// Filtered returns the records matching the search term, preserving order.
// An empty term matches everything.
func (m Model) Filtered(records []product.Product) []product.Product {
	term := strings.ToLower(strings.TrimSpace(m.searchTerm))
	if term == "" {
		return records
	}
	var out []product.Product
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.ID), term) ||
			strings.Contains(strings.ToLower(rec.Name), term) ||
			strings.Contains(strings.ToLower(rec.Description), term) {
			out = append(out, rec)
		}
	}
	return out
}

// TotalPages returns ceil(filtered/pageSize); zero for an empty filtered set.
func (m Model) TotalPages(records []product.Product) int {
	count := len(m.Filtered(records))
	if count == 0 {
		return 0
	}
	return (count + m.pageSize - 1) / m.pageSize
}

// Rows returns the current page's slice of the filtered records. A page
// index that a shrinking filtered set has left out of range is clamped at
// derivation time.
func (m Model) Rows(records []product.Product) []product.Product {
	filtered := m.Filtered(records)
	page := m.clampedPage(len(filtered))
	if page == 0 {
		return nil
	}
	start := (page - 1) * m.pageSize
	end := start + m.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Showing returns the 1-based "showing from–to of total" range for the
// current page; all zeros when the filtered set is empty.
func (m Model) Showing(records []product.Product) (from, to, total int) {
	total = len(m.Filtered(records))
	if total == 0 {
		return 0, 0, 0
	}
	page := m.clampedPage(total)
	from = (page-1)*m.pageSize + 1
	to = page * m.pageSize
	if to > total {
		to = total
	}
	return from, to, total
}

func (m Model) clampedPage(filteredCount int) int {
	if filteredCount == 0 {
		return 0
	}
	last := (filteredCount + m.pageSize - 1) / m.pageSize
	if m.page > last {
		return last
	}
	return m.page
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
