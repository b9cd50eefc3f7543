package metrics

import (
	"sort"

	"github.com/hance08/findash/internal/model"
)

// SortNewestFirst returns a copy ordered by timestamp descending. Records
// with equal timestamps keep API order; records without one go last.
func SortNewestFirst(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)

	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := out[i].Time()
		tj, okJ := out[j].Time()
		switch {
		case okI && okJ:
			return ti.After(tj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}

// Recent returns at most limit transactions, newest first.
func Recent(txs []model.Transaction, limit int) []model.Transaction {
	sorted := SortNewestFirst(txs)
	if limit < 0 {
		limit = 0
	}
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Page is one slice of a paginated listing.
type Page struct {
	Items      []model.Transaction
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// Paginate sorts newest first and returns the 1-based page. size is clamped to 1..maxSize.
func Paginate(txs []model.Transaction, page, size, maxSize int) Page {
	if maxSize < 1 {
		maxSize = 1
	}
	if size < 1 {
		size = 1
	}
	if size > maxSize {
		size = maxSize
	}

	total := len(txs)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	sorted := SortNewestFirst(txs)
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Items:      sorted[start:end],
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}
}
