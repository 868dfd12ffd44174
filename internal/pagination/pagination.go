package pagination

import "strconv"

// Page describes one page of a listing.
type Page struct {
	Current int
	Size    int
	Total   int
	Pages   int
	Offset  int
}

// Compute derives pagination metadata from a 1-based page number, the
// page size and the total row count. Pages is the number of pages
// needed to show every row, so it is zero for an empty listing.
func Compute(page, size, total int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	pages := 0
	if total > 0 {
		pages = (total + size - 1) / size
	}

	return Page{
		Current: page,
		Size:    size,
		Total:   total,
		Pages:   pages,
		Offset:  (page - 1) * size,
	}
}

// ParsePage coerces a raw page parameter to a usable page number.
// Empty, non-numeric and non-positive values fall back to page 1.
func ParsePage(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 1
	}
	return v
}
