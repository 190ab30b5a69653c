package store

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageParams contains page-number pagination request parameters.
type PageParams struct {
	Page  int // 1-based page number (defaults to 1)
	Limit int // Items per page (defaults to 10, no upper bound)
}

// Normalize corrects out-of-range pagination parameters.
func (p *PageParams) Normalize() {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
}

// Offset returns the number of items to skip for this page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page contains one page of results plus pagination metadata.
type Page[T any] struct {
	Items       []T
	Total       int
	TotalPages  int
	CurrentPage int
	Limit       int
}

// NewPage builds pagination metadata for a page of items.
// total is the full result count across all pages.
func NewPage[T any](items []T, total int, params PageParams) *Page[T] {
	params.Normalize()

	totalPages := total / params.Limit
	if total%params.Limit != 0 {
		totalPages++
	}

	return &Page[T]{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
		Limit:       params.Limit,
	}
}

// Paginate slices a full result set down to the requested page.
// Pages past the end yield an empty (not nil) item slice.
func Paginate[T any](all []T, params PageParams) *Page[T] {
	params.Normalize()

	start := params.Offset()
	end := start + params.Limit

	items := []T{}
	if start < len(all) {
		if end > len(all) {
			end = len(all)
		}
		items = all[start:end]
	}

	return NewPage(items, len(all), params)
}

// HasNext reports whether a page after this one exists.
func (p *Page[T]) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// HasPrev reports whether a page before this one exists.
func (p *Page[T]) HasPrev() bool {
	return p.CurrentPage > 1
}
