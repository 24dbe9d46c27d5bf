package store

// PageOptions selects one page of a list or search result.
// Skip is always (Page-1)*Limit; both Page and Limit are at least 1.
type PageOptions struct {
	Page  int
	Limit int
	Skip  int
}

// NewPageOptions normalizes page and limit, substituting defaults (page=1,
// limit=10) for non-positive values, and derives Skip.
func NewPageOptions(page, limit int) PageOptions {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return PageOptions{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// Page is one page of results plus the metadata needed to fetch the rest.
// Total counts every row matching the underlying query, ignoring pagination.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// newPage assembles a Page, deriving TotalPages = ceil(total/limit).
func newPage[T any](data []T, total int64, opts PageOptions) *Page[T] {
	if data == nil {
		data = []T{}
	}
	pages := total / int64(opts.Limit)
	if total%int64(opts.Limit) != 0 {
		pages++
	}
	return &Page[T]{
		Data:       data,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: pages,
	}
}
