package shared

// Filter holds paging and ordering for list queries
type Filter struct {
	Search   string
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// Normalize clamps paging to sane bounds.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return f
}

// Offset returns the row offset of the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
