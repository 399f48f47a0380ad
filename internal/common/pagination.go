// File: internal/common/pagination.go
package common

// PaginationQuery holds common query parameters for paginated endpoints.
type PaginationQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Normalize clamps page and page size to sane values.
func (q *PaginationQuery) Normalize(defaultPageSize, maxPageSize int) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
}

// Offset returns the row offset for the current page.
func (q PaginationQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
