package pagination

import (
	"fmt"
)

// DefaultPageSize is used when a request does not specify a size.
const DefaultPageSize = 10

// Page describes one page of a multi-row read.
type Page struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
}

// Paginate turns a total row count, page size and requested page into a page
// descriptor. TotalPages is ceiling division with a floor of one page, so an
// empty result set still reports page 1 of 1.
func Paginate(totalRows int64, pageSize, requestedPage int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("invalid page size: %d", pageSize)
	}
	if requestedPage <= 0 {
		return Page{}, fmt.Errorf("invalid page: %d", requestedPage)
	}

	totalPages := int((totalRows + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	return Page{
		CurrentPage:  requestedPage,
		TotalPages:   totalPages,
		TotalRecords: totalRows,
	}, nil
}

// Offset returns the SQL offset for the page described by p and size.
func (p Page) Offset(pageSize int) int {
	return (p.CurrentPage - 1) * pageSize
}
