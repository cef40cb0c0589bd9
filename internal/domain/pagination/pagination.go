package pagination

import "github.com/oksasatya/user-account-service/internal/domain/errs"

const (
	MinPageSize = 1
	MaxPageSize = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params is a validated page request. SortBy is optional; SortDirection
// defaults to asc when absent or unrecognized.
type Params struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

func NewParams(pageNumber, pageSize int, sortBy, sortDirection string) (Params, error) {
	if pageNumber < 1 {
		return Params{}, errs.Validation("page_number", "must be greater than or equal to 1")
	}
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return Params{}, errs.Validation("page_size", "must be between 1 and 100")
	}
	if sortDirection != SortAsc && sortDirection != SortDesc {
		sortDirection = SortAsc
	}
	return Params{
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		SortBy:        sortBy,
		SortDirection: sortDirection,
	}, nil
}

func (p Params) Skip() int { return (p.PageNumber - 1) * p.PageSize }
func (p Params) Take() int { return p.PageSize }

// PagedResult carries one page of items plus the total count over the
// filtered set (not the unfiltered store).
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
}

func NewPagedResult[T any](items []T, totalCount int64, params Params) PagedResult[T] {
	return PagedResult[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}
}

func (r PagedResult[T]) TotalPages() int {
	if r.PageSize <= 0 {
		return 0
	}
	return int((r.TotalCount + int64(r.PageSize) - 1) / int64(r.PageSize))
}

func (r PagedResult[T]) HasNextPage() bool     { return r.PageNumber < r.TotalPages() }
func (r PagedResult[T]) HasPreviousPage() bool { return r.PageNumber > 1 }
