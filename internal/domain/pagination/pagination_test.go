package pagination

import (
	"testing"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

func TestNewParamsValidation(t *testing.T) {
	if _, err := NewParams(0, 10, "", SortAsc); err == nil {
		t.Fatal("page 0 should be rejected")
	}
	if _, err := NewParams(1, 0, "", SortAsc); err == nil {
		t.Fatal("page size 0 should be rejected")
	}
	if _, err := NewParams(1, 101, "", SortAsc); err == nil {
		t.Fatal("page size above the cap should be rejected")
	}
	if _, err := NewParams(1, 100, "", SortAsc); err != nil {
		t.Fatalf("page size at the cap should be valid: %v", err)
	}
	if _, err := NewParams(0, 10, "", SortAsc); !errs.IsCode(err, errs.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewParamsDefaultsSortDirection(t *testing.T) {
	p, err := NewParams(1, 10, "created_at", "sideways")
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	if p.SortDirection != SortAsc {
		t.Fatalf("unknown direction should fall back to asc, got %q", p.SortDirection)
	}
	p, _ = NewParams(1, 10, "created_at", SortDesc)
	if p.SortDirection != SortDesc {
		t.Fatalf("desc should be preserved, got %q", p.SortDirection)
	}
}

func TestSkipTake(t *testing.T) {
	p, err := NewParams(2, 10, "", SortAsc)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	if p.Skip() != 10 {
		t.Fatalf("page 2 size 10 should skip 10, got %d", p.Skip())
	}
	if p.Take() != 10 {
		t.Fatalf("take should equal page size, got %d", p.Take())
	}

	first, _ := NewParams(1, 25, "", SortAsc)
	if first.Skip() != 0 {
		t.Fatalf("first page should skip 0, got %d", first.Skip())
	}
}

func TestPagedResultDerivedFields(t *testing.T) {
	params, _ := NewParams(2, 10, "", SortAsc)
	r := NewPagedResult(make([]int, 10), 25, params)

	if r.TotalPages() != 3 {
		t.Fatalf("25 items at size 10 is 3 pages, got %d", r.TotalPages())
	}
	if !r.HasNextPage() {
		t.Fatal("page 2 of 3 has a next page")
	}
	if !r.HasPreviousPage() {
		t.Fatal("page 2 has a previous page")
	}

	last := NewPagedResult(make([]int, 5), 25, Params{PageNumber: 3, PageSize: 10})
	if last.HasNextPage() {
		t.Fatal("page 3 of 3 has no next page")
	}

	empty := NewPagedResult([]int(nil), 0, Params{PageNumber: 1, PageSize: 10})
	if empty.TotalPages() != 0 || empty.HasNextPage() || empty.HasPreviousPage() {
		t.Fatal("empty result has no pages in either direction")
	}
}
