package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/pagination"
	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
	"github.com/oksasatya/user-account-service/internal/domain/specification"
)

func TestBuildSpecificationDefaultsToActiveOnly(t *testing.T) {
	spec := buildSpecification(SearchFilter{})
	if spec.Name() != "active_only" {
		t.Fatalf("empty filter should be active-only, got %q", spec.Name())
	}
}

func TestBuildSpecificationIncludeDeletedAloneIsMatchAll(t *testing.T) {
	spec := buildSpecification(SearchFilter{IncludeDeleted: true})
	if spec.Name() != "match_all" {
		t.Fatalf("include-deleted alone should be match-all, got %q", spec.Name())
	}
}

func TestBuildSpecificationComposesFilters(t *testing.T) {
	lat, lon := 40.7128, -74.0060
	spec := buildSpecification(SearchFilter{
		Query:           "alice",
		AdultsOnly:      true,
		MinAge:          25,
		MaxAge:          35,
		NearLatitude:    &lat,
		NearLongitude:   &lon,
		RadiusKm:        50,
		CompleteProfile: true,
	})
	want := "active_only+text_search+adult+age_range_25_35+within_radius_50.0km+complete_profile"
	if spec.Name() != want {
		t.Fatalf("composed name %q, want %q", spec.Name(), want)
	}
}

func TestBuildSpecificationMinAgeWithoutMax(t *testing.T) {
	spec := buildSpecification(SearchFilter{MinAge: 21})
	if spec.Name() != "active_only+age_range_21_150" {
		t.Fatalf("open max age should cap at 150, got %q", spec.Name())
	}
}

func TestBuildSpecificationRadiusNeedsAllInputs(t *testing.T) {
	lat := 40.7128
	spec := buildSpecification(SearchFilter{NearLatitude: &lat, RadiusKm: 50})
	if spec.Name() != "active_only" {
		t.Fatalf("radius without longitude should be skipped, got %q", spec.Name())
	}
}

// fakeReadRepo records the specification each call received.
type fakeReadRepo struct {
	lastSpec specification.Specification
	docs     []readmodel.UserDocument
}

func (f *fakeReadRepo) GetByID(_ context.Context, id string) (*readmodel.UserDocument, error) {
	return &readmodel.UserDocument{ID: id}, nil
}

func (f *fakeReadRepo) GetByEmail(_ context.Context, email string) (*readmodel.UserDocument, error) {
	return &readmodel.UserDocument{Email: email}, nil
}

func (f *fakeReadRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) { return true, nil }

func (f *fakeReadRepo) ExistsByPhoneNumber(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (f *fakeReadRepo) GetUsers(_ context.Context, spec specification.Specification, params pagination.Params) (pagination.PagedResult[readmodel.UserDocument], error) {
	f.lastSpec = spec
	return pagination.NewPagedResult(f.docs, int64(len(f.docs)), params), nil
}

func (f *fakeReadRepo) CountUsers(_ context.Context, spec specification.Specification) (int64, error) {
	f.lastSpec = spec
	return int64(len(f.docs)), nil
}

func (f *fakeReadRepo) AnyUsers(_ context.Context, spec specification.Specification) (bool, error) {
	f.lastSpec = spec
	return len(f.docs) > 0, nil
}

func TestSearchUsersPassesComposedSpec(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := &fakeReadRepo{docs: []readmodel.UserDocument{{ID: "u-1"}}}
	svc := NewQueryService(repo, logger)

	params, err := pagination.NewParams(1, 20, "created_at", pagination.SortDesc)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	result, err := svc.SearchUsers(context.Background(), SearchFilter{AdultsOnly: true}, params)
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if repo.lastSpec == nil || repo.lastSpec.Name() != "active_only+adult" {
		t.Fatalf("unexpected spec: %v", repo.lastSpec)
	}
	if result.TotalCount != 1 || len(result.Items) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if _, err := svc.CountUsers(context.Background(), SearchFilter{IncludeDeleted: true}); err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if repo.lastSpec.Name() != "match_all" {
		t.Fatalf("count should use the same builder, got %q", repo.lastSpec.Name())
	}
}
