package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/pagination"
	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
	repo "github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/internal/domain/specification"
)

// QueryService answers read-only queries from the eventually consistent
// replica. Callers accept that a just-committed write may not be visible yet.
type QueryService struct {
	ReadRepo repo.UserReadRepository
	Logger   *logrus.Logger
}

func NewQueryService(readRepo repo.UserReadRepository, logger *logrus.Logger) *QueryService {
	return &QueryService{ReadRepo: readRepo, Logger: logger}
}

// SearchFilter is the external search surface; every set field adds one
// specification to the conjunction.
type SearchFilter struct {
	Query           string
	AdultsOnly      bool
	MinAge          int
	MaxAge          int
	NearLatitude    *float64
	NearLongitude   *float64
	RadiusKm        float64
	CompleteProfile bool
	IncludeDeleted  bool
}

// buildSpecification translates a filter into one composed specification.
// With nothing set the result is active-only; IncludeDeleted alone yields an
// explicit match-all.
func buildSpecification(f SearchFilter) specification.Specification {
	b := specification.NewBuilder()
	if !f.IncludeDeleted {
		b.With(specification.ActiveOnly())
	}
	if f.Query != "" {
		b.With(specification.TextSearch(f.Query))
	}
	if f.AdultsOnly {
		b.With(specification.Adult())
	}
	if f.MinAge > 0 || f.MaxAge > 0 {
		maxAge := f.MaxAge
		if maxAge <= 0 {
			maxAge = 150
		}
		b.With(specification.AgeRange(f.MinAge, maxAge))
	}
	if f.NearLatitude != nil && f.NearLongitude != nil && f.RadiusKm > 0 {
		b.With(specification.WithinRadius(*f.NearLatitude, *f.NearLongitude, f.RadiusKm))
	}
	if f.CompleteProfile {
		b.With(specification.CompleteProfile())
	}
	return b.Build()
}

func (s *QueryService) SearchUsers(ctx context.Context, filter SearchFilter, params pagination.Params) (pagination.PagedResult[readmodel.UserDocument], error) {
	return s.ReadRepo.GetUsers(ctx, buildSpecification(filter), params)
}

func (s *QueryService) CountUsers(ctx context.Context, filter SearchFilter) (int64, error) {
	return s.ReadRepo.CountUsers(ctx, buildSpecification(filter))
}

func (s *QueryService) AnyUsers(ctx context.Context, filter SearchFilter) (bool, error) {
	return s.ReadRepo.AnyUsers(ctx, buildSpecification(filter))
}

func (s *QueryService) GetUser(ctx context.Context, id string) (*readmodel.UserDocument, error) {
	return s.ReadRepo.GetByID(ctx, id)
}

func (s *QueryService) GetUserByEmail(ctx context.Context, email string) (*readmodel.UserDocument, error) {
	return s.ReadRepo.GetByEmail(ctx, email)
}

func (s *QueryService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.ReadRepo.ExistsByEmail(ctx, email)
}

func (s *QueryService) PhoneNumberTaken(ctx context.Context, phone string) (bool, error) {
	return s.ReadRepo.ExistsByPhoneNumber(ctx, phone)
}
