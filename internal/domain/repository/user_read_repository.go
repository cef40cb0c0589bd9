package repository

import (
	"context"

	"github.com/oksasatya/user-account-service/internal/domain/pagination"
	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
	"github.com/oksasatya/user-account-service/internal/domain/specification"
)

// UserReadRepository answers queries against the eventually consistent read
// replica. Totals are computed over the filtered set, never the whole index.
type UserReadRepository interface {
	GetByID(ctx context.Context, id string) (*readmodel.UserDocument, error)
	GetByEmail(ctx context.Context, email string) (*readmodel.UserDocument, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error)
	GetUsers(ctx context.Context, spec specification.Specification, params pagination.Params) (pagination.PagedResult[readmodel.UserDocument], error)
	CountUsers(ctx context.Context, spec specification.Specification) (int64, error)
	AnyUsers(ctx context.Context, spec specification.Specification) (bool, error)
}
