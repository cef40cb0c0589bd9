package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/domain/errs"
	"github.com/oksasatya/user-account-service/internal/domain/repository"
)

const userColumns = `id, email, password_salt, password_hash, first_name, last_name,
	birthdate, phone_number, latitude, longitude, about_me, profile_image_name,
	created_at, updated_at, last_login, deleted_at, is_deleted`

// UserRepository persists the user aggregate in Postgres. Each write is a
// single-statement transaction; domain events are drained and published only
// after the statement committed.
type UserRepository struct {
	pool   *pgxpool.Pool
	events repository.EventPublisher
	logger *logrus.Logger
}

func NewUserRepository(pool *pgxpool.Pool, events repository.EventPublisher, logger *logrus.Logger) *UserRepository {
	return &UserRepository{pool: pool, events: events, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (string, error) {
	var id string
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_salt, password_hash, first_name, last_name,
			birthdate, phone_number, latitude, longitude, about_me, profile_image_name,
			created_at, last_login, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`,
		u.Email().String(), u.PasswordSalt(), u.PasswordHash(),
		u.Name().First(), u.Name().Last(), u.Birthdate(), u.Phone().String(),
		u.Location().Latitude(), u.Location().Longitude(), u.AboutMe(),
		u.ProfileImageName(), u.CreatedAt(), nullableTime(u.LastLogin()), u.IsDeleted(),
	)
	if err := row.Scan(&id); err != nil {
		return "", mapWriteError(err)
	}
	if err := u.AssignID(id); err != nil {
		return "", err
	}
	r.drainEvents(ctx, u)
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_salt = $2, password_hash = $3, first_name = $4,
			last_name = $5, birthdate = $6, phone_number = $7, latitude = $8,
			longitude = $9, about_me = $10, profile_image_name = $11,
			updated_at = $12, last_login = $13, deleted_at = $14, is_deleted = $15
		WHERE id = $16
	`,
		u.Email().String(), u.PasswordSalt(), u.PasswordHash(),
		u.Name().First(), u.Name().Last(), u.Birthdate(), u.Phone().String(),
		u.Location().Latitude(), u.Location().Longitude(), u.AboutMe(),
		u.ProfileImageName(), u.UpdatedAt(), nullableTime(u.LastLogin()),
		u.DeletedAt(), u.IsDeleted(), u.ID(),
	)
	if err != nil {
		return mapWriteError(err)
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound("user not found")
	}
	r.drainEvents(ctx, u)
	return nil
}

// Delete removes the row permanently; the soft-delete path goes through
// Update with the aggregate's IsDeleted flag set.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errs.Infrastructure("delete user", err)
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND is_deleted = FALSE`, id)
}

func (r *UserRepository) GetByIDUnfiltered(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND is_deleted = FALSE`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var p entity.RehydrateUserParams
	var lastLogin *time.Time

	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(
		&p.ID, &p.Email, &p.PasswordSalt, &p.PasswordHash, &p.FirstName, &p.LastName,
		&p.Birthdate, &p.PhoneNumber, &p.Latitude, &p.Longitude, &p.AboutMe,
		&p.ProfileImageName, &p.CreatedAt, &p.UpdatedAt, &lastLogin, &p.DeletedAt,
		&p.IsDeleted,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("user not found")
		}
		return nil, errs.Infrastructure("query user", err)
	}
	if lastLogin != nil {
		p.LastLogin = *lastLogin
	}
	return entity.RehydrateUser(p), nil
}

// drainEvents publishes and clears the aggregate's event buffer after a
// successful commit. Publish failures are logged, not returned: the write is
// already durable.
func (r *UserRepository) drainEvents(ctx context.Context, u *entity.User) {
	events := u.DomainEvents()
	if len(events) == 0 {
		return
	}
	if r.events != nil {
		if err := r.events.Publish(ctx, u.ID(), events); err != nil && r.logger != nil {
			r.logger.WithError(err).WithField("user_id", u.ID()).Warn("publish domain events failed")
		}
	}
	u.ClearDomainEvents()
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "phone") {
			return errs.Conflict("phone number already in use")
		}
		return errs.Conflict("email already in use")
	}
	return errs.Infrastructure("write user", err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
