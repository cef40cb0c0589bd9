package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/domain/errs"
	repo "github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/pkg/helpers"
	"github.com/oksasatya/user-account-service/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service executes commands against the write side. Reads that tolerate
// eventual consistency go through QueryService instead.
type Service struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	GCS         *storage.Client
	GCSBucket   string
	Redis       *redis.Client
	Logger      *logrus.Logger
	Mail        *helpers.RabbitPublisher
	MailEnabled bool
}

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, gcs *storage.Client, gcsBucket string, rdb *redis.Client, logger *logrus.Logger, mail *helpers.RabbitPublisher, mailEnabled bool) *Service {
	return &Service{
		Repo:        r,
		JWT:         jwt,
		GCS:         gcs,
		GCSBucket:   gcsBucket,
		Redis:       rdb,
		Logger:      logger,
		Mail:        mail,
		MailEnabled: mailEnabled,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Birthdate   *time.Time
	PhoneNumber string
	Latitude    float64
	Longitude   float64
	AboutMe     string
}

// Register creates the aggregate, commits it to the write store and queues a
// welcome email. Uniqueness of email/phone is enforced by the store and
// surfaces as a conflict error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	salt, err := helpers.GenerateSalt()
	if err != nil {
		return nil, errs.Infrastructure("generate salt", err)
	}
	hash, err := helpers.HashPassword(salt, in.Password)
	if err != nil {
		return nil, errs.Infrastructure("hash password", err)
	}

	u, err := entity.NewUser(entity.NewUserInput{
		Email:        in.Email,
		PasswordSalt: salt,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthdate:    in.Birthdate,
		PhoneNumber:  in.PhoneNumber,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		AboutMe:      in.AboutMe,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email().String(),
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name().First()},
	})
	return u, nil
}

// Authenticate validates email/password against the write store and records
// the login on the aggregate.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.VerifyPassword(u.PasswordSalt(), password, u.PasswordHash()) {
		return nil, ErrInvalidCredentials
	}
	if err := u.RecordLogin(); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *Service) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID(), sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID(), sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID(),
			"email":      u.Email().String(),
			"name":       u.Name().String(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID())
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	resp := &LoginResponse{UserID: u.ID(), Email: u.Email().String(), Name: u.Name().String()}
	return resp, pair, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// The refresh token must belong to the current session.
	if s.Redis != nil {
		key := sessionKey(u.ID())
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID(), nil
}

func (s *Service) Logout(ctx context.Context, userID string) {
	if s.Redis != nil && userID != "" {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

// GetProfile reads the authoritative aggregate; profile pages must not show
// stale data right after an update.
func (s *Service) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Birthdate *time.Time
	AboutMe   string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(in.FirstName, in.LastName, in.Birthdate, in.AboutMe); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.refreshSession(ctx, u)
	return u, nil
}

func (s *Service) UpdatePhoneNumber(ctx context.Context, userID, phone string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdatePhoneNumber(phone); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) UpdateLocation(ctx context.Context, userID string, latitude, longitude float64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateLocation(latitude, longitude); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.VerifyPassword(u.PasswordSalt(), current, u.PasswordHash()) {
		return ErrInvalidCredentials
	}
	salt, err := helpers.GenerateSalt()
	if err != nil {
		return errs.Infrastructure("generate salt", err)
	}
	hash, err := helpers.HashPassword(salt, next)
	if err != nil {
		return errs.Infrastructure("hash password", err)
	}
	if err := u.ChangePassword(salt, hash); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email().String(),
		Template: mailer.TemplatePasswordChanged,
		Data:     map[string]any{"Name": u.Name().First(), "Time": nowRFC3339()},
	})
	return nil
}

// UploadProfileImage stores the image in GCS and records the object name on
// the aggregate. Returns the public URL.
func (s *Service) UploadProfileImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errs.Infrastructure("gcs not configured", nil)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", errs.Infrastructure("upload profile image", err)
	}
	if err := u.SetProfileImage(objectPath); err != nil {
		return "", err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) RemoveProfileImage(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.RemoveProfileImage(); err != nil {
		return err
	}
	return s.Repo.Update(ctx, u)
}

// DeleteAccount soft-deletes: the aggregate flips its terminal flag and the
// change reaches the replica as a regular update. Idempotent.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByIDUnfiltered(ctx, userID)
	if err != nil {
		return err
	}
	u.Delete()
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.Logout(ctx, userID)
	return nil
}

// HardDelete removes the row permanently (admin path). The CDC delete event
// tombstones the read document rather than removing it.
func (s *Service) HardDelete(ctx context.Context, userID string) error {
	return s.Repo.Delete(ctx, userID)
}

func (s *Service) refreshSession(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID())
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"name":       u.Name().String(),
		"updated_at": nowRFC3339(),
	})
	if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, pErr := pipe.Exec(ctx); pErr != nil {
		s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *Service) enqueueMail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil || !s.MailEnabled {
		return
	}
	if err := s.Mail.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("enqueue email failed")
	}
}
