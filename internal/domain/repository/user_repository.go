package repository

import (
	"context"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
)

// UserRepository is the write-side port over the relational store. Create and
// Update commit the aggregate inside one transaction and are the point where
// buffered domain events become committed facts: implementations drain and
// publish them only after a successful commit.
type UserRepository interface {
	// Create persists a new aggregate and returns the generated id (also
	// assigned onto the aggregate).
	Create(ctx context.Context, u *entity.User) (string, error)
	Update(ctx context.Context, u *entity.User) error
	// Delete removes the row permanently (hard delete, admin path).
	Delete(ctx context.Context, id string) error
	// GetByID excludes soft-deleted rows.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByIDUnfiltered includes soft-deleted rows (admin path).
	GetByIDUnfiltered(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail excludes soft-deleted rows; used for authentication, which
	// must not depend on the eventually consistent replica.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// EventPublisher receives the domain events drained from an aggregate after
// its write committed.
type EventPublisher interface {
	Publish(ctx context.Context, userID string, events []entity.DomainEvent) error
}
