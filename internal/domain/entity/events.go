package entity

import "time"

// DomainEvent is a fact raised by the aggregate during a command. Events stay
// buffered on the aggregate until the write repository commits and drains
// them.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

type UserCreated struct {
	occurredAt time.Time
	Email      string
	FullName   string
}

func (e UserCreated) EventName() string     { return "user.created" }
func (e UserCreated) OccurredAt() time.Time { return e.occurredAt }

type UserProfileUpdated struct {
	occurredAt time.Time
	UserID     string
	FullName   string
}

func (e UserProfileUpdated) EventName() string     { return "user.profile_updated" }
func (e UserProfileUpdated) OccurredAt() time.Time { return e.occurredAt }

type UserPasswordChanged struct {
	occurredAt time.Time
	UserID     string
}

func (e UserPasswordChanged) EventName() string     { return "user.password_changed" }
func (e UserPasswordChanged) OccurredAt() time.Time { return e.occurredAt }

type UserLoggedIn struct {
	occurredAt time.Time
	UserID     string
}

func (e UserLoggedIn) EventName() string     { return "user.logged_in" }
func (e UserLoggedIn) OccurredAt() time.Time { return e.occurredAt }

type UserDeleted struct {
	occurredAt time.Time
	UserID     string
}

func (e UserDeleted) EventName() string     { return "user.deleted" }
func (e UserDeleted) OccurredAt() time.Time { return e.occurredAt }
