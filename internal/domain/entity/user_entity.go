package entity

import (
	"time"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
	"github.com/oksasatya/user-account-service/internal/domain/valueobject"
)

const minSignupAge = 13

// User is the aggregate root for the user domain. All mutation goes through
// the methods below; once deleted, the aggregate rejects every mutator except
// another Delete. Fields are unexported so the lifecycle timestamps and the
// event buffer cannot be touched from outside the aggregate.
type User struct {
	id               string
	email            valueobject.Email
	name             valueobject.FullName
	phone            valueobject.PhoneNumber
	location         valueobject.Location
	birthdate        *time.Time
	aboutMe          string
	passwordSalt     string
	passwordHash     string
	profileImageName string
	createdAt        time.Time
	updatedAt        *time.Time
	lastLogin        time.Time
	deletedAt        *time.Time
	isDeleted        bool

	events []DomainEvent
}

// NewUserInput carries the raw registration inputs; every field is validated
// by its value object before it reaches the aggregate.
type NewUserInput struct {
	Email        string
	PasswordSalt string
	PasswordHash string
	FirstName    string
	LastName     string
	Birthdate    *time.Time
	PhoneNumber  string
	Latitude     float64
	Longitude    float64
	AboutMe      string
}

// NewUser validates all inputs and returns an active aggregate with a single
// UserCreated event pending.
func NewUser(in NewUserInput) (*User, error) {
	email, err := valueobject.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	name, err := valueobject.NewFullName(in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	phone, err := valueobject.NewPhoneNumber(in.PhoneNumber)
	if err != nil {
		return nil, err
	}
	loc, err := valueobject.NewLocation(in.Latitude, in.Longitude)
	if err != nil {
		return nil, err
	}
	if in.PasswordSalt == "" || in.PasswordHash == "" {
		return nil, errs.Validation("password", "credential material is required")
	}
	now := time.Now().UTC()
	if in.Birthdate != nil {
		if ageAt(*in.Birthdate, now) < minSignupAge {
			return nil, errs.Validation("birthdate", "must be at least 13 years old")
		}
	}

	u := &User{
		email:        email,
		name:         name,
		phone:        phone,
		location:     loc,
		birthdate:    in.Birthdate,
		aboutMe:      in.AboutMe,
		passwordSalt: in.PasswordSalt,
		passwordHash: in.PasswordHash,
		createdAt:    now,
	}
	u.record(UserCreated{occurredAt: now, Email: email.String(), FullName: name.String()})
	return u, nil
}

// AssignID sets the identifier generated by the write store. The id is
// immutable once set.
func (u *User) AssignID(id string) error {
	if u.id != "" {
		return errs.InvalidState("user id is already assigned")
	}
	if id == "" {
		return errs.Validation("id", "is required")
	}
	u.id = id
	return nil
}

func (u *User) ensureActive() error {
	if u.isDeleted {
		return errs.InvalidState("user is deleted")
	}
	return nil
}

func (u *User) touch() {
	now := time.Now().UTC()
	u.updatedAt = &now
}

// UpdateProfile replaces name, birthdate and about-me. A ProfileUpdated event
// is raised only when the name actually changes.
func (u *User) UpdateProfile(firstName, lastName string, birthdate *time.Time, aboutMe string) error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	name, err := valueobject.NewFullName(firstName, lastName)
	if err != nil {
		return err
	}
	nameChanged := !u.name.Equals(name)
	u.name = name
	u.birthdate = birthdate
	u.aboutMe = aboutMe
	u.touch()
	if nameChanged {
		u.record(UserProfileUpdated{occurredAt: time.Now().UTC(), UserID: u.id, FullName: name.String()})
	}
	return nil
}

func (u *User) UpdatePhoneNumber(raw string) error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	phone, err := valueobject.NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	u.phone = phone
	u.touch()
	return nil
}

func (u *User) UpdateLocation(latitude, longitude float64) error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	loc, err := valueobject.NewLocation(latitude, longitude)
	if err != nil {
		return err
	}
	u.location = loc
	u.touch()
	return nil
}

func (u *User) ChangePassword(salt, hash string) error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	if salt == "" || hash == "" {
		return errs.Validation("password", "credential material is required")
	}
	u.passwordSalt = salt
	u.passwordHash = hash
	u.touch()
	u.record(UserPasswordChanged{occurredAt: time.Now().UTC(), UserID: u.id})
	return nil
}

func (u *User) SetProfileImage(name string) error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	if name == "" {
		return errs.Validation("profile_image", "image name is required")
	}
	u.profileImageName = name
	u.touch()
	return nil
}

func (u *User) RemoveProfileImage() error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	u.profileImageName = ""
	u.touch()
	return nil
}

// RecordLogin advances LastLogin and raises a UserLoggedIn event.
func (u *User) RecordLogin() error {
	if err := u.ensureActive(); err != nil {
		return err
	}
	now := time.Now().UTC()
	u.lastLogin = now
	u.touch()
	u.record(UserLoggedIn{occurredAt: now, UserID: u.id})
	return nil
}

// Delete marks the aggregate as soft-deleted. It is idempotent: repeated
// calls refresh DeletedAt and never fail. The state is terminal; there is no
// restore operation on the aggregate.
func (u *User) Delete() {
	now := time.Now().UTC()
	first := !u.isDeleted
	u.isDeleted = true
	u.deletedAt = &now
	if first {
		u.record(UserDeleted{occurredAt: now, UserID: u.id})
	}
}

// Age returns the current age derived from birthdate. ok is false when no
// birthdate is set.
func (u *User) Age() (age int, ok bool) {
	if u.birthdate == nil {
		return 0, false
	}
	return ageAt(*u.birthdate, time.Now().UTC()), true
}

// IsAdult reports whether the birthdate is at least 18 years in the past,
// inclusive of the birthday itself.
func (u *User) IsAdult() bool {
	if u.birthdate == nil {
		return false
	}
	cutoff := time.Now().UTC().AddDate(-18, 0, 0)
	return !u.birthdate.After(cutoff)
}

// DistanceTo returns the great-circle distance to the other user in km.
func (u *User) DistanceTo(other *User) float64 {
	return u.location.DistanceTo(other.location)
}

// IsNearby reports whether other is within radiusKm (inclusive boundary).
func (u *User) IsNearby(other *User, radiusKm float64) bool {
	return u.DistanceTo(other) <= radiusKm
}

// ageAt computes full years elapsed between birthdate and at using date
// arithmetic, so leap years do not skew the result.
func ageAt(birthdate, at time.Time) int {
	years := at.Year() - birthdate.Year()
	anniversary := birthdate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

func (u *User) record(e DomainEvent) { u.events = append(u.events, e) }

// DomainEvents returns a copy of the pending event buffer. The write
// repository drains it with ClearDomainEvents after a successful commit, so
// events are never observed for writes that did not durably commit.
func (u *User) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(u.events))
	copy(out, u.events)
	return out
}

func (u *User) ClearDomainEvents() { u.events = nil }

// HasCompleteProfile reports whether all optional profile fields are filled.
func (u *User) HasCompleteProfile() bool {
	return u.birthdate != nil && u.aboutMe != "" && u.profileImageName != "" && !u.phone.IsZero()
}

func (u *User) ID() string                     { return u.id }
func (u *User) Email() valueobject.Email       { return u.email }
func (u *User) Name() valueobject.FullName     { return u.name }
func (u *User) Phone() valueobject.PhoneNumber { return u.phone }
func (u *User) Location() valueobject.Location { return u.location }
func (u *User) Birthdate() *time.Time          { return u.birthdate }
func (u *User) AboutMe() string                { return u.aboutMe }
func (u *User) PasswordSalt() string           { return u.passwordSalt }
func (u *User) PasswordHash() string           { return u.passwordHash }
func (u *User) ProfileImageName() string       { return u.profileImageName }
func (u *User) CreatedAt() time.Time           { return u.createdAt }
func (u *User) UpdatedAt() *time.Time          { return u.updatedAt }
func (u *User) LastLogin() time.Time           { return u.lastLogin }
func (u *User) DeletedAt() *time.Time          { return u.deletedAt }
func (u *User) IsDeleted() bool                { return u.isDeleted }

// RehydrateUserParams mirrors the persisted row; used by repositories only.
type RehydrateUserParams struct {
	ID               string
	Email            string
	FirstName        string
	LastName         string
	PhoneNumber      string
	Latitude         float64
	Longitude        float64
	Birthdate        *time.Time
	AboutMe          string
	PasswordSalt     string
	PasswordHash     string
	ProfileImageName string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	LastLogin        time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

// RehydrateUser restores an aggregate from storage without validation and
// with an empty event buffer.
func RehydrateUser(p RehydrateUserParams) *User {
	return &User{
		id:               p.ID,
		email:            valueobject.RehydrateEmail(p.Email),
		name:             valueobject.RehydrateFullName(p.FirstName, p.LastName),
		phone:            valueobject.RehydratePhoneNumber(p.PhoneNumber),
		location:         valueobject.RehydrateLocation(p.Latitude, p.Longitude),
		birthdate:        p.Birthdate,
		aboutMe:          p.AboutMe,
		passwordSalt:     p.PasswordSalt,
		passwordHash:     p.PasswordHash,
		profileImageName: p.ProfileImageName,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
		lastLogin:        p.LastLogin,
		deletedAt:        p.DeletedAt,
		isDeleted:        p.IsDeleted,
	}
}
