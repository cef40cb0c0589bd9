package entity

import (
	"testing"
	"time"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

func validInput() NewUserInput {
	bd := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	return NewUserInput{
		Email:        "alice@example.com",
		PasswordSalt: "salt",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Anderson",
		Birthdate:    &bd,
		PhoneNumber:  "+14155550100",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		AboutMe:      "Coffee first.",
	}
}

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(validInput())
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := u.AssignID("u-1"); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	return u
}

func TestNewUserRecordsCreatedEvent(t *testing.T) {
	u, err := NewUser(validInput())
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	events := u.DomainEvents()
	if len(events) != 1 {
		t.Fatalf("expected exactly one pending event, got %d", len(events))
	}
	if events[0].EventName() != "user.created" {
		t.Fatalf("unexpected event name %q", events[0].EventName())
	}
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*NewUserInput)
	}{
		{"bad email", func(in *NewUserInput) { in.Email = "nope" }},
		{"missing first name", func(in *NewUserInput) { in.FirstName = " " }},
		{"bad phone", func(in *NewUserInput) { in.PhoneNumber = "123" }},
		{"latitude out of range", func(in *NewUserInput) { in.Latitude = 91 }},
		{"missing credentials", func(in *NewUserInput) { in.PasswordHash = "" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if _, err := NewUser(in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		} else if !errs.IsCode(err, errs.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestNewUserRejectsUnderage(t *testing.T) {
	in := validInput()
	young := time.Now().UTC().AddDate(-12, 0, 0)
	in.Birthdate = &young
	if _, err := NewUser(in); err == nil {
		t.Fatal("expected error for under-13 birthdate")
	}
}

func TestAssignIDIsImmutable(t *testing.T) {
	u := newTestUser(t)
	if err := u.AssignID("u-2"); err == nil {
		t.Fatal("expected error when re-assigning id")
	} else if !errs.IsCode(err, errs.CodeInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestUpdateProfileEventOnlyOnNameChange(t *testing.T) {
	u := newTestUser(t)
	u.ClearDomainEvents()

	if err := u.UpdateProfile("Alice", "Anderson", u.Birthdate(), "New about"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got := len(u.DomainEvents()); got != 0 {
		t.Fatalf("unchanged name should not raise an event, got %d", got)
	}

	if err := u.UpdateProfile("Alicia", "Anderson", u.Birthdate(), "New about"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	events := u.DomainEvents()
	if len(events) != 1 || events[0].EventName() != "user.profile_updated" {
		t.Fatalf("expected one profile_updated event, got %v", events)
	}
	if u.UpdatedAt() == nil {
		t.Fatal("UpdatedAt should be set after a mutation")
	}
}

func TestChangePasswordRaisesEvent(t *testing.T) {
	u := newTestUser(t)
	u.ClearDomainEvents()
	if err := u.ChangePassword("salt2", "hash2"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	events := u.DomainEvents()
	if len(events) != 1 || events[0].EventName() != "user.password_changed" {
		t.Fatalf("expected password_changed event, got %v", events)
	}
	if u.PasswordSalt() != "salt2" || u.PasswordHash() != "hash2" {
		t.Fatal("credential material not replaced")
	}
}

func TestRecordLoginAdvancesLastLogin(t *testing.T) {
	u := newTestUser(t)
	u.ClearDomainEvents()
	if !u.LastLogin().IsZero() {
		t.Fatal("fresh user should have zero last login")
	}
	if err := u.RecordLogin(); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	if u.LastLogin().IsZero() {
		t.Fatal("last login should be set")
	}
	events := u.DomainEvents()
	if len(events) != 1 || events[0].EventName() != "user.logged_in" {
		t.Fatalf("expected logged_in event, got %v", events)
	}
}

func TestDeleteIsIdempotentAndTerminal(t *testing.T) {
	u := newTestUser(t)
	u.ClearDomainEvents()

	u.Delete()
	if !u.IsDeleted() || u.DeletedAt() == nil {
		t.Fatal("user should be soft-deleted")
	}
	first := *u.DeletedAt()

	u.Delete()
	if got := len(u.DomainEvents()); got != 1 {
		t.Fatalf("repeated delete should raise only one event, got %d", got)
	}
	if u.DeletedAt().Before(first) {
		t.Fatal("repeated delete should refresh DeletedAt")
	}

	// All mutators reject a deleted aggregate and raise nothing further.
	u.ClearDomainEvents()
	checks := []error{
		u.UpdateProfile("Bob", "Brown", nil, ""),
		u.UpdatePhoneNumber("+14155550101"),
		u.UpdateLocation(1, 1),
		u.ChangePassword("s", "h"),
		u.SetProfileImage("img.png"),
		u.RemoveProfileImage(),
		u.RecordLogin(),
	}
	for i, err := range checks {
		if err == nil {
			t.Fatalf("mutator %d should fail on deleted user", i)
		}
		if !errs.IsCode(err, errs.CodeInvalidState) {
			t.Fatalf("mutator %d: expected invalid state, got %v", i, err)
		}
	}
	if got := len(u.DomainEvents()); got != 0 {
		t.Fatalf("rejected mutators must not raise events, got %d", got)
	}
}

func TestAgeAndAdult(t *testing.T) {
	u := newTestUser(t)

	in := validInput()
	in.Birthdate = nil
	noBD, err := NewUser(in)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if _, ok := noBD.Age(); ok {
		t.Fatal("age should be unknown without birthdate")
	}
	if noBD.IsAdult() {
		t.Fatal("user without birthdate is not an adult")
	}

	if age, ok := u.Age(); !ok || age < 18 {
		t.Fatalf("expected adult age, got %d ok=%v", age, ok)
	}
	if !u.IsAdult() {
		t.Fatal("1990 birthdate should be adult")
	}
}

func TestIsAdultBoundary(t *testing.T) {
	now := time.Now().UTC()

	in := validInput()
	exactly18 := now.AddDate(-18, 0, 0)
	in.Birthdate = &exactly18
	u, err := NewUser(in)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if !u.IsAdult() {
		t.Fatal("18th birthday today counts as adult")
	}

	in = validInput()
	almost := now.AddDate(-18, 0, 1)
	in.Birthdate = &almost
	u, err = NewUser(in)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if u.IsAdult() {
		t.Fatal("17 years and 364 days is not adult")
	}
}

func TestDistanceAndNearby(t *testing.T) {
	nyc := newTestUser(t)

	in := validInput()
	in.Email = "bob@example.com"
	in.PhoneNumber = "+14155550101"
	in.Latitude = 51.5074
	in.Longitude = -0.1278
	london, err := NewUser(in)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}

	d := nyc.DistanceTo(london)
	if d < 5500 || d > 5650 {
		t.Fatalf("unexpected NYC-London distance: %f km", d)
	}
	if nyc.IsNearby(london, 100) {
		t.Fatal("London is not within 100 km of NYC")
	}
	if !nyc.IsNearby(london, d) {
		t.Fatal("radius boundary should be inclusive")
	}
}

func TestHasCompleteProfile(t *testing.T) {
	u := newTestUser(t)
	if u.HasCompleteProfile() {
		t.Fatal("profile without image is incomplete")
	}
	if err := u.SetProfileImage("profiles/u-1/a.png"); err != nil {
		t.Fatalf("SetProfileImage: %v", err)
	}
	if !u.HasCompleteProfile() {
		t.Fatal("profile with birthdate, about, image and phone is complete")
	}
	if err := u.RemoveProfileImage(); err != nil {
		t.Fatalf("RemoveProfileImage: %v", err)
	}
	if u.HasCompleteProfile() {
		t.Fatal("removing the image makes the profile incomplete again")
	}
}

func TestDomainEventsReturnsCopy(t *testing.T) {
	u := newTestUser(t)
	events := u.DomainEvents()
	events[0] = nil
	if u.DomainEvents()[0] == nil {
		t.Fatal("DomainEvents must return a copy")
	}
	u.ClearDomainEvents()
	if len(u.DomainEvents()) != 0 {
		t.Fatal("ClearDomainEvents should empty the buffer")
	}
}

func TestRehydrateUserKeepsStateWithoutEvents(t *testing.T) {
	bd := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	u := RehydrateUser(RehydrateUserParams{
		ID:          "u-9",
		Email:       "carol@example.com",
		FirstName:   "Carol",
		LastName:    "Clark",
		PhoneNumber: "+14155550102",
		Latitude:    48.8566,
		Longitude:   2.3522,
		Birthdate:   &bd,
		CreatedAt:   now,
		IsDeleted:   true,
	})
	if u.ID() != "u-9" || !u.IsDeleted() {
		t.Fatal("rehydrated state mismatch")
	}
	if len(u.DomainEvents()) != 0 {
		t.Fatal("rehydration must not raise events")
	}
}
