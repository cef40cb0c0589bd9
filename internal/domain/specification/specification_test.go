package specification

import (
	"testing"
	"time"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
)

func makeUser(t *testing.T, email string, birthdate *time.Time, lat, lon float64) *entity.User {
	t.Helper()
	u, err := entity.NewUser(entity.NewUserInput{
		Email:        email,
		PasswordSalt: "salt",
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Anderson",
		Birthdate:    birthdate,
		PhoneNumber:  "+14155550100",
		Latitude:     lat,
		Longitude:    lon,
	})
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return u
}

func bdate(yearsAgo int) *time.Time {
	bd := time.Now().UTC().AddDate(-yearsAgo, 0, 0)
	return &bd
}

func TestActiveOnly(t *testing.T) {
	u := makeUser(t, "a@example.com", bdate(30), 0, 0)
	if !ActiveOnly().Satisfies(u) {
		t.Fatal("active user should satisfy ActiveOnly")
	}
	u.Delete()
	if ActiveOnly().Satisfies(u) {
		t.Fatal("deleted user must not satisfy ActiveOnly")
	}
}

func TestAdult(t *testing.T) {
	if !Adult().Satisfies(makeUser(t, "a@example.com", bdate(18), 0, 0)) {
		t.Fatal("18th birthday counts as adult")
	}
	if Adult().Satisfies(makeUser(t, "b@example.com", bdate(17), 0, 0)) {
		t.Fatal("17 is not adult")
	}
	if Adult().Satisfies(makeUser(t, "c@example.com", nil, 0, 0)) {
		t.Fatal("no birthdate is not adult")
	}
}

func TestAgeRangeBoundaries(t *testing.T) {
	spec := AgeRange(25, 35)
	cases := []struct {
		yearsAgo int
		want     bool
	}{
		{24, false},
		{25, true},
		{30, true},
		{35, true},
		{36, false},
	}
	for _, tc := range cases {
		u := makeUser(t, "a@example.com", bdate(tc.yearsAgo), 0, 0)
		if got := spec.Satisfies(u); got != tc.want {
			t.Fatalf("age %d: got %v, want %v", tc.yearsAgo, got, tc.want)
		}
	}
	if spec.Satisfies(makeUser(t, "b@example.com", nil, 0, 0)) {
		t.Fatal("no birthdate never matches an age range")
	}
}

func TestWithinRadius(t *testing.T) {
	nyc := makeUser(t, "a@example.com", bdate(30), 40.7128, -74.0060)
	london := makeUser(t, "b@example.com", bdate(30), 51.5074, -0.1278)

	near := WithinRadius(40.7128, -74.0060, 100)
	if !near.Satisfies(nyc) {
		t.Fatal("center point is within any radius")
	}
	if near.Satisfies(london) {
		t.Fatal("London is not within 100 km of NYC")
	}

	wide := WithinRadius(40.7128, -74.0060, 6000)
	if !wide.Satisfies(london) {
		t.Fatal("London is within 6000 km of NYC")
	}
}

func TestWithinRadiusInvalidCenterMatchesNothing(t *testing.T) {
	spec := WithinRadius(200, 0, 10)
	u := makeUser(t, "a@example.com", bdate(30), 0, 0)
	if spec.Satisfies(u) {
		t.Fatal("invalid center must match nothing")
	}
	q := spec.ElasticQuery()
	if _, ok := q["bool"]; !ok {
		t.Fatalf("expected must_not match_all query, got %v", q)
	}
}

func TestTextSearch(t *testing.T) {
	u := makeUser(t, "alice@example.com", bdate(30), 0, 0)
	for _, q := range []string{"ali", "ANDERSON", "example.com", "4155550100"} {
		if !TextSearch(q).Satisfies(u) {
			t.Fatalf("query %q should match", q)
		}
	}
	if TextSearch("zzz").Satisfies(u) {
		t.Fatal("query zzz should not match")
	}
	if !TextSearch("  ").Satisfies(u) {
		t.Fatal("blank query matches everything")
	}
}

func TestExactMatchSpecs(t *testing.T) {
	u := makeUser(t, "alice@example.com", bdate(30), 0, 0)
	if err := u.AssignID("u-1"); err != nil {
		t.Fatalf("AssignID: %v", err)
	}

	if !ByEmail("  ALICE@example.com ").Satisfies(u) {
		t.Fatal("ByEmail should normalize before comparing")
	}
	if !ByPhoneNumber("+1 415 555 0100").Satisfies(u) {
		t.Fatal("ByPhoneNumber should clean before comparing")
	}
	if ByPhoneNumber("123").Satisfies(u) {
		t.Fatal("invalid phone matches nothing")
	}
	if !ByID("u-1").Satisfies(u) || ByID("u-2").Satisfies(u) {
		t.Fatal("ByID should compare exact id")
	}
}

func TestAndShortCircuitsAndCombines(t *testing.T) {
	adult := makeUser(t, "a@example.com", bdate(30), 0, 0)
	minor := makeUser(t, "b@example.com", bdate(15), 0, 0)

	spec := And(ActiveOnly(), Adult())
	if !spec.Satisfies(adult) {
		t.Fatal("active adult should satisfy the conjunction")
	}
	if spec.Satisfies(minor) {
		t.Fatal("minor should not satisfy the conjunction")
	}
	adult.Delete()
	if spec.Satisfies(adult) {
		t.Fatal("deleted adult should not satisfy the conjunction")
	}
}

func TestAndElasticQueryShape(t *testing.T) {
	q := And(ActiveOnly(), Adult()).ElasticQuery()
	boolq, ok := q["bool"].(map[string]any)
	if !ok {
		t.Fatalf("expected bool query, got %v", q)
	}
	must, ok := boolq["must"].([]map[string]any)
	if !ok || len(must) != 2 {
		t.Fatalf("expected two must clauses, got %v", boolq["must"])
	}
	if _, ok := must[0]["term"]; !ok {
		t.Fatalf("first clause should be the term filter, got %v", must[0])
	}
	if _, ok := must[1]["range"]; !ok {
		t.Fatalf("second clause should be the range filter, got %v", must[1])
	}
}

func TestBuilderZeroSpecsIsMatchAll(t *testing.T) {
	spec := NewBuilder().Build()
	if spec.Name() != "match_all" {
		t.Fatalf("empty builder should produce match_all, got %q", spec.Name())
	}
	u := makeUser(t, "a@example.com", nil, 0, 0)
	u.Delete()
	if !spec.Satisfies(u) {
		t.Fatal("match_all passes everything, deleted included")
	}
	if _, ok := spec.ElasticQuery()["match_all"]; !ok {
		t.Fatal("match_all should translate to an explicit match_all query")
	}
}

func TestBuilderFoldsLeftAssociative(t *testing.T) {
	spec := NewBuilder().
		With(ActiveOnly()).
		With(Adult()).
		With(CompleteProfile()).
		Build()
	if spec.Name() != "active_only+adult+complete_profile" {
		t.Fatalf("unexpected composed name %q", spec.Name())
	}

	u := makeUser(t, "a@example.com", bdate(30), 0, 0)
	if spec.Satisfies(u) {
		t.Fatal("incomplete profile should fail the composite")
	}
	if err := u.SetProfileImage("img.png"); err != nil {
		t.Fatalf("SetProfileImage: %v", err)
	}
	if err := u.UpdateProfile("Alice", "Anderson", u.Birthdate(), "hello"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if !spec.Satisfies(u) {
		t.Fatal("complete active adult should satisfy the composite")
	}
}

func TestBuilderIgnoresNil(t *testing.T) {
	spec := NewBuilder().With(nil).With(ActiveOnly()).Build()
	if spec.Name() != "active_only" {
		t.Fatalf("nil specs should be skipped, got %q", spec.Name())
	}
}
