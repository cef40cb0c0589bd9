package valueobject

import (
	"math"
	"testing"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

func TestNewEmailNormalizes(t *testing.T) {
	e, err := NewEmail("  Alice@Example.COM ")
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	if e.String() != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", e.String())
	}
}

func TestNewEmailRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "not-an-email", "a@", "@b.com", "a b@c.com"} {
		if _, err := NewEmail(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		} else if !errs.IsCode(err, errs.CodeValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestNewFullNameTrims(t *testing.T) {
	n, err := NewFullName("  Alice ", " Anderson  ")
	if err != nil {
		t.Fatalf("NewFullName: %v", err)
	}
	if n.First() != "Alice" || n.Last() != "Anderson" {
		t.Fatalf("unexpected name parts: %q %q", n.First(), n.Last())
	}
	if n.String() != "Alice Anderson" {
		t.Fatalf("unexpected full name: %q", n.String())
	}
}

func TestNewFullNameRejectsEmptyParts(t *testing.T) {
	if _, err := NewFullName("", "Anderson"); err == nil {
		t.Fatal("expected error for empty first name")
	}
	if _, err := NewFullName("Alice", "   "); err == nil {
		t.Fatal("expected error for blank last name")
	}
}

func TestFullNameEquals(t *testing.T) {
	a, _ := NewFullName("Alice", "Anderson")
	b, _ := NewFullName("Alice", "Anderson")
	c, _ := NewFullName("Alice", "Brown")
	if !a.Equals(b) {
		t.Fatal("identical names should be equal")
	}
	if a.Equals(c) {
		t.Fatal("different last names should not be equal")
	}
}

func TestNewPhoneNumberCleans(t *testing.T) {
	p, err := NewPhoneNumber("+1 (415) 555-0100")
	if err != nil {
		t.Fatalf("NewPhoneNumber: %v", err)
	}
	if p.String() != "+14155550100" {
		t.Fatalf("expected cleaned number, got %q", p.String())
	}
}

func TestNewPhoneNumberRejectsBadLength(t *testing.T) {
	for _, raw := range []string{"", "12345", "+123456789012345678"} {
		if _, err := NewPhoneNumber(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNewLocationBounds(t *testing.T) {
	if _, err := NewLocation(90, 180); err != nil {
		t.Fatalf("boundary coordinates should be valid: %v", err)
	}
	if _, err := NewLocation(90.0001, 0); err == nil {
		t.Fatal("expected error for latitude > 90")
	}
	if _, err := NewLocation(0, -180.0001); err == nil {
		t.Fatal("expected error for longitude < -180")
	}
}

func TestLocationDistance(t *testing.T) {
	nyc, _ := NewLocation(40.7128, -74.0060)
	london, _ := NewLocation(51.5074, -0.1278)

	d := nyc.DistanceTo(london)
	// Great-circle distance NYC to London is roughly 5570 km.
	if math.Abs(d-5570) > 60 {
		t.Fatalf("unexpected distance: %f km", d)
	}
	if rev := london.DistanceTo(nyc); math.Abs(rev-d) > 1e-9 {
		t.Fatalf("distance should be symmetric: %f vs %f", d, rev)
	}
	if self := nyc.DistanceTo(nyc); self != 0 {
		t.Fatalf("distance to self should be zero, got %f", self)
	}
}
