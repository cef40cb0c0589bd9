package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIncludesField(t *testing.T) {
	err := Validation("email", "must be a valid email")
	if got := err.Error(); got != "validation: email: must be a valid email" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := NotFound("user not found").Error(); got != "not_found: user not found" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		want Code
	}{
		{Validation("f", "m"), CodeValidation},
		{NotFound("m"), CodeNotFound},
		{Conflict("m"), CodeConflict},
		{InvalidState("m"), CodeInvalidState},
		{Infrastructure("m", nil), CodeInfrastructure},
		{errors.New("plain"), ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := CodeOf(tc.err); got != tc.want {
			t.Fatalf("CodeOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestCodeOfWrapped(t *testing.T) {
	inner := Conflict("email already in use")
	wrapped := fmt.Errorf("create user: %w", inner)
	if !IsCode(wrapped, CodeConflict) {
		t.Fatal("IsCode should see through wrapping")
	}
	if IsCode(wrapped, CodeNotFound) {
		t.Fatal("IsCode should not match a different code")
	}
}

func TestInfrastructureUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Infrastructure("query user", cause)
	if !errors.Is(err, cause) {
		t.Fatal("Infrastructure should wrap its cause")
	}
}
