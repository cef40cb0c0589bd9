package valueobject

import (
	"strings"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

// PhoneNumber is a cleaned phone number: digits with an optional leading "+",
// 7 to 15 digits total.
type PhoneNumber struct {
	value string
}

func NewPhoneNumber(raw string) (PhoneNumber, error) {
	cleaned := cleanPhone(raw)
	if cleaned == "" {
		return PhoneNumber{}, errs.Validation("phone_number", "is required")
	}
	digits := strings.TrimPrefix(cleaned, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return PhoneNumber{}, errs.Validation("phone_number", "must contain 7 to 15 digits")
	}
	return PhoneNumber{value: cleaned}, nil
}

func cleanPhone(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (p PhoneNumber) String() string { return p.value }
func (p PhoneNumber) IsZero() bool   { return p.value == "" }

func RehydratePhoneNumber(v string) PhoneNumber { return PhoneNumber{value: v} }
