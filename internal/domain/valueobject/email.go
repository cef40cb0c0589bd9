package valueobject

import (
	"regexp"
	"strings"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// Email is a validated, lower-cased email address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Email{}, errs.Validation("email", "is required")
	}
	if len(v) > 254 || !emailPattern.MatchString(v) {
		return Email{}, errs.Validation("email", "must be a valid email")
	}
	return Email{value: v}, nil
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

// RehydrateEmail restores a stored value without re-validation. Only the
// persistence layer should call this.
func RehydrateEmail(v string) Email { return Email{value: v} }
