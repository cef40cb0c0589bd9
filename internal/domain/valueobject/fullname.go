package valueobject

import (
	"strings"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
)

const maxNamePartLen = 100

// FullName holds a trimmed first and last name, each 1-100 characters.
type FullName struct {
	first string
	last  string
}

func NewFullName(first, last string) (FullName, error) {
	f := strings.TrimSpace(first)
	l := strings.TrimSpace(last)
	if f == "" {
		return FullName{}, errs.Validation("first_name", "is required")
	}
	if l == "" {
		return FullName{}, errs.Validation("last_name", "is required")
	}
	if len(f) > maxNamePartLen {
		return FullName{}, errs.Validation("first_name", "must be at most 100 characters long")
	}
	if len(l) > maxNamePartLen {
		return FullName{}, errs.Validation("last_name", "must be at most 100 characters long")
	}
	return FullName{first: f, last: l}, nil
}

func (n FullName) First() string  { return n.first }
func (n FullName) Last() string   { return n.last }
func (n FullName) String() string { return n.first + " " + n.last }

func (n FullName) Equals(other FullName) bool {
	return n.first == other.first && n.last == other.last
}

func RehydrateFullName(first, last string) FullName { return FullName{first: first, last: last} }
