package specification

import (
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/domain/valueobject"
)

// ActiveOnly matches users that are not soft-deleted.
func ActiveOnly() Specification { return activeOnly{} }

type activeOnly struct{}

func (activeOnly) Name() string                  { return "active_only" }
func (activeOnly) Satisfies(u *entity.User) bool { return !u.IsDeleted() }
func (activeOnly) ElasticQuery() map[string]any {
	return map[string]any{"term": map[string]any{"is_deleted": false}}
}

// Adult matches users whose birthdate is at least 18 years in the past,
// inclusive of the birthday itself.
func Adult() Specification { return adult{} }

type adult struct{}

func (adult) Name() string { return "adult" }

func (adult) Satisfies(u *entity.User) bool { return u.IsAdult() }

func (adult) ElasticQuery() map[string]any {
	return map[string]any{
		"range": map[string]any{
			"birthdate": map[string]any{"lte": "now-18y/d"},
		},
	}
}

// AgeRange matches users whose age lies in [minAge, maxAge]. Both bounds are
// translated to birthdate bounds with date arithmetic: an inclusive lower
// birthdate bound for maxAge (exclusive of the day the user turns maxAge+1)
// and an inclusive upper bound for minAge.
func AgeRange(minAge, maxAge int) Specification {
	return ageRange{minAge: minAge, maxAge: maxAge}
}

type ageRange struct {
	minAge int
	maxAge int
}

func (s ageRange) Name() string { return fmt.Sprintf("age_range_%d_%d", s.minAge, s.maxAge) }

func (s ageRange) Satisfies(u *entity.User) bool {
	bd := u.Birthdate()
	if bd == nil {
		return false
	}
	now := time.Now().UTC()
	// age >= minAge: the minAge-th birthday has passed.
	if bd.AddDate(s.minAge, 0, 0).After(now) {
		return false
	}
	// age <= maxAge: the (maxAge+1)-th birthday has not passed yet.
	if !bd.AddDate(s.maxAge+1, 0, 0).After(now) {
		return false
	}
	return true
}

func (s ageRange) ElasticQuery() map[string]any {
	return map[string]any{
		"range": map[string]any{
			"birthdate": map[string]any{
				"gt":  fmt.Sprintf("now-%dy/d", s.maxAge+1),
				"lte": fmt.Sprintf("now-%dy/d", s.minAge),
			},
		},
	}
}

// CompleteProfile matches users with every optional profile field filled.
func CompleteProfile() Specification { return completeProfile{} }

type completeProfile struct{}

func (completeProfile) Name() string { return "complete_profile" }

func (completeProfile) Satisfies(u *entity.User) bool { return u.HasCompleteProfile() }

func (completeProfile) ElasticQuery() map[string]any {
	fields := []string{"birthdate", "about_me", "profile_image_name", "phone_number"}
	must := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		must = append(must, map[string]any{"exists": map[string]any{"field": f}})
	}
	return map[string]any{"bool": map[string]any{"must": must}}
}

// WithinRadius matches users within radiusKm of the given center, boundary
// inclusive. In memory it uses the haversine great-circle distance; the
// Elasticsearch translation uses a geo_distance filter, which also computes
// arc distance, so the two stay consistent at scale.
func WithinRadius(latitude, longitude, radiusKm float64) Specification {
	center, err := valueobject.NewLocation(latitude, longitude)
	if err != nil {
		// out-of-range centers can never match anything
		return nothing{reason: "within_radius_invalid_center"}
	}
	return withinRadius{center: center, radiusKm: radiusKm}
}

type withinRadius struct {
	center   valueobject.Location
	radiusKm float64
}

func (s withinRadius) Name() string { return fmt.Sprintf("within_radius_%.1fkm", s.radiusKm) }

func (s withinRadius) Satisfies(u *entity.User) bool {
	return u.Location().DistanceTo(s.center) <= s.radiusKm
}

func (s withinRadius) ElasticQuery() map[string]any {
	return map[string]any{
		"geo_distance": map[string]any{
			"distance": fmt.Sprintf("%fkm", s.radiusKm),
			"location": map[string]any{
				"lat": s.center.Latitude(),
				"lon": s.center.Longitude(),
			},
		},
	}
}

type nothing struct{ reason string }

func (n nothing) Name() string                  { return n.reason }
func (n nothing) Satisfies(_ *entity.User) bool { return false }
func (n nothing) ElasticQuery() map[string]any {
	return map[string]any{"bool": map[string]any{"must_not": map[string]any{"match_all": map[string]any{}}}}
}

// TextSearch matches a case-insensitive substring across name, email and
// phone number.
func TextSearch(query string) Specification {
	return textSearch{query: strings.ToLower(strings.TrimSpace(query))}
}

type textSearch struct{ query string }

func (s textSearch) Name() string { return "text_search" }

func (s textSearch) Satisfies(u *entity.User) bool {
	if s.query == "" {
		return true
	}
	haystacks := []string{
		u.Name().First(),
		u.Name().Last(),
		u.Email().String(),
		u.Phone().String(),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), s.query) {
			return true
		}
	}
	return false
}

func (s textSearch) ElasticQuery() map[string]any {
	if s.query == "" {
		return map[string]any{"match_all": map[string]any{}}
	}
	return map[string]any{
		"query_string": map[string]any{
			"query":            "*" + escapeQueryString(s.query) + "*",
			"fields":           []string{"first_name", "last_name", "email", "phone_number"},
			"analyze_wildcard": true,
		},
	}
}

var queryStringEscaper = strings.NewReplacer(
	`\`, `\\`, `+`, `\+`, `-`, `\-`, `=`, `\=`, `&`, `\&`, `|`, `\|`,
	`>`, ``, `<`, ``, `!`, `\!`, `(`, `\(`, `)`, `\)`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `^`, `\^`, `"`, `\"`, `~`, `\~`, `*`, `\*`,
	`?`, `\?`, `:`, `\:`, `/`, `\/`,
)

func escapeQueryString(q string) string { return queryStringEscaper.Replace(q) }

// ByEmail matches the exact (lower-cased) email.
func ByEmail(email string) Specification {
	return byEmail{email: strings.ToLower(strings.TrimSpace(email))}
}

type byEmail struct{ email string }

func (s byEmail) Name() string                  { return "by_email" }
func (s byEmail) Satisfies(u *entity.User) bool { return u.Email().String() == s.email }
func (s byEmail) ElasticQuery() map[string]any {
	return map[string]any{"term": map[string]any{"email": s.email}}
}

// ByPhoneNumber matches the exact cleaned phone number.
func ByPhoneNumber(phone string) Specification {
	cleaned, err := valueobject.NewPhoneNumber(phone)
	if err != nil {
		return nothing{reason: "by_phone_invalid"}
	}
	return byPhone{phone: cleaned.String()}
}

type byPhone struct{ phone string }

func (s byPhone) Name() string                  { return "by_phone_number" }
func (s byPhone) Satisfies(u *entity.User) bool { return u.Phone().String() == s.phone }
func (s byPhone) ElasticQuery() map[string]any {
	return map[string]any{"term": map[string]any{"phone_number": s.phone}}
}

// ByID matches the exact aggregate id.
func ByID(id string) Specification { return byID{id: id} }

type byID struct{ id string }

func (s byID) Name() string                  { return "by_id" }
func (s byID) Satisfies(u *entity.User) bool { return u.ID() == s.id }
func (s byID) ElasticQuery() map[string]any {
	return map[string]any{"term": map[string]any{"id": s.id}}
}
