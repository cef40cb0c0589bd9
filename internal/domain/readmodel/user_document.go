package readmodel

import "time"

// GeoPoint maps to an Elasticsearch geo_point field.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// UserDocument is the denormalized read-side projection of a user, keyed by
// the aggregate id. It has no invariants of its own: every field mirrors the
// most recently observed committed write, and the whole index is rebuildable
// from the write store plus a replayed change log.
type UserDocument struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	PhoneNumber      string     `json:"phone_number"`
	Birthdate        *time.Time `json:"birthdate,omitempty"`
	Location         *GeoPoint  `json:"location,omitempty"`
	AboutMe          string     `json:"about_me,omitempty"`
	ProfileImageName string     `json:"profile_image_name,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	IsDeleted        bool       `json:"is_deleted"`
}

func (d UserDocument) FullName() string {
	if d.FirstName == "" {
		return d.LastName
	}
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}
