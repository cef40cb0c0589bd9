package projection

import (
	"encoding/json"
	"time"
)

// Change-log operation codes as emitted by the CDC connector.
const (
	OpCreate   = "c"
	OpUpdate   = "u"
	OpDelete   = "d"
	OpSnapshot = "r"
)

// ChangeEnvelope is one captured write from the relational store's
// transaction log. Unknown extra fields are tolerated and ignored.
type ChangeEnvelope struct {
	Op     string        `json:"op"`
	Before *ChangeRecord `json:"before"`
	After  *ChangeRecord `json:"after"`
	Source ChangeSource  `json:"source"`
}

// ChangeSource identifies where in the log the change came from. LSN is the
// monotonically increasing sequence position within the table's partition.
type ChangeSource struct {
	Table string   `json:"table"`
	LSN   int64    `json:"lsn"`
	TsMs  FlexTime `json:"ts_ms"`
}

// ChangeRecord is a row snapshot keyed by the persisted column names.
type ChangeRecord struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	PhoneNumber      string   `json:"phone_number"`
	Birthdate        FlexTime `json:"birthdate"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	AboutMe          string   `json:"about_me"`
	ProfileImageName string   `json:"profile_image_name"`
	CreatedAt        FlexTime `json:"created_at"`
	UpdatedAt        FlexTime `json:"updated_at"`
	LastLogin        FlexTime `json:"last_login"`
	DeletedAt        FlexTime `json:"deleted_at"`
	IsDeleted        bool     `json:"is_deleted"`
}

// FlexTime absorbs the timestamp encodings seen on the change log: RFC3339
// strings, epoch microseconds or milliseconds, and epoch days for date
// columns. Anything unparsable leaves the value zero; callers fall back to
// "now" where a timestamp is required.
type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, perr := time.Parse(layout, s); perr == nil {
				f.Time = t.UTC()
				return nil
			}
		}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Time = epochToTime(n)
		return nil
	}
	// Unparsable encodings are not an error; the field just stays zero.
	return nil
}

// epochToTime guesses the epoch unit by magnitude: microseconds for very
// large values, then milliseconds, then seconds, and small values are epoch
// days (how date columns arrive on the log).
func epochToTime(n float64) time.Time {
	v := int64(n)
	switch {
	case v >= 1e14:
		return time.UnixMicro(v).UTC()
	case v >= 1e11:
		return time.UnixMilli(v).UTC()
	case v >= 1e9:
		return time.Unix(v, 0).UTC()
	case v > 0:
		return time.Unix(0, 0).UTC().AddDate(0, 0, int(v))
	default:
		return time.Time{}
	}
}

func (f FlexTime) Ptr() *time.Time {
	if f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

// OrNow returns the parsed time, or now when the field was absent or
// unparsable.
func (f FlexTime) OrNow() time.Time {
	if f.IsZero() {
		return time.Now().UTC()
	}
	return f.Time
}
