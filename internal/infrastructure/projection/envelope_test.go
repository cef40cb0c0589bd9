package projection

import (
	"encoding/json"
	"testing"
	"time"
)

func parseFlex(t *testing.T, raw string) FlexTime {
	t.Helper()
	var f FlexTime
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return f
}

func TestFlexTimeString(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	cases := []string{
		`"2024-03-01T10:30:00Z"`,
		`"2024-03-01T10:30:00.000Z"`,
		`"2024-03-01T10:30:00"`,
	}
	for _, raw := range cases {
		if got := parseFlex(t, raw).Time; !got.Equal(want) {
			t.Fatalf("%s: got %v, want %v", raw, got, want)
		}
	}
	dateOnly := parseFlex(t, `"1990-04-12"`)
	if dateOnly.Time != time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("date-only: got %v", dateOnly.Time)
	}
}

func TestFlexTimeEpochHeuristics(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		// epoch microseconds
		{`1709287800000000`, time.Date(2024, 3, 1, 10, 10, 0, 0, time.UTC)},
		// epoch milliseconds
		{`1709287800000`, time.Date(2024, 3, 1, 10, 10, 0, 0, time.UTC)},
		// epoch seconds
		{`1709287800`, time.Date(2024, 3, 1, 10, 10, 0, 0, time.UTC)},
		// epoch days, how date columns arrive on the log
		{`7406`, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := parseFlex(t, tc.raw).Time; !got.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestFlexTimeNullAndGarbage(t *testing.T) {
	if !parseFlex(t, `null`).IsZero() {
		t.Fatal("null should stay zero")
	}
	if !parseFlex(t, `"not a timestamp"`).IsZero() {
		t.Fatal("unparsable strings should stay zero, not error")
	}
	if !parseFlex(t, `0`).IsZero() {
		t.Fatal("zero epoch should stay zero")
	}
}

func TestFlexTimePtrAndOrNow(t *testing.T) {
	var zero FlexTime
	if zero.Ptr() != nil {
		t.Fatal("zero value should have nil pointer")
	}
	if zero.OrNow().IsZero() {
		t.Fatal("OrNow should substitute the current time")
	}

	f := parseFlex(t, `"2024-03-01T10:30:00Z"`)
	if p := f.Ptr(); p == nil || !p.Equal(f.Time) {
		t.Fatal("Ptr should return the parsed time")
	}
	if !f.OrNow().Equal(f.Time) {
		t.Fatal("OrNow should return the parsed time when set")
	}
}

func TestEnvelopeDecodesDebeziumShape(t *testing.T) {
	payload := []byte(`{
		"op": "u",
		"before": {"id": "u-1", "email": "old@example.com"},
		"after": {
			"id": "u-1",
			"email": "new@example.com",
			"first_name": "Alice",
			"last_name": "Anderson",
			"birthdate": 7406,
			"latitude": 40.7,
			"longitude": -74.0,
			"is_deleted": false,
			"unknown_extra": {"ignored": true}
		},
		"source": {"table": "users", "lsn": 1042, "ts_ms": 1709287800000}
	}`)

	var env ChangeEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Op != OpUpdate || env.Source.Table != "users" || env.Source.LSN != 1042 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Before == nil || env.Before.Email != "old@example.com" {
		t.Fatalf("before record not decoded: %+v", env.Before)
	}
	if env.After == nil || env.After.Email != "new@example.com" {
		t.Fatalf("after record not decoded: %+v", env.After)
	}
	if env.After.Birthdate.Time != time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("birthdate epoch days not decoded: %v", env.After.Birthdate.Time)
	}
	if env.After.Latitude == nil || *env.After.Latitude != 40.7 {
		t.Fatal("latitude not decoded")
	}
}
