package domain

import (
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one
)

// DefaultTimezone is the IANA zone output dates are rendered in unless
// configured otherwise.
const DefaultTimezone = "Asia/Kolkata"

// Timestamp is a point in time that may be absent.
// The zero value is absent.
type Timestamp struct {
	Time  time.Time
	Valid bool // Valid is true if Time is present
}

// At returns a present Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// Before reports whether ts is present and strictly before other.
func (ts Timestamp) Before(other time.Time) bool {
	return ts.Valid && ts.Time.Before(other)
}

// layouts carrying an explicit zone designator.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// layouts without zone designator, read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize parses an ISO 8601 date-time and converts it into loc.
//
// Values without an offset are assumed to be UTC. Empty or unparseable input
// yields an absent Timestamp rather than an error. A nil loc means UTC.
func Normalize(raw string, loc *time.Location) Timestamp {
	if loc == nil {
		loc = time.UTC
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return Timestamp{}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return At(t.In(loc))
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return At(t.In(loc))
		}
	}
	return Timestamp{}
}
