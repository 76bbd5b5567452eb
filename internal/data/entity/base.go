package entity

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// SchemaVersion is stamped on every persisted document.
const SchemaVersion = 1

const DateTimeLayout = "2006-01-02T15:04:05"

// dateTimeLayouts lists the accepted input forms, most specific first.
var dateTimeLayouts = []string{
	DateTimeLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ClockLayout is used by schedule templates that only carry a time of day.
const ClockLayout = "15:04"

// DateTime is a wall-clock timestamp stored as ISO-8601 without zone.
type DateTime struct {
	time.Time
	// ClockOnly is set for schedule templates written as "HH:MM".
	ClockOnly bool
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.Truncate(time.Second)}
}

var location atomic.Pointer[time.Location]

// SetLocation sets the zone stored timestamps are read back in. Documents
// carry wall-clock times only, so this must match the service clock.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = Location()
	}
	location.Store(loc)
}

// Location returns the zone set by SetLocation, time.Local by default.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}
	return time.Local
}

// ParseDateTime accepts the layouts in dateTimeLayouts plus clock-only templates.
func ParseDateTime(s string, loc *time.Location) (DateTime, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = Location()
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	if t, err := time.ParseInLocation(ClockLayout, s, loc); err == nil {
		return DateTime{Time: t, ClockOnly: true}, nil
	}
	return DateTime{}, fmt.Errorf("invalid date-time %q", s)
}

// On combines the clock part of d with the calendar day of date.
func (d DateTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), d.Hour(), d.Minute(), d.Second(), 0, date.Location())
}

func (d DateTime) String() string {
	if d.IsZero() {
		return ""
	}
	if d.ClockOnly {
		return d.Format(ClockLayout)
	}
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s, Location())
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
