package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire and storage encoding of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. History entries are
// keyed by Date, so two sessions on the same day always collapse into one
// ledger entry.
type Date struct {
	time.Time
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the date in DateLayout form.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal reports whether both values name the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Format(DateLayout) == other.Format(DateLayout)
}

// Before reports whether d falls on an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.Format(DateLayout) < other.Format(DateLayout)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
