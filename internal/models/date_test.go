package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestDateOfTruncatesTime verifies that DateOf drops the time-of-day
// component, so sessions started at any hour key the same ledger entry.
func TestDateOfTruncatesTime(t *testing.T) {
	d := DateOf(time.Date(2025, 3, 14, 23, 59, 58, 0, time.UTC))
	if d.String() != "2025-03-14" {
		t.Errorf("date = %q, want 2025-03-14", d.String())
	}
}

// TestDateJSONRoundTrip verifies the YYYY-MM-DD wire encoding survives a
// marshal/unmarshal cycle unchanged.
func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(raw) != `"2025-03-14"` {
		t.Errorf("marshal = %s, want \"2025-03-14\"", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

// TestParseDateInvalid verifies malformed dates return an error rather than
// a zero value masquerading as a real date.
func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

// TestDateOrdering verifies Before and AddDays across a month boundary.
func TestDateOrdering(t *testing.T) {
	d, _ := ParseDate("2025-01-31")
	next := d.AddDays(1)
	if next.String() != "2025-02-01" {
		t.Errorf("AddDays(1) = %q, want 2025-02-01", next.String())
	}
	if !d.Before(next) {
		t.Error("2025-01-31 should be before 2025-02-01")
	}
	if next.Before(d) {
		t.Error("2025-02-01 should not be before 2025-01-31")
	}
}
