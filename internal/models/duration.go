package models

import (
	"regexp"
	"strconv"
)

// DurationToken is the catalog encoding of a time span: a string of digits
// followed by an "s" suffix, e.g. "40s". The zero value ("") means no span,
// which is how exercises without a rest phase are expressed.
type DurationToken string

var durationTokenRe = regexp.MustCompile(`^(\d+)s$`)

// Seconds parses the token into an integer number of seconds. A malformed or
// empty token parses to 0 rather than an error; a zero span simply means the
// corresponding phase is skipped.
func (d DurationToken) Seconds() int {
	m := durationTokenRe.FindStringSubmatch(string(d))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// IsZero reports whether the token denotes no time span.
func (d DurationToken) IsZero() bool {
	return d.Seconds() == 0
}
