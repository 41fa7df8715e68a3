// Package timerange resolves user-supplied time expressions into a
// concrete, chronologically ordered time window.
//
// A token is one of: the literal "now" (case-insensitive), a relative
// offset of the form "-<N><unit>" with unit s/m/h/d/w, or an absolute
// timestamp in a common calendar format. Unparseable tokens never
// produce an error; they resolve to an absent field and the search
// backend applies its own defaulting or rejection.
package timerange

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Range is a resolved time window. A nil field means the corresponding
// expression was absent or did not resolve. When both fields are set,
// From never comes after To.
type Range struct {
	From *time.Time
	To   *time.Time
}

var relativeRe = regexp.MustCompile(`(?i)^-([0-9]+)([smhdw])$`)

var unitDurations = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// absoluteFormats are tried in order for tokens that are neither "now"
// nor relative offsets. Formats without a zone parse as UTC; explicit
// offsets are preserved as parsed.
var absoluteFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
}

// Resolve parses the from and to expressions against the current time.
// Empty strings mean the caller omitted the field.
func Resolve(from, to string) Range {
	return ResolveAt(from, to, time.Now())
}

// ResolveAt is Resolve with an explicit evaluation instant.
//
// After parsing both tokens independently, three adjustments apply:
//   - a resolved from with no to at all closes the window at now
//   - a relative to with no from at all is reinterpreted as a window
//     length ending now ("the last N units"); this deliberately narrow
//     rule does not fire when from was supplied, even unparseably
//   - an inverted pair is swapped, never rejected
func ResolveAt(from, to string, now time.Time) Range {
	r := Range{
		From: parseToken(from, now),
		To:   parseToken(to, now),
	}

	switch {
	case r.From != nil && strings.TrimSpace(to) == "":
		end := now
		r.To = &end
	case strings.TrimSpace(from) == "" && r.To != nil && relativeRe.MatchString(strings.TrimSpace(to)):
		start := *r.To
		end := now
		r.From = &start
		r.To = &end
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		r.From, r.To = r.To, r.From
	}

	return r
}

// parseToken resolves a single token to an instant, or nil when the
// token is absent or unparseable.
func parseToken(token string, now time.Time) *time.Time {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if strings.EqualFold(token, "now") {
		t := now
		return &t
	}

	if m := relativeRe.FindStringSubmatch(token); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			// Amount too large to represent; treat as unparseable.
			return nil
		}
		t := now.Add(-time.Duration(amount) * unitDurations[strings.ToLower(m[2])])
		return &t
	}

	for _, layout := range absoluteFormats {
		if t, err := time.Parse(layout, token); err == nil {
			return &t
		}
	}

	return nil
}
