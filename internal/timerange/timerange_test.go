package timerange

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 23, 16, 0, 0, 0, time.UTC)

func TestResolveAt_Tokens(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom *time.Time
		wantTo   *time.Time
	}{
		{
			name:     "both omitted",
			wantFrom: nil,
			wantTo:   nil,
		},
		{
			name:     "relative from defaults to to now",
			from:     "-15m",
			wantFrom: tp(testNow.Add(-15 * time.Minute)),
			wantTo:   tp(testNow),
		},
		{
			name:     "now is case-insensitive",
			from:     "NOW",
			wantFrom: tp(testNow),
			wantTo:   tp(testNow),
		},
		{
			name:     "relative unit week",
			from:     "-2w",
			wantFrom: tp(testNow.Add(-2 * 7 * 24 * time.Hour)),
			wantTo:   tp(testNow),
		},
		{
			name:     "relative unit is case-insensitive",
			from:     "-3H",
			wantFrom: tp(testNow.Add(-3 * time.Hour)),
			wantTo:   tp(testNow),
		},
		{
			name:     "absolute RFC3339 pair",
			from:     "2025-01-01T00:00:00Z",
			to:       "2025-01-10T00:00:00Z",
			wantFrom: tp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantTo:   tp(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "inverted absolute pair is swapped",
			from:     "2025-01-10T00:00:00Z",
			to:       "2025-01-01T00:00:00Z",
			wantFrom: tp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantTo:   tp(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "legacy datetime without T",
			from:     "2025-06-23 12:00:00",
			to:       "now",
			wantFrom: tp(time.Date(2025, 6, 23, 12, 0, 0, 0, time.UTC)),
			wantTo:   tp(testNow),
		},
		{
			name:     "date only",
			from:     "2025-06-20",
			wantFrom: tp(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)),
			wantTo:   tp(testNow),
		},
		{
			name:     "relative to with from omitted is a window ending now",
			to:       "-2h",
			wantFrom: tp(testNow.Add(-2 * time.Hour)),
			wantTo:   tp(testNow),
		},
		{
			name:     "window rule does not fire when from is supplied",
			from:     "garbage",
			to:       "-2h",
			wantFrom: nil,
			wantTo:   tp(testNow.Add(-2 * time.Hour)),
		},
		{
			name:     "absolute to with from omitted resolves directly",
			to:       "2025-06-23T15:00:00Z",
			wantFrom: nil,
			wantTo:   tp(time.Date(2025, 6, 23, 15, 0, 0, 0, time.UTC)),
		},
		{
			name:     "unparseable from degrades to absent",
			from:     "yesterday-ish",
			wantFrom: nil,
			wantTo:   nil,
		},
		{
			name:     "unsupported unit degrades to absent",
			from:     "-5y",
			wantFrom: nil,
			wantTo:   nil,
		},
		{
			name:     "positive offset is not a relative token",
			from:     "+15m",
			wantFrom: nil,
			wantTo:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAt(tt.from, tt.to, testNow)
			assertInstant(t, "from", got.From, tt.wantFrom)
			assertInstant(t, "to", got.To, tt.wantTo)
		})
	}
}

func TestResolveAt_PreservesZoneOffset(t *testing.T) {
	got := ResolveAt("2025-06-23T16:00:00+05:30", "now", testNow)
	if got.From == nil {
		t.Fatal("expected from to resolve")
	}
	_, offset := got.From.Zone()
	if offset != 5*3600+30*60 {
		t.Errorf("zone offset = %d, want +05:30", offset)
	}
	if !got.From.Equal(time.Date(2025, 6, 23, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want 2025-06-23T10:30:00Z", got.From)
	}
}

func TestResolve_UsesWallClock(t *testing.T) {
	before := time.Now()
	got := Resolve("-15m", "")
	after := time.Now()

	if got.From == nil || got.To == nil {
		t.Fatalf("expected both fields resolved, got %+v", got)
	}
	if got.To.Before(before) || got.To.After(after) {
		t.Errorf("to = %v, want within [%v, %v]", got.To, before, after)
	}
	if diff := got.To.Sub(*got.From); diff != 15*time.Minute {
		t.Errorf("window length = %v, want 15m", diff)
	}
}

func TestResolveAt_NeverOrdersBackwards(t *testing.T) {
	tokens := []string{"", "now", "-1h", "-30s", "2025-01-01", "2030-12-31T23:59:59Z", "bogus"}
	for _, from := range tokens {
		for _, to := range tokens {
			got := ResolveAt(from, to, testNow)
			if got.From != nil && got.To != nil && got.From.After(*got.To) {
				t.Errorf("Resolve(%q, %q) returned inverted range %v > %v", from, to, got.From, got.To)
			}
		}
	}
}

func tp(t time.Time) *time.Time { return &t }

func assertInstant(t *testing.T, field string, got, want *time.Time) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s = %v, want absent", field, got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s absent, want %v", field, want)
		return
	}
	if !got.Equal(*want) {
		t.Errorf("%s = %v, want %v", field, got, want)
	}
}
