// Package redact masks personally identifiable information in tool
// output before it is returned to the caller.
//
// Detection is a best-effort, pattern-based heuristic, not a certified
// PII classifier. Categories are applied in a fixed order (email, card
// numbers, phone numbers, addresses, SSNs) and every accepted match is
// replaced with a category placeholder such as [EMAIL REDACTED]. The
// masker never fails: text that matches nothing is returned unchanged.
package redact

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// maxPhonePasses bounds the fixed-point loop for overlapping phone
// patterns. Convergence is guaranteed because every replacement removes
// digits; the cap only defends against unforeseen pattern interactions.
const maxPhonePasses = 10

// Masker replaces recognizable PII spans with placeholder tokens.
type Masker struct {
	toggle func() string
	log    *zap.Logger
}

// New creates a Masker. The toggle source is consulted once per Mask
// call, so concurrent toggle changes take effect on the next call
// without affecting calls in progress. A nil toggle leaves masking
// enabled; a nil logger disables logging.
func New(toggle func() string, log *zap.Logger) *Masker {
	if toggle == nil {
		toggle = func() string { return "" }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Masker{toggle: toggle, log: log}
}

// Enabled reports the tri-state toggle semantics for a raw setting
// value: explicit falsy values disable masking, everything else,
// including an empty value and unrecognized values, enables it. The
// default fails open toward masking, not toward leakage.
func Enabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0", "no", "off", "disabled":
		return false
	default:
		return true
	}
}

// Mask redacts PII from text. When the toggle is disabled the input is
// returned unchanged, byte for byte. Mask is idempotent for a fixed
// toggle state: placeholders are never masked further.
func (m *Masker) Mask(text string) string {
	if !Enabled(m.toggle()) {
		return text
	}

	for _, c := range categories {
		masked := m.applyCategory(text, c)
		if masked != text {
			m.log.Debug("masked PII", zap.String("category", c.name))
		}
		text = masked
	}

	return text
}

// applyCategory runs every pattern of a category over the text once,
// or, for multipass categories, repeatedly until an iteration produces
// no change. Overlapping phone patterns may only partially match a
// number on one pass; re-running against the masker's own output lets
// adjacent fragments become maskable.
func (m *Masker) applyCategory(text string, c category) string {
	passes := 1
	if c.multipass {
		passes = maxPhonePasses
	}

	for i := 0; i < passes; i++ {
		next := text
		for _, re := range c.patterns {
			next = applyPattern(next, re, c.placeholder, c.guard)
		}
		if next == text {
			break
		}
		text = next
	}

	return text
}

// applyPattern replaces every guard-accepted match of re with the
// placeholder. Rejected candidates are left untouched.
func applyPattern(text string, re *regexp.Regexp, placeholder string, guard guardFunc) string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	replaced := false
	for _, loc := range locs {
		if guard != nil && !guard(text, loc[0], loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString(placeholder)
		last = loc[1]
		replaced = true
	}
	if !replaced {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}
