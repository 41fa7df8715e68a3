package redact

import "regexp"

// guardFunc accepts or rejects a candidate match at text[start:end]. The
// full working text is passed so guards can inspect the preceding
// context.
type guardFunc func(text string, start, end int) bool

// category is one ordered set of detection patterns sharing a
// replacement placeholder.
type category struct {
	name        string
	patterns    []*regexp.Regexp
	placeholder string
	guard       guardFunc // nil accepts every match
	multipass   bool      // re-apply until a fixed point (overlapping patterns)
}

// categories is applied strictly in slice order. The order is
// load-bearing: email must be masked before the numeric categories run,
// otherwise the broader digit patterns can match substrings embedded in
// an unmasked address and leak through or double-redact.
var categories = []category{
	{
		name: "email",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
		},
		placeholder: "[EMAIL REDACTED]",
	},
	{
		name: "credit_card",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b4[0-9]{12}(?:[0-9]{3})?\b`),     // Visa
			regexp.MustCompile(`\b5[1-5][0-9]{14}\b`),             // Mastercard
			regexp.MustCompile(`\b3[47][0-9]{13}\b`),              // American Express
			regexp.MustCompile(`\b6(?:011|5[0-9]{2})[0-9]{12}\b`), // Discover
			// Generic grouped/hyphenated fallbacks of plausible card length
			regexp.MustCompile(`\b\d{4}(?:[-\s]\d{4}){3}\b`),
			regexp.MustCompile(`\b\d{4}[-\s]\d{6}[-\s]\d{5}\b`),
		},
		placeholder: "[CARD NUMBER REDACTED]",
	},
	{
		name: "phone",
		patterns: []*regexp.Regexp{
			// International, +-prefixed
			regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?(?:[-.\s]?\d{1,4}){1,5}`),
			// Parenthesized area code
			regexp.MustCompile(`\(\d{2,4}\)[-.\s]?\d{3,4}[-.\s]?\d{3,4}`),
			// Slash-delimited with optional extension group
			regexp.MustCompile(`\b\d{2,5}\s?/\s?\d{3,8}(?:[-.\s]\d{1,6})?\b`),
			// US/Canada with optional country code
			regexp.MustCompile(`\b(?:1[-.\s]?)?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
			// Generic delimited digit groups. Four groups minimum so the
			// NNN-NN-NNNN shape falls through to the SSN category.
			regexp.MustCompile(`\b\d{2,4}(?:[-.\s]\d{2,4}){3,4}\b`),
		},
		placeholder: "[PHONE REDACTED]",
		guard:       phoneGuard,
		multipass:   true,
	},
	{
		name: "address",
		patterns: []*regexp.Regexp{
			// Street number plus a recognized street-type suffix
			regexp.MustCompile(`(?i)\b\d{1,5}\s+(?:[A-Za-z][A-Za-z.'\-]*\s+){1,4}(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Place|Pl|Square|Sq|Terrace|Ter|Way)\b`),
			regexp.MustCompile(`(?i)\bP\.?\s?O\.?\s?Box\s+\d+\b`),
			// UK-style alphanumeric postcode
			regexp.MustCompile(`\b[A-Z]{1,2}[0-9][A-Z0-9]?\s?[0-9][A-Z]{2}\b`),
			// US 5/9-digit ZIP
			regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
		},
		placeholder: "[ADDRESS REDACTED]",
	},
	{
		name: "ssn",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`),
		},
		placeholder: "[SSN REDACTED]",
	},
}

// urlPrefixRe matches working text that ends inside an unterminated URL:
// a scheme fragment followed by non-space characters reaching the
// candidate match.
var urlPrefixRe = regexp.MustCompile(`(?i)https?://\S*$`)

// phoneGuard accepts a phone candidate only when its stripped digit
// count is plausible and it is not embedded in a URL path or query.
func phoneGuard(text string, start, end int) bool {
	digits := 0
	for _, r := range text[start:end] {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return false
	}
	return !urlPrefixRe.MatchString(text[:start])
}
