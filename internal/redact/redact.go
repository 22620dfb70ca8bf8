// Package redact masks sensitive substrings in log messages.
//
// Rules run in a fixed order. Email addresses are replaced before the
// generic long-token rule so that a long local-part keeps its
// [REDACTED_EMAIL] marker instead of turning into [REDACTED_KEY].
package redact

import "regexp"

// Markers written in place of redacted text.
const (
	EmailMarker    = "[REDACTED_EMAIL]"
	PasswordMarker = "[REDACTED]"
	KeyMarker      = "[REDACTED_KEY]"
)

// Rule is a single redaction step.
type Rule struct {
	ID          string
	Description string
	Pattern     *regexp.Regexp
	Replacement string
}

var rules = []Rule{
	{
		ID:          "email",
		Description: "Email address",
		Pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Replacement: EmailMarker,
	},
	{
		ID:          "password",
		Description: "password=<value> pair, value ends at whitespace or &",
		Pattern:     regexp.MustCompile(`(?i)(password\s*=\s*)[^&\s]+`),
		Replacement: "${1}" + PasswordMarker,
	},
	{
		ID:          "api-key",
		Description: "Alphanumeric token of 20 or more characters",
		Pattern:     regexp.MustCompile(`\b[A-Za-z0-9]{20,}\b`),
		Replacement: KeyMarker,
	},
}

// Rules returns the redaction rules in the order they are applied.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// String returns s with every rule applied in order. Empty input is
// returned unchanged.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return s
}

// Matches reports whether any rule would change s.
func Matches(s string) bool {
	for _, r := range rules {
		if r.Pattern.MatchString(s) {
			return true
		}
	}
	return false
}
