package core

import (
	"regexp"
	"strings"
)

// phoneRules is the ordered rewrite chain applied by NormalizePhone, in
// exactly this order and exactly once each. The second rule looks
// unreachable after the first has fired on the same input, but it handles
// numbers that already arrive with a "+2560" prefix, so both stay.
var phoneRules = []struct {
	prefix string
	with   string
}{
	{"+0", "+256"},
	{"+2560", "+256"},
}

var phonePattern = regexp.MustCompile(`^\+256\d{9}$`)

// NormalizePhone rewrites a user-entered phone number into the Uganda
// +256 form the payment API expects: whitespace is stripped, a leading
// "+" is ensured, then the rewrite rules above run top to bottom.
// It never fails; pass the result to ValidatePhone.
func NormalizePhone(raw string) string {
	n := strings.Join(strings.Fields(raw), "")
	if n == "" {
		return n
	}
	if !strings.HasPrefix(n, "+") {
		n = "+" + n
	}
	for _, r := range phoneRules {
		if strings.HasPrefix(n, r.prefix) {
			n = r.with + n[len(r.prefix):]
		}
	}
	return n
}

// ValidatePhone checks a normalized number against the API contract:
// "+256" followed by exactly nine digits.
func ValidatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}
