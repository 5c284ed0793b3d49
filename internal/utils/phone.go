package utils

import (
	"regexp"
	"strings"
)

// Bangladesh mobile numbers: 11 digits locally, "01" plus an operator
// digit in 3-9. International form is +880 plus the local number without
// its leading zero.
const phoneCountryCode = "880"

var (
	nonDigitRE    = regexp.MustCompile(`\D`)
	localMobileRE = regexp.MustCompile(`^01[3-9]\d{8}$`)
)

// NormalizePhone canonicalizes an arbitrary input to E.164 (+8801XXXXXXXXX).
// The second return is false when the input is not a valid mobile number;
// invalid numbers must never reach the SMS gateway.
func NormalizePhone(raw string) (string, bool) {
	cleaned := nonDigitRE.ReplaceAllString(raw, "")

	switch {
	case strings.HasPrefix(cleaned, phoneCountryCode) && len(cleaned) == len(phoneCountryCode)+10:
		// 8801XXXXXXXXX: country code replaces the leading zero
		cleaned = "0" + cleaned[len(phoneCountryCode):]
	case strings.HasPrefix(cleaned, "88") && len(cleaned) == 2+11:
		// 8801XXXXXXXXXX (rare two-digit prefix before the full local form)
		cleaned = cleaned[2:]
	}

	if !localMobileRE.MatchString(cleaned) {
		return "", false
	}
	return "+" + phoneCountryCode + cleaned[1:], true
}

// IsValidPhone reports whether the input normalizes to a valid mobile number.
func IsValidPhone(raw string) bool {
	_, ok := NormalizePhone(raw)
	return ok
}
