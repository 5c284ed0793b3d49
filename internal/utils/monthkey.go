package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	canonicalMonthRE = regexp.MustCompile(`^\d{4}-\d{2}$`)
	shortMonthRE     = regexp.MustCompile(`^\d{4}-\d$`)
	namedMonthRE     = regexp.MustCompile(`^([A-Za-z]{3,})\s+(\d{4})$`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NormalizeMonthKey canonicalizes heterogeneous stored month values to
// YYYY-MM. Accepted shapes, in order: YYYY-MM, YYYY-M, "Jan 2026",
// "January 2026" (month name matched by its first three letters,
// case-insensitive). Anything else is unparseable and the owning record
// must be excluded from the reconciled view rather than shown under a
// wrong month.
func NormalizeMonthKey(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if canonicalMonthRE.MatchString(s) {
		return s, true
	}

	if shortMonthRE.MatchString(s) {
		parts := strings.SplitN(s, "-", 2)
		return parts[0] + "-0" + parts[1], true
	}

	if m := namedMonthRE.FindStringSubmatch(s); m != nil {
		mon := strings.ToLower(m[1][:3])
		if mm, ok := monthNumbers[mon]; ok {
			return m[2] + "-" + mm, true
		}
	}

	return "", false
}

// IsCanonicalMonthKey reports whether s already has the YYYY-MM shape.
func IsCanonicalMonthKey(s string) bool {
	return canonicalMonthRE.MatchString(s)
}

// MonthText renders a canonical month key in long form ("January 2026")
// for human-facing message bodies. Malformed keys pass through unchanged.
func MonthText(key string) string {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return key
	}
	return fmt.Sprintf("%s %s", monthNames[m-1], parts[0])
}

// CurrentMonthKey returns the canonical key for the given instant.
func CurrentMonthKey(now time.Time) string {
	return now.Format("2006-01")
}
