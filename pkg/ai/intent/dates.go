package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDate = regexp.MustCompile(`\b(\d{1,2})([/.\-])(\d{1,2})([/.\-])(\d{2,4})\b`)
	naturalDate = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{4})\b`)
	isoDate     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

var monthNumbers = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// extractDateCandidate pulls the first date-looking substring from the query.
func extractDateCandidate(query string) string {
	if m := isoDate.FindString(query); m != "" {
		return m
	}
	if m := numericDate.FindString(query); m != "" {
		return m
	}
	if m := naturalDate.FindString(query); m != "" {
		return m
	}
	return ""
}

// NormalizeDate converts a matched date substring to ISO YYYY-MM-DD.
// Numeric separators may be "/", "-" or ".". Ambiguous numeric dates are
// assumed day-first (European) and converted to month-first before parsing;
// a heuristic carried over deliberately, with no locale validation.
// If parsing fails, the original substring is returned unchanged; the caller
// is responsible for treating it as unverified.
func NormalizeDate(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if m := isoDate.FindStringSubmatch(trimmed); m != nil {
		return m[0]
	}

	if m := naturalDate.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1]) // ordinal suffix stays outside the capture
		month := monthNumbers[strings.ToLower(m[2])]
		year, _ := strconv.Atoi(m[3])
		if validDate(year, month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
		return raw
	}

	if m := numericDate.FindStringSubmatch(trimmed); m != nil {
		day, _ := strconv.Atoi(m[1]) // day-first assumption
		month, _ := strconv.Atoi(m[3])
		year, _ := strconv.Atoi(m[5])
		if year < 100 {
			year += 1900
			if year < 1930 {
				year += 100
			}
		}
		// Clearly month-first input (e.g. 09/25/1989): swap back.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if validDate(year, month, day) {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
		return raw
	}

	return raw
}

func validDate(year, month, day int) bool {
	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}
