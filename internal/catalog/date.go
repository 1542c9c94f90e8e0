// Package catalog holds the display rules for works, recordings, reviews
// and performances.
package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearRangePattern = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`)
	exactRange       = regexp.MustCompile(`^\d{4}\s*[-–]\s*\d{4}$`)
	yearPattern      = regexp.MustCompile(`(\d{4})`)
	wordYearPattern  = regexp.MustCompile(`\b(\d{4})\b`)
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
	"2006",
}

// DefaultCompletionFallback is shown for works without a completion date.
const DefaultCompletionFallback = "in progress"

// GetSortYear extracts a sortable year from a completion date such as
// "2021", "2016 – 2017" or "2019-12-31". Ranges sort by their end year.
// Unparseable input yields 0.
func GetSortYear(date string) int {
	if date == "" {
		return 0
	}
	if m := yearRangePattern.FindStringSubmatch(date); m != nil {
		year, _ := strconv.Atoi(m[2])
		return year
	}
	if m := yearPattern.FindStringSubmatch(date); m != nil {
		year, _ := strconv.Atoi(m[1])
		return year
	}
	return 0
}

// FormatCompletionDate renders a completion date for display. Year ranges
// are kept as written, dates are reduced to their year and anything else is
// returned unchanged.
func FormatCompletionDate(date, fallback string) string {
	if date == "" {
		return fallback
	}
	if exactRange.MatchString(date) {
		return date
	}
	if t, ok := parseDate(date); ok {
		return strconv.Itoa(t.Year())
	}
	if m := wordYearPattern.FindStringSubmatch(date); m != nil {
		return m[1]
	}
	return date
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// timestamp orders dates; missing or unparseable dates sort as the epoch.
func timestamp(value string) int64 {
	if value == "" {
		return 0
	}
	t, ok := parseDate(value)
	if !ok {
		return 0
	}
	return t.Unix()
}
