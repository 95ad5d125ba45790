package timeutil

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DisplayLayout is how timestamps appear on rendered pages.
const DisplayLayout = "Jan 2, 2006 3:04 PM MST"

// Feeds write timestamps with and without zones; tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseTimestamp accepts an ISO-8601 string, a YYYY-MM-DD date, or unix seconds
// (milliseconds when the value is too large to be seconds). Results are UTC.
func ParseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return fromUnix(n)
		}
	case float64:
		return fromUnix(v)
	case int:
		return fromUnix(float64(v))
	case int64:
		return fromUnix(float64(v))
	}
	return time.Time{}, false
}

func fromUnix(n float64) (time.Time, bool) {
	if n <= 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	sec, frac := math.Modf(n)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// FormatDisplay renders a timestamp for pages; empty for the zero time.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DisplayLayout)
}
