package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestParseTimestampAcceptsFeedFormats(t *testing.T) {
	want := time.Date(2025, 12, 7, 17, 30, 0, 0, time.UTC)
	cases := []any{
		"2025-12-07T17:30:00Z",
		"2025-12-07T12:30:00-05:00",
		"2025-12-07T17:30:00",
		"2025-12-07 17:30:00",
		float64(want.Unix()),
		want.Unix(),
		"1765128600",
		float64(want.UnixMilli()),
	}
	for _, in := range cases {
		got, ok := ParseTimestamp(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%v) = %s,%v want %s", in, got, ok, want)
		}
	}
}

func TestParseTimestampDateOnly(t *testing.T) {
	got, ok := ParseTimestamp("2025-12-07")
	if !ok || FormatDate(got) != "2025-12-07" {
		t.Fatalf("expected date-only parse, got %s %v", got, ok)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, in := range []any{"", "yesterday", float64(0), -5, nil, true} {
		if _, ok := ParseTimestamp(in); ok {
			t.Fatalf("expected %v to be rejected", in)
		}
	}
}

func TestFormatDisplay(t *testing.T) {
	if FormatDisplay(time.Time{}) != "" {
		t.Fatalf("expected empty display for zero time")
	}
	ts := time.Date(2025, 12, 7, 17, 30, 0, 0, time.UTC)
	if got := FormatDisplay(ts); got != "Dec 7, 2025 5:30 PM UTC" {
		t.Fatalf("unexpected display %q", got)
	}
}
