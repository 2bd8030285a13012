package models

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestPositionsBucket(t *testing.T) {
	tests := []struct {
		name     string
		value    *int
		expected string
	}{
		{"null", nil, Unknown},
		{"one", intPtr(1), BucketOne},
		{"two", intPtr(2), BucketFew},
		{"four", intPtr(4), BucketFew},
		{"five", intPtr(5), BucketSeveral},
		{"seven", intPtr(7), BucketSeveral},
		{"nine", intPtr(9), BucketSeveral},
		{"ten", intPtr(10), BucketMany},
		{"twelve", intPtr(12), BucketMany},
		{"zero", intPtr(0), Unknown},
		{"negative", intPtr(-3), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionsBucket(tt.value); got != tt.expected {
				t.Errorf("PositionsBucket() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{"no values", nil, Unknown},
		{"empty", []string{""}, Unknown},
		{"blank", []string{"   "}, Unknown},
		{"trimmed", []string{"  Acme AB \t"}, "Acme AB"},
		{"falls back to second", []string{" ", "Beta"}, "Beta"},
		{"first wins", []string{"Alpha", "Beta"}, "Alpha"},
		{"case preserved", []string{"acme"}, "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.values...); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDayAndWeekdayLabels(t *testing.T) {
	// 23:30 in Stockholm on Friday is still Friday in UTC at 22:30.
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)
	if got := DayLabel(ts); got != "2024-03-01" {
		t.Errorf("DayLabel() = %q, want 2024-03-01", got)
	}
	if got := WeekdayLabel(ts); got != "Fri" {
		t.Errorf("WeekdayLabel() = %q, want Fri", got)
	}

	// 00:30 at UTC+2 on Saturday is Friday in UTC.
	early := time.Date(2024, 3, 2, 0, 30, 0, 0, time.FixedZone("EET", 7200))
	if got := DayLabel(early); got != "2024-03-01" {
		t.Errorf("DayLabel() = %q, want 2024-03-01", got)
	}
	if got := WeekdayLabel(early); got != "Fri" {
		t.Errorf("WeekdayLabel() = %q, want Fri", got)
	}

	if got := DayLabel(time.Time{}); got != Unknown {
		t.Errorf("DayLabel(zero) = %q, want %q", got, Unknown)
	}
	if got := WeekdayLabel(time.Time{}); got != Unknown {
		t.Errorf("WeekdayLabel(zero) = %q, want %q", got, Unknown)
	}
}

func TestDeref(t *testing.T) {
	s := "x"
	if got := Deref(&s); got != "x" {
		t.Errorf("Deref() = %q, want x", got)
	}
	if got := Deref(nil); got != "" {
		t.Errorf("Deref(nil) = %q, want empty", got)
	}
}
