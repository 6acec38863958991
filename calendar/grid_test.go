package calendar

import (
	"testing"
	"time"
)

func TestBucketByDay(t *testing.T) {
	events := []Event{
		{ID: "1", Date: date(2025, 6, 5)},
		{ID: "2", Date: date(2025, 6, 5)},
		{ID: "3", Date: date(2025, 6, 20)},
		{ID: "4", Date: date(2025, 7, 5)}, // other month
		{ID: "5", Date: date(2024, 6, 5)}, // other year
	}

	buckets := BucketByDay(events, 2025, time.June)

	if len(buckets) != 2 {
		t.Fatalf("Expected 2 populated days, got %d", len(buckets))
	}
	if len(buckets[5]) != 2 {
		t.Errorf("Expected 2 events on day 5, got %d", len(buckets[5]))
	}
	if len(buckets[20]) != 1 {
		t.Errorf("Expected 1 event on day 20, got %d", len(buckets[20]))
	}
	if _, ok := buckets[6]; ok {
		t.Error("Expected no entry for a day without events")
	}
}

func TestBucketByDayEmpty(t *testing.T) {
	buckets := BucketByDay(nil, 2025, time.June)
	if len(buckets) != 0 {
		t.Errorf("Expected empty map, got %d entries", len(buckets))
	}
}

func TestLeadingPadding(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.September, 0}, // starts on Monday
		{2025, time.July, 1},      // starts on Tuesday
		{2025, time.June, 6},      // starts on Sunday
		{2025, time.February, 5},  // starts on Saturday
		{2024, time.January, 0},   // starts on Monday
	}

	for _, tt := range tests {
		if got := LeadingPadding(tt.year, tt.month); got != tt.want {
			t.Errorf("LeadingPadding(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
