package calendar

import "time"

// BucketByDay groups the events that fall in the given month/year by their
// day of month. Days without events have no entry, so the result is sparse.
func BucketByDay(events []Event, year int, month time.Month) map[int][]Event {
	buckets := make(map[int][]Event)
	for _, ev := range events {
		d := ev.Date.UTC()
		if d.Year() != year || d.Month() != month {
			continue
		}
		buckets[d.Day()] = append(buckets[d.Day()], ev)
	}
	return buckets
}

// LeadingPadding returns how many blank cells a Monday-first month grid
// needs before day 1. Layout-only; carries no other semantics.
func LeadingPadding(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return (int(first.Weekday()) + 6) % 7
}
