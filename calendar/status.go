package calendar

import (
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// UrgencyStatus expresses how close a date is, derived purely from date
// arithmetic against an injected "now".
type UrgencyStatus string

const (
	StatusExpired  UrgencyStatus = "expired"
	StatusUrgent   UrgencyStatus = "urgent"
	StatusUpcoming UrgencyStatus = "upcoming"
	StatusActive   UrgencyStatus = "active"
)

// Statuses lists every urgency bucket in a fixed order for zero-filled
// aggregations.
var Statuses = []UrgencyStatus{StatusExpired, StatusUrgent, StatusUpcoming, StatusActive}

// Thresholds for generic events. Documents use their notice period instead.
const (
	EventThresholdUrgent   = 7
	EventThresholdUpcoming = 30
)

// DaysUntil returns the whole number of calendar days from now until date,
// comparing date-only values in UTC. Same day is 0, yesterday is -1.
func DaysUntil(date, now time.Time) int {
	d := date.UTC()
	n := now.UTC()
	d0 := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	n0 := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(d0.Sub(n0).Hours() / 24)
}

// ClassifyUrgency maps a day count to an urgency bucket.
//
//	daysUntil < 0                      → expired
//	0 <= daysUntil <= thresholdUrgent  → urgent
//	thresholdUrgent < daysUntil <= thresholdUpcoming → upcoming
//	otherwise                          → active
//
// A negative day count is expired regardless of the thresholds.
func ClassifyUrgency(daysUntil, thresholdUrgent, thresholdUpcoming int) UrgencyStatus {
	switch {
	case daysUntil < 0:
		return StatusExpired
	case daysUntil <= thresholdUrgent:
		return StatusUrgent
	case daysUntil <= thresholdUpcoming:
		return StatusUpcoming
	default:
		return StatusActive
	}
}

// DocumentStatus classifies a document against its renewal date using the
// document's own notice period: urgent within the notice period, upcoming
// within twice the notice period. A document without a renewal date is
// always active.
func DocumentStatus(doc *model.Document, now time.Time) UrgencyStatus {
	if doc.RenewalDate == nil {
		return StatusActive
	}
	notice := doc.NoticePeriod()
	return ClassifyUrgency(DaysUntil(*doc.RenewalDate, now), notice, 2*notice)
}

// EventStatus classifies a derived event with the fixed generic thresholds.
func EventStatus(ev Event, now time.Time) UrgencyStatus {
	return ClassifyUrgency(DaysUntil(ev.Date, now), EventThresholdUrgent, EventThresholdUpcoming)
}
