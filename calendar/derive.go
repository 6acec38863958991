package calendar

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// Event is one date-bearing fact surfaced for scheduling. Events are derived
// fresh from the current documents and tasks on every request and are never
// persisted.
type Event struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	Category    Category  `json:"category"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// CustomDocumentID is the sentinel document id carried by events that come
// from user tasks rather than documents.
const CustomDocumentID = "custom"

var (
	isoDatePattern   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	slashDatePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	longDatePattern  = regexp.MustCompile(`(?i)(\d{1,2})\s+de\s+([a-záéíóú]+)(?:\s+(?:de|del))?\s+(\d{4})`)
)

var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"setiembre":  time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// makeDate builds a date-only UTC time and rejects values the calendar
// normalized away (31/02 and friends).
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ExtractDate scans free text for a date substring, trying the ISO pattern,
// then the slash-delimited numeric pattern, then the Spanish long form.
// First match wins. Slash dates are always read day-first; genuinely
// ambiguous MM/DD strings are misread and the caller cannot tell (known
// limitation inherited from the field format itself).
func ExtractDate(text string) (time.Time, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return makeDate(year, time.Month(month), day)
	}
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, time.Month(month), day)
	}
	if m := longDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			return time.Time{}, false
		}
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}
	return time.Time{}, false
}

// DeriveEvents produces the unified calendar event list for a set of
// documents and user tasks:
//
//   - every document with a renewal date emits one renewal event titled with
//     the file name;
//   - every extracted field whose value contains a recognizable date emits
//     one event, categorized by the field name and described by the original
//     field value;
//   - every task emits one event with the sentinel document id "custom".
//
// The result is sorted ascending by date; no order is assumed from the
// source collections. Fields without a date, unspecified values and invalid
// calendar dates are silently skipped.
func DeriveEvents(docs []*model.Document, tasks []model.Task) []Event {
	var events []Event

	for _, doc := range docs {
		if doc.RenewalDate != nil {
			r := doc.RenewalDate.UTC()
			events = append(events, Event{
				ID:         doc.ID + ":renewal",
				DocumentID: doc.ID,
				Category:   CategoryRenewal,
				Date:       time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, time.UTC),
				Title:      doc.FileName,
			})
		}

		for fieldName, value := range doc.ExtractedData {
			if !model.IsSpecified(value) {
				continue
			}
			date, ok := ExtractDate(value)
			if !ok {
				continue
			}
			events = append(events, Event{
				ID:          doc.ID + ":" + fieldName,
				DocumentID:  doc.ID,
				Category:    ClassifyField(fieldName),
				Date:        date,
				Title:       fieldName,
				Description: value,
			})
		}
	}

	for _, task := range tasks {
		events = append(events, Event{
			ID:          "task:" + task.ID,
			DocumentID:  CustomDocumentID,
			Category:    ParseCategory(task.Category),
			Date:        task.Date.UTC(),
			Title:       task.Title,
			Description: task.Description,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
