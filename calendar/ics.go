package calendar

import (
	"strings"
)

const icsTimeLayout = "20060102T150405Z"

// ExportICS renders the event list as an iCalendar document, one VEVENT per
// event. The output is a pure function of the event list, the organization
// domain and the locale: DTSTAMP is taken from the event date rather than
// the wall clock, so the same inputs always produce the same bytes.
func ExportICS(events []Event, orgDomain, locale string) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//Helios//Contract Analysis//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")

	for _, ev := range events {
		stamp := ev.Date.UTC().Format(icsTimeLayout)
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+ev.ID+"@"+orgDomain)
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART:"+stamp)
		writeLine(&b, "SUMMARY:"+escapeICS(ev.Category.Label(locale)+" "+ev.Title))
		description := ev.Title
		if ev.Description != "" {
			description = ev.Title + "\n" + ev.Description
		}
		writeLine(&b, "DESCRIPTION:"+escapeICS(description))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// writeLine appends one content line with the CRLF terminator RFC 5545
// requires.
func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

// escapeICS escapes text for use in an iCalendar property value.
func escapeICS(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, ";", "\\;")
	value = strings.ReplaceAll(value, ",", "\\,")
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\n", "\\n")
	return value
}
