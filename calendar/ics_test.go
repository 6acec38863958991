package calendar

import (
	"strings"
	"testing"
	"time"
)

func sampleEvents() []Event {
	return []Event{
		{
			ID:         "doc-1:renewal",
			DocumentID: "doc-1",
			Category:   CategoryRenewal,
			Date:       date(2025, 3, 1),
			Title:      "lease.pdf",
		},
		{
			ID:          "doc-1:Fecha de pago",
			DocumentID:  "doc-1",
			Category:    CategoryPayment,
			Date:        date(2025, 6, 15),
			Title:       "Fecha de pago",
			Description: "15/06/2025, primer plazo",
		},
	}
}

func TestExportICSStructure(t *testing.T) {
	out := ExportICS(sampleEvents(), "helios.app", "es")

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n") {
		t.Error("Expected calendar to start with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(out, "END:VCALENDAR\r\n") {
		t.Error("Expected calendar to end with END:VCALENDAR")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 VEVENT blocks, got %d", got)
	}
	if !strings.Contains(out, "UID:doc-1:renewal@helios.app\r\n") {
		t.Error("Expected UID suffixed with the org domain")
	}
	if !strings.Contains(out, "DTSTART:20250301T000000Z\r\n") {
		t.Error("Expected DTSTART in UTC basic format")
	}
	if !strings.Contains(out, "SUMMARY:🔄 Renovación lease.pdf\r\n") {
		t.Error("Expected localized emoji-prefixed summary")
	}
	// Commas in free text must be escaped.
	if !strings.Contains(out, "15/06/2025\\, primer plazo") {
		t.Error("Expected escaped comma in description")
	}
}

func TestExportICSDeterministic(t *testing.T) {
	a := ExportICS(sampleEvents(), "helios.app", "es")
	b := ExportICS(sampleEvents(), "helios.app", "es")
	if a != b {
		t.Error("Expected byte-identical output for the same event list and locale")
	}
}

func TestExportICSRoundTrip(t *testing.T) {
	events := sampleEvents()
	out := ExportICS(events, "helios.app", "en")

	// Re-parse every DTSTART and compare against the source dates.
	var parsed []time.Time
	for _, line := range strings.Split(out, "\r\n") {
		if value, ok := strings.CutPrefix(line, "DTSTART:"); ok {
			ts, err := time.Parse("20060102T150405Z", value)
			if err != nil {
				t.Fatalf("Failed to parse DTSTART %q: %v", value, err)
			}
			parsed = append(parsed, ts)
		}
	}

	if len(parsed) != len(events) {
		t.Fatalf("Expected %d DTSTART lines, got %d", len(events), len(parsed))
	}
	for i, ev := range events {
		if !parsed[i].Equal(ev.Date) {
			t.Errorf("Event %d: round-tripped %s, want %s", i, parsed[i], ev.Date)
		}
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a,b;c", "a\\,b\\;c"},
		{"line\nbreak", "line\\nbreak"},
		{"back\\slash", "back\\\\slash"},
	}
	for _, tt := range tests {
		if got := escapeICS(tt.in); got != tt.want {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
