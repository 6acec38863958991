package calendar

import (
	"testing"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  time.Time
		found bool
	}{
		{"iso", "2025-06-15", date(2025, 6, 15), true},
		{"iso embedded", "payable before 2025-06-15 each year", date(2025, 6, 15), true},
		{"slash day first", "15/06/2025", date(2025, 6, 15), true},
		{"slash single digits", "1/6/2025", date(2025, 6, 1), true},
		{"spanish long form", "15 de junio de 2025", date(2025, 6, 15), true},
		{"spanish uppercase", "3 de Marzo de 2026", date(2026, 3, 3), true},
		{"spanish del", "1 de enero del 2025", date(2025, 1, 1), true},
		{"iso wins over slash", "2025-01-02 or 03/04/2025", date(2025, 1, 2), true},
		{"no date", "see appendix", time.Time{}, false},
		{"invalid calendar date", "31/02/2025", time.Time{}, false},
		{"invalid iso month", "2025-13-01", time.Time{}, false},
		{"unknown spanish month", "5 de brumario de 2025", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractDate(tt.text)
			if found != tt.found {
				t.Fatalf("ExtractDate(%q) found = %v, want %v", tt.text, found, tt.found)
			}
			if found && !got.Equal(tt.want) {
				t.Errorf("ExtractDate(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestDeriveEventsRenewal(t *testing.T) {
	renewal := date(2025, 3, 1)
	docs := []*model.Document{
		{ID: "doc-1", FileName: "lease.pdf", RenewalDate: &renewal},
		{ID: "doc-2", FileName: "nda.pdf"}, // no renewal date
	}

	events := DeriveEvents(docs, nil)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Category != CategoryRenewal {
		t.Errorf("Expected renewal category, got %s", ev.Category)
	}
	if !ev.Date.Equal(renewal) {
		t.Errorf("Expected date %s, got %s", renewal, ev.Date)
	}
	if ev.Title != "lease.pdf" {
		t.Errorf("Expected title from file name, got %q", ev.Title)
	}
	if ev.DocumentID != "doc-1" {
		t.Errorf("Expected document id doc-1, got %q", ev.DocumentID)
	}
}

func TestDeriveEventsExtractedFields(t *testing.T) {
	docs := []*model.Document{{
		ID: "doc-1",
		ExtractedData: map[string]string{
			"Fecha de pago": "15/06/2025",
			"Random Note":   "see appendix",
			"Audit window":  "not specified",
		},
	}}

	events := DeriveEvents(docs, nil)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Category != CategoryPayment {
		t.Errorf("Expected payment category for 'Fecha de pago', got %s", ev.Category)
	}
	if !ev.Date.Equal(date(2025, 6, 15)) {
		t.Errorf("Expected 2025-06-15, got %s", ev.Date)
	}
	if ev.Title != "Fecha de pago" {
		t.Errorf("Expected title to be the field name, got %q", ev.Title)
	}
	if ev.Description != "15/06/2025" {
		t.Errorf("Expected description to be the original value, got %q", ev.Description)
	}
}

func TestDeriveEventsTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Title: "Call supplier", Date: date(2025, 4, 10), Category: "review"},
		{ID: "t2", Title: "Misc", Date: date(2025, 4, 11), Category: "nonsense"},
		{ID: "t3", Title: "Untyped", Date: date(2025, 4, 12)},
	}

	events := DeriveEvents(nil, tasks)

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.DocumentID != CustomDocumentID {
			t.Errorf("Expected sentinel document id %q, got %q", CustomDocumentID, ev.DocumentID)
		}
	}
	if events[0].Category != CategoryReview {
		t.Errorf("Expected task category review, got %s", events[0].Category)
	}
	if events[1].Category != CategoryOther {
		t.Errorf("Expected unknown category to fall back to other, got %s", events[1].Category)
	}
	if events[2].Category != CategoryOther {
		t.Errorf("Expected empty category to default to other, got %s", events[2].Category)
	}
}

func TestDeriveEventsSortedUnderPermutation(t *testing.T) {
	r1, r2, r3 := date(2025, 9, 1), date(2025, 1, 15), date(2025, 5, 20)
	docs := []*model.Document{
		{ID: "a", FileName: "a.pdf", RenewalDate: &r1},
		{ID: "b", FileName: "b.pdf", RenewalDate: &r2},
		{ID: "c", FileName: "c.pdf", RenewalDate: &r3},
	}
	permutations := [][]*model.Document{
		{docs[0], docs[1], docs[2]},
		{docs[2], docs[0], docs[1]},
		{docs[1], docs[2], docs[0]},
	}

	for _, perm := range permutations {
		events := DeriveEvents(perm, nil)
		for i := 1; i < len(events); i++ {
			if events[i].Date.Before(events[i-1].Date) {
				t.Fatalf("Events not sorted ascending: %s before %s",
					events[i].Date, events[i-1].Date)
			}
		}
	}
}

func TestDeriveEventsMergesAllSources(t *testing.T) {
	renewal := date(2025, 7, 1)
	docs := []*model.Document{{
		ID:          "doc-1",
		FileName:    "contract.pdf",
		RenewalDate: &renewal,
		ExtractedData: map[string]string{
			"Payment due": "2025-02-01",
		},
	}}
	tasks := []model.Task{{ID: "t1", Title: "Review terms", Date: date(2025, 4, 1)}}

	events := DeriveEvents(docs, tasks)

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	// Sorted: payment (Feb), task (Apr), renewal (Jul)
	if events[0].Category != CategoryPayment || events[1].DocumentID != CustomDocumentID || events[2].Category != CategoryRenewal {
		t.Errorf("Unexpected merged order: %v, %v, %v",
			events[0].Category, events[1].DocumentID, events[2].Category)
	}
}

func TestDeriveEventsEmptyInput(t *testing.T) {
	events := DeriveEvents(nil, nil)
	if len(events) != 0 {
		t.Errorf("Expected no events for empty input, got %d", len(events))
	}
}
