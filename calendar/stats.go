package calendar

import (
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// Stats aggregates a workspace's documents and derived events for the
// dashboard. Both maps are zero-filled over the full enumerations so a
// category or bucket with no matches still appears with a zero count.
type Stats struct {
	TotalDocuments    int                   `json:"total_documents"`
	TotalEvents       int                   `json:"total_events"`
	DocumentsByStatus map[UrgencyStatus]int `json:"documents_by_status"`
	EventsByCategory  map[Category]int      `json:"events_by_category"`
}

// ComputeStats counts documents per urgency bucket and events per category
// at the given time.
func ComputeStats(docs []*model.Document, events []Event, now time.Time) Stats {
	stats := Stats{
		TotalDocuments:    len(docs),
		TotalEvents:       len(events),
		DocumentsByStatus: make(map[UrgencyStatus]int, len(Statuses)),
		EventsByCategory:  make(map[Category]int, len(Categories)),
	}

	for _, status := range Statuses {
		stats.DocumentsByStatus[status] = 0
	}
	for _, category := range Categories {
		stats.EventsByCategory[category] = 0
	}

	for _, doc := range docs {
		stats.DocumentsByStatus[DocumentStatus(doc, now)]++
	}
	for _, ev := range events {
		stats.EventsByCategory[ev.Category]++
	}

	return stats
}
