package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/config"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage/memory"
	"github.com/gin-gonic/gin"
)

func newCalendarHandler(store *memory.Store) *CalendarHandler {
	return &CalendarHandler{
		docs:  store.Documents(),
		tasks: store.Tasks(),
		config: &config.CalendarConfig{
			OrgDomain:     "example.com",
			DefaultLocale: "es",
		},
	}
}

func seedCalendarData(t *testing.T, store *memory.Store) {
	t.Helper()

	renewal := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	seedDocument(t, store, &model.Document{
		ID:          "doc-1",
		Workspace:   "ws1",
		FileName:    "lease.pdf",
		RenewalDate: &renewal,
		Status:      model.StatusCompleted,
		ExtractedData: map[string]string{
			"Fecha de pago": "2027-06-15",
		},
	})
	seedDocument(t, store, &model.Document{
		ID:        "doc-other-ws",
		Workspace: "ws2",
		FileName:  "other.pdf",
		Status:    model.StatusCompleted,
	})

	err := store.Tasks().Save(context.Background(), &model.Task{
		ID:        "task-1",
		Workspace: "ws1",
		Title:     "Prepare renewal brief",
		Date:      time.Date(2027, 2, 20, 0, 0, 0, 0, time.UTC),
		Category:  "review",
	})
	if err != nil {
		t.Fatalf("Failed to seed task: %v", err)
	}
}

func TestCalendarHandlerEvents(t *testing.T) {
	store := newTestStore()
	seedCalendarData(t, store)

	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/events", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Events(c)
	})

	req := httptest.NewRequest("GET", "/calendar/events", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Events []map[string]interface{} `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	// Renewal event, payment field event and the user task
	if len(response.Events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(response.Events))
	}

	// Sorted ascending by date: task first
	if response.Events[0]["id"] != "task:task-1" {
		t.Errorf("Expected task event first, got %v", response.Events[0]["id"])
	}
	if response.Events[0]["document_id"] != "custom" {
		t.Errorf("Expected custom document id for task event, got %v", response.Events[0]["document_id"])
	}

	// Default locale is Spanish
	for _, ev := range response.Events {
		if ev["id"] == "doc-1:renewal" {
			label, _ := ev["label"].(string)
			if !strings.Contains(label, "Renovación") {
				t.Errorf("Expected Spanish renewal label, got %q", label)
			}
		}
	}
}

func TestCalendarHandlerEventsLocaleOverride(t *testing.T) {
	store := newTestStore()
	seedCalendarData(t, store)

	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/events", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Events(c)
	})

	req := httptest.NewRequest("GET", "/calendar/events?locale=en", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response struct {
		Events []map[string]interface{} `json:"events"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)

	for _, ev := range response.Events {
		if ev["id"] == "doc-1:renewal" {
			label, _ := ev["label"].(string)
			if !strings.Contains(label, "Renewal") {
				t.Errorf("Expected English renewal label, got %q", label)
			}
		}
	}
}

func TestCalendarHandlerStats(t *testing.T) {
	store := newTestStore()
	seedCalendarData(t, store)

	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/stats", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Stats(c)
	})

	req := httptest.NewRequest("GET", "/calendar/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats struct {
		TotalDocuments   int            `json:"total_documents"`
		TotalEvents      int            `json:"total_events"`
		EventsByCategory map[string]int `json:"events_by_category"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if stats.TotalDocuments != 1 {
		t.Errorf("Expected 1 document, got %d", stats.TotalDocuments)
	}
	if stats.TotalEvents != 3 {
		t.Errorf("Expected 3 events, got %d", stats.TotalEvents)
	}

	// Every category present, including empty ones
	if len(stats.EventsByCategory) != 7 {
		t.Errorf("Expected all 7 categories in stats, got %d", len(stats.EventsByCategory))
	}
	if stats.EventsByCategory["renewal"] != 1 {
		t.Errorf("Expected 1 renewal event, got %d", stats.EventsByCategory["renewal"])
	}
	if stats.EventsByCategory["audit"] != 0 {
		t.Errorf("Expected 0 audit events, got %d", stats.EventsByCategory["audit"])
	}
}

func TestCalendarHandlerGrid(t *testing.T) {
	store := newTestStore()
	seedCalendarData(t, store)

	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/grid", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Grid(c)
	})

	req := httptest.NewRequest("GET", "/calendar/grid?year=2027&month=3", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Year           int                                 `json:"year"`
		Month          int                                 `json:"month"`
		LeadingPadding int                                 `json:"leading_padding"`
		Days           map[string][]map[string]interface{} `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if response.Year != 2027 || response.Month != 3 {
		t.Errorf("Expected 2027-03, got %d-%d", response.Year, response.Month)
	}
	// March 2027 starts on a Monday
	if response.LeadingPadding != 0 {
		t.Errorf("Expected leading padding 0, got %d", response.LeadingPadding)
	}
	if len(response.Days["1"]) != 1 {
		t.Errorf("Expected 1 event on day 1, got %d", len(response.Days["1"]))
	}
	if _, ok := response.Days["2"]; ok {
		t.Error("Expected empty days to be absent from the grid")
	}
}

func TestCalendarHandlerGridInvalidMonth(t *testing.T) {
	store := newTestStore()
	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/grid", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Grid(c)
	})

	req := httptest.NewRequest("GET", "/calendar/grid?year=2027&month=13", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCalendarHandlerExport(t *testing.T) {
	store := newTestStore()
	seedCalendarData(t, store)

	handler := newCalendarHandler(store)

	router := gin.New()
	router.GET("/calendar/export.ics", func(c *gin.Context) {
		c.Set("workspace", "ws1")
		handler.Export(c)
	})

	req := httptest.NewRequest("GET", "/calendar/export.ics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/calendar") {
		t.Errorf("Expected text/calendar content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("Expected VCALENDAR envelope")
	}
	if !strings.Contains(body, "UID:doc-1:renewal@example.com") {
		t.Error("Expected event UID with configured domain")
	}

	// Export is deterministic
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest("GET", "/calendar/export.ics", nil))
	if body != w2.Body.String() {
		t.Error("Expected identical bytes on re-export")
	}
}
