package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/calendar"
	"github.com/Yeisssons/helios-contract-analysis-sub000/config"
	"github.com/Yeisssons/helios-contract-analysis-sub000/middleware"
	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
	"github.com/gin-gonic/gin"
)

// CalendarHandler serves derived events, statistics, the month grid and the
// iCalendar export for a workspace.
type CalendarHandler struct {
	docs   storage.DocumentRepo
	tasks  storage.TaskRepo
	config *config.CalendarConfig
}

func NewCalendarHandler(store storage.Store, cfg *config.CalendarConfig) *CalendarHandler {
	return &CalendarHandler{
		docs:   store.Documents(),
		tasks:  store.Tasks(),
		config: cfg,
	}
}

// deriveWorkspaceEvents loads documents and tasks and derives the event list.
func (h *CalendarHandler) deriveWorkspaceEvents(c *gin.Context) ([]*model.Document, []calendar.Event, bool) {
	workspace := middleware.GetWorkspace(c)

	docs, err := h.docs.ListByWorkspace(c.Request.Context(), workspace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load documents"})
		return nil, nil, false
	}
	tasks, err := h.tasks.ListByWorkspace(c.Request.Context(), workspace)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tasks"})
		return nil, nil, false
	}

	return docs, calendar.DeriveEvents(docs, tasks), true
}

func (h *CalendarHandler) locale(c *gin.Context) string {
	if locale := c.Query("locale"); locale != "" {
		return locale
	}
	return h.config.DefaultLocale
}

func eventJSON(ev calendar.Event, locale string, now time.Time) gin.H {
	return gin.H{
		"id":          ev.ID,
		"document_id": ev.DocumentID,
		"category":    ev.Category,
		"label":       ev.Category.Label(locale),
		"date":        ev.Date.Format("2006-01-02"),
		"title":       ev.Title,
		"description": ev.Description,
		"urgency":     calendar.EventStatus(ev, now),
	}
}

// Events returns all events for the workspace, sorted by date.
func (h *CalendarHandler) Events(c *gin.Context) {
	_, events, ok := h.deriveWorkspaceEvents(c)
	if !ok {
		return
	}

	locale := h.locale(c)
	now := time.Now()
	items := make([]gin.H, len(events))
	for i, ev := range events {
		items[i] = eventJSON(ev, locale, now)
	}

	c.JSON(http.StatusOK, gin.H{"events": items})
}

// Stats returns document and event counts, zero-filled over every urgency
// bucket and category.
func (h *CalendarHandler) Stats(c *gin.Context) {
	docs, events, ok := h.deriveWorkspaceEvents(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, calendar.ComputeStats(docs, events, time.Now()))
}

// Grid returns the month view: events bucketed by day of month plus the
// number of leading blank cells for a Monday-first week layout.
func (h *CalendarHandler) Grid(c *gin.Context) {
	_, events, ok := h.deriveWorkspaceEvents(c)
	if !ok {
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
			return
		}
		month = time.Month(parsed)
	}

	locale := h.locale(c)
	buckets := calendar.BucketByDay(events, year, month)
	days := make(map[int][]gin.H, len(buckets))
	for day, dayEvents := range buckets {
		items := make([]gin.H, len(dayEvents))
		for i, ev := range dayEvents {
			items[i] = eventJSON(ev, locale, now)
		}
		days[day] = items
	}

	c.JSON(http.StatusOK, gin.H{
		"year":            year,
		"month":           int(month),
		"leading_padding": calendar.LeadingPadding(year, month),
		"days":            days,
	})
}

// Export serves the workspace calendar as an iCalendar file. The output is
// deterministic, so re-exports of unchanged data are byte-identical.
func (h *CalendarHandler) Export(c *gin.Context) {
	_, events, ok := h.deriveWorkspaceEvents(c)
	if !ok {
		return
	}

	ics := calendar.ExportICS(events, h.config.OrgDomain, h.locale(c))

	c.Header("Content-Disposition", `attachment; filename="contract-calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
