// Package calendar derives calendar events from contract documents and user
// tasks, classifies their urgency and renders them for the calendar views.
package calendar

import "regexp"

// Category is the event type shown on the calendar.
type Category string

const (
	CategoryRenewal  Category = "renewal"
	CategoryPayment  Category = "payment"
	CategoryAudit    Category = "audit"
	CategoryReview   Category = "review"
	CategoryDeadline Category = "deadline"
	CategoryExpiry   Category = "expiry"
	CategoryOther    Category = "other"
)

// Categories lists every category in a fixed order. Aggregations iterate
// this slice so zero-count categories are never omitted.
var Categories = []Category{
	CategoryRenewal,
	CategoryPayment,
	CategoryAudit,
	CategoryReview,
	CategoryDeadline,
	CategoryExpiry,
	CategoryOther,
}

// categoryRule pairs a category with the pattern that claims a field name.
// The slice order is the matching priority: the first pattern that matches
// wins, so a field called "renewal payment date" is a renewal event.
// Patterns are case-insensitive substrings covering English and Spanish.
type categoryRule struct {
	category Category
	pattern  *regexp.Regexp
}

var categoryRules = []categoryRule{
	{CategoryRenewal, regexp.MustCompile(`(?i)renew|renov|prorrog|prórrog`)},
	{CategoryPayment, regexp.MustCompile(`(?i)payment|pago|invoice|factura|cuota`)},
	{CategoryAudit, regexp.MustCompile(`(?i)audit`)},
	{CategoryReview, regexp.MustCompile(`(?i)review|revisi`)},
	{CategoryDeadline, regexp.MustCompile(`(?i)deadline|plazo|entrega`)},
	{CategoryExpiry, regexp.MustCompile(`(?i)expir|venc|caduc|t[eé]rmino`)},
}

// ClassifyField maps an extracted field name to a category by testing the
// rule table in priority order. Field names that match nothing are "other".
func ClassifyField(fieldName string) Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(fieldName) {
			return rule.category
		}
	}
	return CategoryOther
}

// ParseCategory normalizes a user-supplied category string, falling back to
// CategoryOther for anything outside the fixed enumeration.
func ParseCategory(s string) Category {
	c := Category(s)
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

type categoryLabel struct {
	emoji string
	en    string
	es    string
}

var categoryLabels = map[Category]categoryLabel{
	CategoryRenewal:  {"🔄", "Renewal", "Renovación"},
	CategoryPayment:  {"💰", "Payment", "Pago"},
	CategoryAudit:    {"🔍", "Audit", "Auditoría"},
	CategoryReview:   {"📋", "Review", "Revisión"},
	CategoryDeadline: {"⏰", "Deadline", "Plazo"},
	CategoryExpiry:   {"⚠️", "Expiry", "Vencimiento"},
	CategoryOther:    {"📌", "Event", "Evento"},
}

// Label returns the emoji-prefixed display label for the category in the
// given locale ("en" or "es"; anything else falls back to English).
func (c Category) Label(locale string) string {
	label, ok := categoryLabels[c]
	if !ok {
		label = categoryLabels[CategoryOther]
	}
	text := label.en
	if locale == "es" {
		text = label.es
	}
	return label.emoji + " " + text
}
