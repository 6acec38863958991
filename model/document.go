package model

import (
	"strings"
	"time"
)

// Document represents one uploaded contract document together with the
// structured data the extraction service produced for it.
type Document struct {
	ID          string `json:"id"`
	Workspace   string `json:"workspace"`
	FileName    string `json:"file_name"`
	StoragePath string `json:"storage_path,omitempty"`

	ContractType string `json:"contract_type,omitempty"`
	Sector       string `json:"sector,omitempty"`

	EffectiveDate    *time.Time `json:"effective_date,omitempty"`
	RenewalDate      *time.Time `json:"renewal_date,omitempty"`
	NoticePeriodDays int        `json:"notice_period_days,omitempty"`

	RiskScore      *float64          `json:"risk_score,omitempty"`
	ExtractedData  map[string]string `json:"extracted_data,omitempty"`
	SourceQuotes   map[string]string `json:"source_quotes,omitempty"`
	FlaggedClauses []FlaggedClause   `json:"flagged_clauses,omitempty"`
	Alerts         []string          `json:"alerts,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Tags           []string          `json:"tags,omitempty"`

	Status   string `json:"status"` // pending, processing, completed, failed
	TaskID   string `json:"task_id,omitempty"`
	ErrorMsg string `json:"error_msg,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FlaggedClause is a clause the extraction service marked as abusive or risky.
type FlaggedClause struct {
	Clause   string `json:"clause"`
	Reason   string `json:"reason,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Document status constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// DefaultNoticePeriodDays applies when a document carries no notice period.
const DefaultNoticePeriodDays = 30

// NoticePeriod returns the document's notice period in days, falling back to
// the default when the field was never set.
func (d *Document) NoticePeriod() int {
	if d.NoticePeriodDays <= 0 {
		return DefaultNoticePeriodDays
	}
	return d.NoticePeriodDays
}

// IsSpecified reports whether an extracted value carries real content.
// An absent value, an empty string and the literal "not specified" marker
// (in either supported language) all mean the extractor found nothing.
func IsSpecified(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "not specified", "no especificado", "no especificada":
		return false
	}
	return true
}
