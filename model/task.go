package model

import "time"

// Task is a user-authored calendar entry, persisted independently from
// documents and surfaced on the calendar alongside derived events.
type Task struct {
	ID          string    `json:"id"`
	Workspace   string    `json:"workspace"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category,omitempty"` // calendar category, defaults to "other"
	AssigneeID  string    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMember is a collaboration record with no derived computation beyond
// the status label mapping.
type TeamMember struct {
	ID        string    `json:"id"`
	Workspace string    `json:"workspace"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"` // active, invited, inactive
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team member status constants
const (
	MemberActive   = "active"
	MemberInvited  = "invited"
	MemberInactive = "inactive"
)

var memberStatusLabels = map[string]string{
	MemberActive:   "Active",
	MemberInvited:  "Invitation pending",
	MemberInactive: "Inactive",
}

// StatusLabel returns the display label for the member's status.
func (m *TeamMember) StatusLabel() string {
	if label, ok := memberStatusLabels[m.Status]; ok {
		return label
	}
	return m.Status
}

// DraftTTL is how long a saved draft stays retrievable.
const DraftTTL = 24 * time.Hour

// Draft holds unsaved document edits, kept server-side so a user can resume
// an editing session. Drafts older than DraftTTL are treated as gone.
type Draft struct {
	DocumentID string    `json:"document_id"`
	Payload    []byte    `json:"payload"`
	SavedAt    time.Time `json:"saved_at"`
}

// Stale reports whether the draft is older than the TTL at the given time.
func (d *Draft) Stale(now time.Time) bool {
	return now.Sub(d.SavedAt) > DraftTTL
}
