package postgres

import (
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// documentRecord maps model.Document onto the documents table. Maps and
// slices are stored as JSON columns.
type documentRecord struct {
	ID          string `gorm:"column:id;primaryKey;type:uuid"`
	Workspace   string `gorm:"column:workspace;type:varchar(100);index;not null"`
	FileName    string `gorm:"column:file_name;type:varchar(255);not null"`
	StoragePath string `gorm:"column:storage_path;type:varchar(512)"`

	ContractType string `gorm:"column:contract_type;type:varchar(50);index"`
	Sector       string `gorm:"column:sector;type:varchar(50);index"`

	EffectiveDate    *time.Time `gorm:"column:effective_date;index"`
	RenewalDate      *time.Time `gorm:"column:renewal_date;index"`
	NoticePeriodDays int        `gorm:"column:notice_period_days;type:smallint"`

	RiskScore      *float64              `gorm:"column:risk_score;type:decimal(4,2)"`
	ExtractedData  map[string]string     `gorm:"column:extracted_data;serializer:json"`
	SourceQuotes   map[string]string     `gorm:"column:source_quotes;serializer:json"`
	FlaggedClauses []model.FlaggedClause `gorm:"column:flagged_clauses;serializer:json"`
	Alerts         []string              `gorm:"column:alerts;serializer:json"`
	Summary        string                `gorm:"column:summary;type:text"`
	Tags           []string              `gorm:"column:tags;serializer:json"`

	Status   string `gorm:"column:status;type:varchar(20);index"`
	TaskID   string `gorm:"column:task_id;type:varchar(100)"`
	ErrorMsg string `gorm:"column:error_msg;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

func toDocumentRecord(doc *model.Document) *documentRecord {
	return &documentRecord{
		ID:               doc.ID,
		Workspace:        doc.Workspace,
		FileName:         doc.FileName,
		StoragePath:      doc.StoragePath,
		ContractType:     doc.ContractType,
		Sector:           doc.Sector,
		EffectiveDate:    doc.EffectiveDate,
		RenewalDate:      doc.RenewalDate,
		NoticePeriodDays: doc.NoticePeriodDays,
		RiskScore:        doc.RiskScore,
		ExtractedData:    doc.ExtractedData,
		SourceQuotes:     doc.SourceQuotes,
		FlaggedClauses:   doc.FlaggedClauses,
		Alerts:           doc.Alerts,
		Summary:          doc.Summary,
		Tags:             doc.Tags,
		Status:           doc.Status,
		TaskID:           doc.TaskID,
		ErrorMsg:         doc.ErrorMsg,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

func (r *documentRecord) toModel() *model.Document {
	return &model.Document{
		ID:               r.ID,
		Workspace:        r.Workspace,
		FileName:         r.FileName,
		StoragePath:      r.StoragePath,
		ContractType:     r.ContractType,
		Sector:           r.Sector,
		EffectiveDate:    r.EffectiveDate,
		RenewalDate:      r.RenewalDate,
		NoticePeriodDays: r.NoticePeriodDays,
		RiskScore:        r.RiskScore,
		ExtractedData:    r.ExtractedData,
		SourceQuotes:     r.SourceQuotes,
		FlaggedClauses:   r.FlaggedClauses,
		Alerts:           r.Alerts,
		Summary:          r.Summary,
		Tags:             r.Tags,
		Status:           r.Status,
		TaskID:           r.TaskID,
		ErrorMsg:         r.ErrorMsg,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type taskRecord struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	Workspace   string    `gorm:"column:workspace;type:varchar(100);index;not null"`
	Title       string    `gorm:"column:title;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	Date        time.Time `gorm:"column:date;index"`
	Category    string    `gorm:"column:category;type:varchar(20)"`
	AssigneeID  string    `gorm:"column:assignee_id;type:varchar(100)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (taskRecord) TableName() string {
	return "tasks"
}

func toTaskRecord(task *model.Task) *taskRecord {
	return &taskRecord{
		ID:          task.ID,
		Workspace:   task.Workspace,
		Title:       task.Title,
		Description: task.Description,
		Date:        task.Date,
		Category:    task.Category,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func (r *taskRecord) toModel() model.Task {
	return model.Task{
		ID:          r.ID,
		Workspace:   r.Workspace,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Category:    r.Category,
		AssigneeID:  r.AssigneeID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type memberRecord struct {
	ID        string `gorm:"column:id;primaryKey;type:uuid"`
	Workspace string `gorm:"column:workspace;type:varchar(100);index;not null"`
	Email     string `gorm:"column:email;type:varchar(255);index;not null"`
	Name      string `gorm:"column:name;type:varchar(255)"`
	Role      string `gorm:"column:role;type:varchar(50)"`
	Status    string `gorm:"column:status;type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (memberRecord) TableName() string {
	return "team_members"
}

func toMemberRecord(member *model.TeamMember) *memberRecord {
	return &memberRecord{
		ID:        member.ID,
		Workspace: member.Workspace,
		Email:     member.Email,
		Name:      member.Name,
		Role:      member.Role,
		Status:    member.Status,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

func (r *memberRecord) toModel() model.TeamMember {
	return model.TeamMember{
		ID:        r.ID,
		Workspace: r.Workspace,
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type draftRecord struct {
	DocumentID string    `gorm:"column:document_id;primaryKey;type:uuid"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	SavedAt    time.Time `gorm:"column:saved_at;index"`
}

func (draftRecord) TableName() string {
	return "drafts"
}
