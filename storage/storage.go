// Package storage defines the persistence interfaces for documents, tasks,
// team members and drafts, with in-memory and Postgres implementations in
// the subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// DocumentRepo persists contract documents.
type DocumentRepo interface {
	Save(ctx context.Context, doc *model.Document) error
	Get(ctx context.Context, id string) (*model.Document, error)
	ListByWorkspace(ctx context.Context, workspace string) ([]*model.Document, error)
	ListAll(ctx context.Context) ([]*model.Document, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, status, errMsg string) error
}

// TaskRepo persists user-authored calendar tasks.
type TaskRepo interface {
	Save(ctx context.Context, task *model.Task) error
	Get(ctx context.Context, id string) (*model.Task, error)
	ListByWorkspace(ctx context.Context, workspace string) ([]model.Task, error)
	Delete(ctx context.Context, id string) error
}

// TeamRepo persists team members.
type TeamRepo interface {
	Save(ctx context.Context, member *model.TeamMember) error
	Get(ctx context.Context, id string) (*model.TeamMember, error)
	ListByWorkspace(ctx context.Context, workspace string) ([]model.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// DraftRepo keeps per-document draft edits. One draft per document.
type DraftRepo interface {
	Save(ctx context.Context, draft *model.Draft) error
	Get(ctx context.Context, documentID string) (*model.Draft, error)
	Delete(ctx context.Context, documentID string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Store bundles all repositories behind one backend.
type Store interface {
	Documents() DocumentRepo
	Tasks() TaskRepo
	Team() TeamRepo
	Drafts() DraftRepo
}
