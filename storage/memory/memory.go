// Package memory is the in-memory storage backend, used when no database is
// configured and throughout the tests.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
)

// Store holds every collection behind one mutex-guarded map each.
type Store struct {
	documents *DocumentStore
	tasks     *TaskStore
	team      *TeamStore
	drafts    *DraftStore
}

// New creates an in-memory store. maxDocuments caps how many documents are
// kept; 0 means unlimited.
func New(maxDocuments int) *Store {
	if maxDocuments < 0 {
		maxDocuments = 0
	}
	return &Store{
		documents: &DocumentStore{
			documents:    make(map[string]*model.Document),
			maxDocuments: maxDocuments,
		},
		tasks:  &TaskStore{tasks: make(map[string]*model.Task)},
		team:   &TeamStore{members: make(map[string]*model.TeamMember)},
		drafts: &DraftStore{drafts: make(map[string]*model.Draft)},
	}
}

func (s *Store) Documents() storage.DocumentRepo { return s.documents }
func (s *Store) Tasks() storage.TaskRepo         { return s.tasks }
func (s *Store) Team() storage.TeamRepo          { return s.team }
func (s *Store) Drafts() storage.DraftRepo       { return s.drafts }

// DocumentStore is an in-memory document repository.
type DocumentStore struct {
	mu           sync.RWMutex
	documents    map[string]*model.Document
	maxDocuments int // 0 = unlimited
}

func (s *DocumentStore) Save(_ context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.UpdatedAt = time.Now()
	s.documents[doc.ID] = doc

	s.cleanupIfNeeded()
	return nil
}

func (s *DocumentStore) Get(_ context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return doc, nil
}

func (s *DocumentStore) ListByWorkspace(_ context.Context, workspace string) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Document
	for _, doc := range s.documents {
		if doc.Workspace == workspace {
			result = append(result, doc)
		}
	}
	return result, nil
}

func (s *DocumentStore) ListAll(_ context.Context) ([]*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		result = append(result, doc)
	}
	return result, nil
}

func (s *DocumentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

func (s *DocumentStore) UpdateStatus(_ context.Context, id, status, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return storage.ErrNotFound
	}
	doc.Status = status
	doc.ErrorMsg = errMsg
	doc.UpdatedAt = time.Now()
	return nil
}

// cleanupIfNeeded removes the oldest documents when the store exceeds
// maxDocuments. Must be called with the lock held.
func (s *DocumentStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return // Unlimited
	}

	if len(s.documents) <= s.maxDocuments {
		return
	}

	docs := make([]*model.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	removeCount := len(docs) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old document",
			"document_id", docs[i].ID,
			"created_at", docs[i].CreatedAt,
		)
		delete(s.documents, docs[i].ID)
	}
}

// Count returns the number of documents in the store
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// TaskStore is an in-memory task repository.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
}

func (s *TaskStore) Save(_ context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.UpdatedAt = time.Now()
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *TaskStore) Get(_ context.Context, id string) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *TaskStore) ListByWorkspace(_ context.Context, workspace string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.Task
	for _, task := range s.tasks {
		if task.Workspace == workspace {
			result = append(result, *task)
		}
	}
	return result, nil
}

func (s *TaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// TeamStore is an in-memory team member repository.
type TeamStore struct {
	mu      sync.RWMutex
	members map[string]*model.TeamMember
}

func (s *TeamStore) Save(_ context.Context, member *model.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	member.UpdatedAt = time.Now()
	copied := *member
	s.members[member.ID] = &copied
	return nil
}

func (s *TeamStore) Get(_ context.Context, id string) (*model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (s *TeamStore) ListByWorkspace(_ context.Context, workspace string) ([]model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.TeamMember
	for _, member := range s.members {
		if member.Workspace == workspace {
			result = append(result, *member)
		}
	}
	return result, nil
}

func (s *TeamStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.members, id)
	return nil
}

// DraftStore is an in-memory draft repository keyed by document id.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*model.Draft
}

func (s *DraftStore) Save(_ context.Context, draft *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *draft
	s.drafts[draft.DocumentID] = &copied
	return nil
}

func (s *DraftStore) Get(_ context.Context, documentID string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[documentID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *DraftStore) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[documentID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.drafts, documentID)
	return nil
}

func (s *DraftStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, draft := range s.drafts {
		if draft.SavedAt.Before(cutoff) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed, nil
}
