package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Yeisssons/helios-contract-analysis-sub000/model"
	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
)

// DocumentRepo persists documents in the documents table.
type DocumentRepo struct {
	db *gorm.DB
}

func (r *DocumentRepo) Save(ctx context.Context, doc *model.Document) error {
	doc.UpdatedAt = time.Now()
	record := toDocumentRecord(doc)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record).Error
}

func (r *DocumentRepo) Get(ctx context.Context, id string) (*model.Document, error) {
	var record documentRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return record.toModel(), nil
}

func (r *DocumentRepo) ListByWorkspace(ctx context.Context, workspace string) ([]*model.Document, error) {
	var records []documentRecord
	if err := r.db.WithContext(ctx).Where("workspace = ?", workspace).Find(&records).Error; err != nil {
		return nil, err
	}
	docs := make([]*model.Document, len(records))
	for i := range records {
		docs[i] = records[i].toModel()
	}
	return docs, nil
}

func (r *DocumentRepo) ListAll(ctx context.Context) ([]*model.Document, error) {
	var records []documentRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	docs := make([]*model.Document, len(records))
	for i := range records {
		docs[i] = records[i].toModel()
	}
	return docs, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&documentRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status, errMsg string) error {
	result := r.db.WithContext(ctx).
		Model(&documentRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "error_msg": errMsg, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// TaskRepo persists tasks in the tasks table.
type TaskRepo struct {
	db *gorm.DB
}

func (r *TaskRepo) Save(ctx context.Context, task *model.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(toTaskRecord(task)).Error
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	var record taskRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	task := record.toModel()
	return &task, nil
}

func (r *TaskRepo) ListByWorkspace(ctx context.Context, workspace string) ([]model.Task, error) {
	var records []taskRecord
	if err := r.db.WithContext(ctx).Where("workspace = ?", workspace).Find(&records).Error; err != nil {
		return nil, err
	}
	tasks := make([]model.Task, len(records))
	for i := range records {
		tasks[i] = records[i].toModel()
	}
	return tasks, nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&taskRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// TeamRepo persists team members.
type TeamRepo struct {
	db *gorm.DB
}

func (r *TeamRepo) Save(ctx context.Context, member *model.TeamMember) error {
	member.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(toMemberRecord(member)).Error
}

func (r *TeamRepo) Get(ctx context.Context, id string) (*model.TeamMember, error) {
	var record memberRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	member := record.toModel()
	return &member, nil
}

func (r *TeamRepo) ListByWorkspace(ctx context.Context, workspace string) ([]model.TeamMember, error) {
	var records []memberRecord
	if err := r.db.WithContext(ctx).Where("workspace = ?", workspace).Find(&records).Error; err != nil {
		return nil, err
	}
	members := make([]model.TeamMember, len(records))
	for i := range records {
		members[i] = records[i].toModel()
	}
	return members, nil
}

func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&memberRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DraftRepo persists drafts, one per document.
type DraftRepo struct {
	db *gorm.DB
}

func (r *DraftRepo) Save(ctx context.Context, draft *model.Draft) error {
	record := &draftRecord{
		DocumentID: draft.DocumentID,
		Payload:    draft.Payload,
		SavedAt:    draft.SavedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(record).Error
}

func (r *DraftRepo) Get(ctx context.Context, documentID string) (*model.Draft, error) {
	var record draftRecord
	if err := r.db.WithContext(ctx).Where("document_id = ?", documentID).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &model.Draft{
		DocumentID: record.DocumentID,
		Payload:    record.Payload,
		SavedAt:    record.SavedAt,
	}, nil
}

func (r *DraftRepo) Delete(ctx context.Context, documentID string) error {
	result := r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&draftRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *DraftRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).Where("saved_at < ?", cutoff).Delete(&draftRecord{})
	return int(result.RowsAffected), result.Error
}
