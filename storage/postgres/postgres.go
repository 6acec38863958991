// Package postgres is the database storage backend, backed by GORM.
package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Yeisssons/helios-contract-analysis-sub000/storage"
)

// Store implements storage.Store on top of a Postgres database.
type Store struct {
	db        *gorm.DB
	documents *DocumentRepo
	tasks     *TaskRepo
	team      *TeamRepo
	drafts    *DraftRepo
}

// Open connects to Postgres, runs migrations and returns the store.
// dsn format: "host=localhost user=helios password=... dbname=helios port=5432 sslmode=disable"
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect db failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&documentRecord{}, &taskRecord{}, &memberRecord{}, &draftRecord{}); err != nil {
		return nil, fmt.Errorf("migrate failed: %w", err)
	}

	return &Store{
		db:        db,
		documents: &DocumentRepo{db: db},
		tasks:     &TaskRepo{db: db},
		team:      &TeamRepo{db: db},
		drafts:    &DraftRepo{db: db},
	}, nil
}

func (s *Store) Documents() storage.DocumentRepo { return s.documents }
func (s *Store) Tasks() storage.TaskRepo         { return s.tasks }
func (s *Store) Team() storage.TeamRepo          { return s.team }
func (s *Store) Drafts() storage.DraftRepo       { return s.drafts }

// translate maps gorm's not-found error onto the storage sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	return err
}
