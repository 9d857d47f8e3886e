package localstore

// Package localstore persists session entries in a sqlite file, for
// single-node and development deployments where Redis is overkill. The
// file survives process restarts, which is all the session contract asks.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hmaulana/maintenance-management/internal/session"
)

const defaultPath = "maintenance-sessions.db"

type Entry struct {
	Key       string    `gorm:"primaryKey;column:entry_key"`
	Value     string    `gorm:"column:entry_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string { return "session_entries" }

type Store struct {
	db *gorm.DB
}

// Open creates or opens the sqlite-backed store at path. An empty path
// falls back to a file next to the process.
func Open(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection; tests pass sqlite ":memory:".
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", session.ErrNotFound
		}
		return "", fmt.Errorf("session store get %s: %w", key, err)
	}
	return entry.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			UpdateAll: true,
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("session store set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("session store remove %s: %w", key, err)
	}
	return nil
}
