// internal/infrastructure/database/postgres/store.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageEntry is one key of the durable session storage
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (StorageEntry) TableName() string {
	return "storage_entries"
}

// Store is a kv.Store over a Postgres table. Change notifications only reach
// session contexts created from the same Store with Link; other processes
// writing the table are not observed.
type Store struct {
	db        *gorm.DB
	namespace string
	hub       *kv.Hub
	origin    string
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB, namespace string) *Store {
	return &Store{
		db:        db,
		namespace: namespace,
		hub:       kv.NewHub(),
		origin:    kv.NewOrigin(),
	}
}

// Link returns another session context over the same table
func (s *Store) Link() *Store {
	return &Store{
		db:        s.db,
		namespace: s.namespace,
		hub:       s.hub,
		origin:    kv.NewOrigin(),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var entry StorageEntry
	err := s.db.WithContext(ctx).Where("key = ?", s.key(key)).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := StorageEntry{
		Key:       s.key(key),
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.hub.Publish(s.origin, kv.ChangeEvent{Key: key, NewValue: value})
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	result := s.db.WithContext(ctx).Where("key = ?", s.key(key)).Delete(&StorageEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove %s: %w", key, result.Error)
	}

	if result.RowsAffected > 0 {
		s.hub.Publish(s.origin, kv.ChangeEvent{Key: key, Deleted: true})
	}
	return nil
}

func (s *Store) OnChange(key string, fn func(kv.ChangeEvent)) func() {
	return s.hub.Subscribe(s.origin, key, fn)
}

// Close is a no-op; the connection pool is owned by Database
func (s *Store) Close() error {
	return nil
}

func (s *Store) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
