// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations creates or updates the storage table
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	if err := m.db.AutoMigrate(&StorageEntry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", StorageEntry{}.TableName(), err)
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}
