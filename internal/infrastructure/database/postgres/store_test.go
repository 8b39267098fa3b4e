package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/your-org/storefront-client/internal/infrastructure/kv"
	"github.com/your-org/storefront-client/internal/pkg/logger"
)

// Runs against a real database only when STOREFRONT_TEST_DATABASE_DSN is set.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, NewMigration(db, logger.Discard()).RunAutoMigrations())

	t.Cleanup(func() {
		db.Where("key LIKE ?", "test:%").Delete(&StorageEntry{})
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestStore_Roundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tab1 := NewStore(db, "test")
	tab2 := tab1.Link()

	var seen []kv.ChangeEvent
	defer tab2.OnChange("cart_guest", func(ev kv.ChangeEvent) { seen = append(seen, ev) })()

	require.NoError(t, tab1.Set(ctx, "cart_guest", "[]"))
	require.NoError(t, tab1.Set(ctx, "cart_guest", `[{"id":"x"}]`))

	value, found, err := tab2.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"x"}]`, value)

	require.NoError(t, tab1.Remove(ctx, "cart_guest"))
	_, found, err = tab2.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.False(t, found)

	require.Len(t, seen, 3)
	assert.True(t, seen[2].Deleted)
}

func TestStorageEntry_TableName(t *testing.T) {
	assert.Equal(t, "storage_entries", StorageEntry{}.TableName())
}
