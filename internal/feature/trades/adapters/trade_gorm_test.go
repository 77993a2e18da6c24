package adapters

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cloudtrade/internal/feature/trades/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&TradeModel{}), "failed to migrate table")
	return db
}

func TestNewGormLedger(t *testing.T) {
	db := setupTestDB(t)

	repo := NewGormLedger(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestGormLedger_AppendAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGormLedger(setupTestDB(t))

	require.NoError(t, repo.Append(ctx, trade("tx_old", 1_000)))
	require.NoError(t, repo.Append(ctx, trade("tx_new", 3_000)))
	require.NoError(t, repo.Append(ctx, trade("tx_mid", 2_000)))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"tx_new", "tx_mid", "tx_old"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, trade("tx_new", 3_000), got[0])
}

func TestGormLedger_List_Empty(t *testing.T) {
	t.Parallel()

	got, err := NewGormLedger(setupTestDB(t)).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGormLedger_Append_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGormLedger(setupTestDB(t))

	require.NoError(t, repo.Append(ctx, trade("tx_same", 1)))
	err := repo.Append(ctx, trade("tx_same", 2))

	assert.ErrorIs(t, err, usecase.ErrDuplicateTrade)
}

func TestGormLedger_Append_ClosedDB(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = NewGormLedger(db).Append(context.Background(), trade("tx_x", 1))

	assert.ErrorIs(t, err, usecase.ErrPersistence)
}

func TestGormLedger_SeedIfEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGormLedger(setupTestDB(t))
	seeds := usecase.SeedTrades(newTestClock().Now())

	n, err := repo.SeedIfEmpty(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, len(seeds), n)

	n, err = repo.SeedIfEmpty(ctx, seeds)
	require.NoError(t, err)
	assert.Zero(t, n, "second seed must be a no-op")

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, seeds, got)
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateKey(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicateKey(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplicateKey(gorm.ErrRecordNotFound))
}
