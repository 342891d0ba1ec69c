package seed

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"momentzero/internal/cache"
	"momentzero/internal/database"
	"momentzero/internal/models"
	"momentzero/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(database.SQLiteDSN(":memory:")))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(context.Background(), db))
	return db
}

func TestFactory_BuildsValidMoments(t *testing.T) {
	f := NewFactory(Options{Seed: 42})
	f.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	for i := 0; i < 200; i++ {
		account, moment := f.BuildMoment()
		require.NoError(t, validation.ValidateUsername(account.Username), account.Username)
		assert.LessOrEqual(t, utf8.RuneCountInString(moment.Message), validation.MessageMaxLen)
		assert.NoError(t, validation.ValidateStyle("theme", moment.Theme))
		assert.NoError(t, validation.ValidateStyle("atmosphere", moment.Atmosphere))
		assert.NoError(t, validation.ValidateStyle("typography", moment.Typography))
		assert.Equal(t, 2027, moment.TargetYear)
	}
}

func TestFactory_PublicRatio(t *testing.T) {
	allPublic := NewFactory(Options{Seed: 7, PublicRatio: 1})
	for i := 0; i < 50; i++ {
		_, m := allPublic.BuildMoment()
		assert.True(t, m.IsPublic)
	}
}

func TestSeeder_ShowcaseIsIdempotent(t *testing.T) {
	db := setupSQLiteDB(t)
	s := NewSeeder(db, Options{Seed: 1})
	ctx := context.Background()

	created, err := s.Showcase(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(showcase), created)

	created, err = s.Showcase(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.Moment{}).Count(&count).Error)
	assert.Equal(t, int64(len(showcase)), count)
}

func TestSeeder_MomentsAndClearAll(t *testing.T) {
	db := setupSQLiteDB(t)
	s := NewSeeder(db, Options{Seed: 99})
	ctx := context.Background()

	created, err := s.Moments(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, created)

	var moments int64
	require.NoError(t, db.Model(&models.Moment{}).Count(&moments).Error)
	assert.Equal(t, int64(25), moments)

	require.NoError(t, s.ClearAll(ctx))

	var accounts int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.Moment{}).Count(&moments).Error)
	assert.Zero(t, accounts)
	assert.Zero(t, moments)
}

func TestSeeder_ClearAllResetsUsernameIndex(t *testing.T) {
	db := setupSQLiteDB(t)
	mr := miniredis.RunT(t)
	rdb, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	index := cache.NewUsernameIndex(rdb)
	s := NewSeeder(db, Options{Seed: 7}).WithIndex(index)
	ctx := context.Background()

	_, err = s.Showcase(ctx)
	require.NoError(t, err)
	index.Claim(ctx, "aurora_dreamer")

	require.NoError(t, s.ClearAll(ctx))
	assert.False(t, mr.Exists(cache.ClaimedUsernamesKey))
	assert.False(t, index.Claimed(ctx, "aurora_dreamer"))
}
