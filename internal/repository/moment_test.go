package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"momentzero/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func seedMoment(t *testing.T, repo MomentRepository, username string, public bool) *models.Moment {
	t.Helper()
	moment := &models.Moment{
		Theme:      "dark-void",
		Atmosphere: "void",
		Typography: "serif",
		Message:    "Hello " + username,
		TargetYear: 2026,
		IsPublic:   public,
	}
	require.NoError(t, repo.CreateWithAccount(context.Background(), &models.Account{Username: username}, moment))
	return moment
}

func TestMomentRepository_CreateAndGet(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	created := seedMoment(t, repo, "alice", true)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.AccountID)

	view, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, "dark-void", view.Theme)
	assert.Equal(t, "Hello alice", view.Message)
	assert.Equal(t, 2026, view.TargetYear)
	assert.True(t, view.IsPublic)

	account, err := repo.GetAccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.AccountID, account.ID)

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMomentRepository_PrivateFlagPersists(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))

	seedMoment(t, repo, "hidden", false)

	view, err := repo.GetByUsername(context.Background(), "hidden")
	require.NoError(t, err)
	assert.False(t, view.IsPublic)
}

func TestMomentRepository_GetMissing(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.GetByUsername(ctx, "ghost")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = repo.GetAccountByUsername(ctx, "ghost")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestMomentRepository_DuplicateUsernameConflicts(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewMomentRepository(db)
	ctx := context.Background()

	seedMoment(t, repo, "alice", true)

	err := repo.CreateWithAccount(ctx, &models.Account{Username: "alice"}, &models.Moment{
		Theme: "x", Atmosphere: "y", Typography: "z", TargetYear: 2030,
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.Equal(t, models.MsgUsernameTaken, err.Error())

	// No partial writes from the failed attempt.
	var accounts, moments int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.Moment{}).Count(&moments).Error)
	assert.Equal(t, int64(1), accounts)
	assert.Equal(t, int64(1), moments)
}

func TestMomentRepository_ConcurrentCreateOneWins(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateWithAccount(ctx, &models.Account{Username: "racer"}, &models.Moment{
				Theme: "t", Atmosphere: "a", Typography: "s", TargetYear: 2027, IsPublic: true,
			})
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case models.IsCode(err, models.CodeConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestMomentRepository_UpsertUpdatesExisting(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	original := seedMoment(t, repo, "alice", true)
	time.Sleep(10 * time.Millisecond)

	view, err := repo.UpsertByUsername(ctx, "alice", models.MomentPatch{
		Message:  strPtr("New wish"),
		IsPublic: boolPtr(false),
	}, models.Moment{})
	require.NoError(t, err)
	assert.Equal(t, original.ID, view.ID)
	assert.Equal(t, "New wish", view.Message)
	assert.False(t, view.IsPublic)
	assert.Equal(t, "dark-void", view.Theme)
	assert.True(t, view.UpdatedAt.After(original.UpdatedAt))

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "New wish", stored.Message)
	assert.False(t, stored.IsPublic)
	assert.Equal(t, "serif", stored.Typography)
}

func TestMomentRepository_UpsertCreatesFromDefaults(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	seedMoment(t, repo, "alice", true)
	require.NoError(t, repo.DeleteByUsername(ctx, "alice"))

	defaults := models.Moment{
		Theme:      models.DefaultTheme,
		Atmosphere: models.DefaultAtmosphere,
		Typography: models.DefaultTypography,
		TargetYear: 2027,
		IsPublic:   true,
	}
	view, err := repo.UpsertByUsername(ctx, "alice", models.MomentPatch{Message: strPtr("Back again")}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "default", view.Theme)
	assert.Equal(t, "void", view.Atmosphere)
	assert.Equal(t, "sans", view.Typography)
	assert.Equal(t, 2027, view.TargetYear)
	assert.Equal(t, "Back again", view.Message)
	assert.Equal(t, "alice", view.Username)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, view.ID, stored.ID)
}

func TestMomentRepository_UpsertUnknownAccount(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))

	_, err := repo.UpsertByUsername(context.Background(), "ghost", models.MomentPatch{Message: strPtr("x")}, models.Moment{})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestMomentRepository_DeleteIsIdempotentAndKeepsAccount(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	seedMoment(t, repo, "alice", true)

	require.NoError(t, repo.DeleteByUsername(ctx, "alice"))
	require.NoError(t, repo.DeleteByUsername(ctx, "alice"))
	require.NoError(t, repo.DeleteByUsername(ctx, "never-existed"))

	_, err := repo.GetByUsername(ctx, "alice")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists, "account must survive moment deletion")
}

func TestMomentRepository_DeleteHonorsCanceledContext(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewMomentRepository(db)

	seedMoment(t, repo, "alice", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repo.DeleteByUsername(ctx, "alice")
	assert.True(t, models.IsCode(err, models.CodeInternal))

	view, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
}

func TestMomentRepository_DeleteAccountCascades(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewMomentRepository(db)
	ctx := context.Background()

	seedMoment(t, repo, "alice", true)
	seedMoment(t, repo, "bob", true)

	require.NoError(t, repo.DeleteAccount(ctx, "alice"))
	require.NoError(t, repo.DeleteAccount(ctx, "alice"))

	exists, err := repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	var moments int64
	require.NoError(t, db.Model(&models.Moment{}).Count(&moments).Error)
	assert.Equal(t, int64(1), moments)

	// The username is free again.
	seedMoment(t, repo, "alice", true)
}

func TestMomentRepository_ListPublic(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))
	ctx := context.Background()

	seedMoment(t, repo, "first", true)
	time.Sleep(5 * time.Millisecond)
	seedMoment(t, repo, "private", false)
	time.Sleep(5 * time.Millisecond)
	seedMoment(t, repo, "second", true)

	total, err := repo.CountPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	views, err := repo.ListPublic(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "second", views[0].Username)
	assert.Equal(t, "first", views[1].Username)

	views, err = repo.ListPublic(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "first", views[0].Username)

	views, err = repo.ListPublic(ctx, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestMomentRepository_ListUsernames(t *testing.T) {
	repo := NewMomentRepository(setupSQLiteDB(t))

	seedMoment(t, repo, "alice", true)
	seedMoment(t, repo, "bob", false)

	names, err := repo.ListUsernames(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}
