package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hocus-focus/challenge-api/pkg/challenge_api/models"
	"github.com/hocus-focus/challenge-api/pkg/challenge_api/repositories"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Challenge{}))
	return db
}

func TestChallengeRepository_SaveAndGet(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	ch := &models.Challenge{Clue: "find the cat", Goals: models.GoalList{20, 40}}
	require.NoError(t, repo.Save(context.Background(), ch))
	assert.Positive(t, ch.ID)
	assert.False(t, ch.CreatedAt.IsZero())

	got, err := repo.GetChallengeByID(context.Background(), ch.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "find the cat", got.Clue)
	assert.Equal(t, models.GoalList{20, 40}, got.Goals)
}

func TestChallengeRepository_GetMissing(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	got, err := repo.GetChallengeByID(context.Background(), 999999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestChallengeRepository_UniqueIncreasingIDs(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	a := &models.Challenge{Clue: "a"}
	b := &models.Challenge{Clue: "b"}
	require.NoError(t, repo.Save(context.Background(), a))
	require.NoError(t, repo.Save(context.Background(), b))
	assert.Greater(t, b.ID, a.ID)
}

func TestChallengeRepository_ImageBytesSurviveStorage(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	raw := []byte{0x00, 0x01, 0xff, 0xfe, 0x7f}
	ch := &models.Challenge{Clue: "img"}
	ch.SetImage("x.gif", "image/gif", raw)
	require.NoError(t, repo.Save(context.Background(), ch))

	got, err := repo.GetChallengeByID(context.Background(), ch.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, raw, got.ImageData)
	require.NotNil(t, got.ImageSize)
	assert.Equal(t, len(raw), *got.ImageSize)
}

func TestChallengeRepository_ListNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	for _, clue := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Save(context.Background(), &models.Challenge{Clue: clue}))
	}

	challenges, pagination, err := repo.GetChallenges(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, challenges, 2)
	assert.Equal(t, "third", challenges[0].Clue)
	assert.Equal(t, "second", challenges[1].Clue)
	assert.Equal(t, 3, pagination.TotalRecords)
	assert.Equal(t, 2, pagination.TotalPages)
	require.NotNil(t, pagination.Next)
	assert.Equal(t, 2, *pagination.Next)
	assert.Nil(t, pagination.Previous)
}

func TestChallengeRepository_UpdateRefreshesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	ch := &models.Challenge{Clue: "before"}
	require.NoError(t, repo.Save(context.Background(), ch))
	created := ch.CreatedAt

	time.Sleep(10 * time.Millisecond)
	ch.Clue = "after"
	require.NoError(t, repo.UpdateChallenge(context.Background(), ch))

	got, err := repo.GetChallengeByID(context.Background(), ch.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Clue)
	assert.Equal(t, created.Unix(), got.CreatedAt.Unix())
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestChallengeRepository_Delete(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)

	ch := &models.Challenge{Clue: "temp"}
	require.NoError(t, repo.Save(context.Background(), ch))
	require.NoError(t, repo.DeleteChallenge(context.Background(), ch.ID))

	got, err := repo.GetChallengeByID(context.Background(), ch.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestChallengeRepository_PurgeTestChallenges(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewChallengeRepository(db)
	ctx := context.Background()

	old := time.Now().Add(-30 * 24 * time.Hour)
	stale := &models.Challenge{Clue: "stale", IsTest: true, CreatedAt: old}
	keeper := &models.Challenge{Clue: "keeper", IsTest: true, IsPermanent: true, CreatedAt: old}
	fresh := &models.Challenge{Clue: "fresh", IsTest: true}
	live := &models.Challenge{Clue: "live"}
	for _, ch := range []*models.Challenge{stale, keeper, fresh, live} {
		require.NoError(t, repo.Save(ctx, ch))
	}

	removed, err := repo.DeleteTestChallengesBefore(ctx, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	total, err := repo.CountChallenges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
