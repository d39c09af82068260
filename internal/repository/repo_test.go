package repository

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapbot/chapbot/internal/chapters"
	"github.com/chapbot/chapbot/internal/config"
)

func setupRepo(t *testing.T) *Repo {
	t.Helper()

	db, err := OpenDB(&config.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepo(db)
}

func TestSettings_UpsertDefaults(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s, err := repo.UpsertSettings(ctx, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "guild-1", s.GuildID)
	assert.Equal(t, 10, s.PageSize)
	assert.False(t, s.ReplyEphemeral)
	assert.True(t, s.LinkTimestamps)
}

func TestSettings_UpdateRoundtrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	s, err := repo.UpsertSettings(ctx, "guild-1")
	require.NoError(t, err)

	s.PageSize = 5
	s.ReplyEphemeral = true
	s.LinkTimestamps = false
	require.NoError(t, repo.UpdateSettings(ctx, s))

	got, err := repo.GetSettings(ctx, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.PageSize)
	assert.True(t, got.ReplyEphemeral)
	assert.False(t, got.LinkTimestamps)
}

func TestSaveVideo_Roundtrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	v := &Video{
		ID:          "dQw4w9WgXcQ",
		Source:      "youtube",
		Title:       "A Mix",
		Uploader:    "Someone",
		Duration:    300,
		Description: "0:00 Intro\n1:30 Middle",
		FetchedAt:   time.Now(),
	}
	chs := []chapters.Chapter{{Start: 0, Title: "Intro"}, {Start: 90, Title: "Middle"}}
	require.NoError(t, repo.SaveVideo(ctx, v, chs))

	got, err := repo.GetVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.Title, got.Title)
	assert.Equal(t, v.Description, got.Description)

	gotChs, err := repo.GetChapters(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, chs, gotChs)
}

func TestSaveVideo_ReplacesChapters(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	v := &Video{ID: "vid", Source: "youtube", Title: "t", FetchedAt: time.Now()}
	require.NoError(t, repo.SaveVideo(ctx, v, []chapters.Chapter{{Start: 0, Title: "Old"}}))
	require.NoError(t, repo.SaveVideo(ctx, v, []chapters.Chapter{{Start: 0, Title: "New"}, {Start: 60, Title: "Two"}}))

	chs, err := repo.GetChapters(ctx, "vid")
	require.NoError(t, err)
	require.Len(t, chs, 2)
	assert.Equal(t, "New", chs[0].Title)
}

func TestPruneBefore(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	old := &Video{ID: "old", Source: "youtube", Title: "old", FetchedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &Video{ID: "fresh", Source: "youtube", Title: "fresh", FetchedAt: time.Now()}
	require.NoError(t, repo.SaveVideo(ctx, old, nil))
	require.NoError(t, repo.SaveVideo(ctx, fresh, nil))

	n, err := repo.PruneBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.GetVideo(ctx, "old")
	assert.Error(t, err)
	_, err = repo.GetVideo(ctx, "fresh")
	assert.NoError(t, err)
}

func TestFavorites(t *testing.T) {
	repo := setupRepo(t)
	favs := NewFavoritesService(repo)
	ctx := context.Background()

	require.NoError(t, favs.Create(ctx, "g", "author", " mix ", " https://youtu.be/dQw4w9WgXcQ "))

	f, err := favs.Use(ctx, "g", "mix")
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", f.Query)

	list, err := favs.List(ctx, "g")
	require.NoError(t, err)
	require.Len(t, list, 1)

	n, err := favs.Remove(ctx, "g", "mix")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
