package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/model"
)

func TestMemStoreMissLooksLikePostgres(t *testing.T) {
	store := NewMemStore()

	_, err := store.GetMediaByID(1)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.GetScreenByPublicID("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.GetScreenByPairingCode("ABC123")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = store.GetSetting("nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemStoreReorderMedia(t *testing.T) {
	store := NewMemStore()

	a, err := store.CreateMedia("a.jpg", "a.jpg", model.MediaKindImage, 4000, 0, true)
	require.NoError(t, err)
	b, err := store.CreateMedia("b.jpg", "b.jpg", model.MediaKindImage, 4000, 1, true)
	require.NoError(t, err)
	c, err := store.CreateMedia("c.jpg", "c.jpg", model.MediaKindImage, 4000, 2, true)
	require.NoError(t, err)

	require.NoError(t, store.ReorderMedia([]int{c.ID, a.ID, b.ID}))

	items, err := store.ListActiveGlobalMedia()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, c.ID, items[0].ID)
	assert.Equal(t, a.ID, items[1].ID)
	assert.Equal(t, b.ID, items[2].ID)
}

func TestMemStoreListScreenMediaIncludesInactive(t *testing.T) {
	store := NewMemStore()

	screen, err := store.CreateScreen("lobby", nil, nil, "pub", "ABC123")
	require.NoError(t, err)
	item, err := store.CreateMedia("a.jpg", "a.jpg", model.MediaKindImage, 4000, 0, false)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceScreenMedia(screen.ID, []int{item.ID}))
	require.NoError(t, store.SetMediaActive(item.ID, false))

	// the association survives deactivation; callers filter on Active
	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.False(t, assigned[0].Active)
}

func TestMemStoreDeleteScreenCascades(t *testing.T) {
	store := NewMemStore()

	screen, err := store.CreateScreen("lobby", nil, nil, "pub", "ABC123")
	require.NoError(t, err)
	item, err := store.CreateMedia("a.jpg", "a.jpg", model.MediaKindImage, 4000, 0, false)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceScreenMedia(screen.ID, []int{item.ID}))
	_, err = store.AddScreenSponsor(screen.ID, "logo.png")
	require.NoError(t, err)

	require.NoError(t, store.DeleteScreen(screen.ID))

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)

	sponsors, err := store.ListScreenSponsors(screen.ID)
	require.NoError(t, err)
	assert.Empty(t, sponsors)
}

func TestMemStoreUpdateScreenPartial(t *testing.T) {
	store := NewMemStore()

	screen, err := store.CreateScreen("lobby", nil, nil, "pub", "ABC123")
	require.NoError(t, err)

	mode := model.DisplayModeRedirect
	url := "https://example.org"
	require.NoError(t, store.UpdateScreen(screen.ID, UpdateScreenParams{
		DisplayMode: &mode,
		RedirectURL: &url,
	}))

	got, err := store.GetScreenByID(screen.ID)
	require.NoError(t, err)
	assert.Equal(t, "lobby", got.Name, "untouched fields keep their values")
	assert.Equal(t, model.DisplayModeRedirect, got.DisplayMode)
	require.NotNil(t, got.RedirectURL)
	assert.Equal(t, url, *got.RedirectURL)
}
