package content

import (
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/model"
)

// fakeStorage records deletions and optionally fails them.
type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) SaveFile(_ *multipart.FileHeader, filename string) (string, error) {
	return filename, nil
}

func (f *fakeStorage) DeleteFile(ref string) error {
	f.deleted = append(f.deleted, ref)
	return f.deleteErr
}

// staleListStore serves a fixed expired-item snapshot, standing in for
// a pass whose listing raced another pass's deletes.
type staleListStore struct {
	db.Store
	expired []model.MediaItem
}

func (s *staleListStore) ListExpiredMedia(time.Time) ([]model.MediaItem, error) {
	return s.expired, nil
}

func expireAt(t *testing.T, store *db.MemStore, id int, at time.Time, autoDelete bool) {
	t.Helper()
	require.NoError(t, store.UpdateMediaExpiry(id, &at, autoDelete))
}

func TestReapExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("retires and deletes by flag", func(t *testing.T) {
		store := db.NewMemStore()
		assets := &fakeStorage{}
		lc := NewLifecycle(store, assets)

		retireMe, err := store.CreateMedia("retire.jpg", "retire.jpg", model.MediaKindImage, 4000, 0, true)
		require.NoError(t, err)
		deleteMe, err := store.CreateMedia("delete.jpg", "delete.jpg", model.MediaKindImage, 4000, 1, true)
		require.NoError(t, err)
		keepMe, err := store.CreateMedia("keep.jpg", "keep.jpg", model.MediaKindImage, 4000, 2, true)
		require.NoError(t, err)

		expireAt(t, store, retireMe.ID, past, false)
		expireAt(t, store, deleteMe.ID, past, true)
		expireAt(t, store, keepMe.ID, future, false)

		result, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, ReapResult{Retired: 1, Deleted: 1}, result)
		assert.Equal(t, []string{"delete.jpg"}, assets.deleted)

		got, err := store.GetMediaByID(retireMe.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)

		_, err = store.GetMediaByID(deleteMe.ID)
		assert.Error(t, err)

		got, err = store.GetMediaByID(keepMe.ID)
		require.NoError(t, err)
		assert.True(t, got.Active)
	})

	t.Run("second pass with no mutation is a no-op", func(t *testing.T) {
		store := db.NewMemStore()
		lc := NewLifecycle(store, &fakeStorage{})

		retireMe, err := store.CreateMedia("retire.jpg", "retire.jpg", model.MediaKindImage, 4000, 0, true)
		require.NoError(t, err)
		deleteMe, err := store.CreateMedia("delete.jpg", "delete.jpg", model.MediaKindImage, 4000, 1, true)
		require.NoError(t, err)
		expireAt(t, store, retireMe.ID, past, false)
		expireAt(t, store, deleteMe.ID, past, true)

		first, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, ReapResult{Retired: 1, Deleted: 1}, first)

		second, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, ReapResult{}, second)
	})

	t.Run("boundary expire_at equal to now is expired", func(t *testing.T) {
		store := db.NewMemStore()
		lc := NewLifecycle(store, &fakeStorage{})

		item, err := store.CreateMedia("edge.jpg", "edge.jpg", model.MediaKindImage, 4000, 0, true)
		require.NoError(t, err)
		expireAt(t, store, item.ID, now, false)

		result, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, ReapResult{Retired: 1}, result)
	})

	t.Run("asset delete failure still removes the record", func(t *testing.T) {
		store := db.NewMemStore()
		assets := &fakeStorage{deleteErr: errors.New("bucket unreachable")}
		lc := NewLifecycle(store, assets)

		item, err := store.CreateMedia("gone.jpg", "gone.jpg", model.MediaKindImage, 4000, 0, true)
		require.NoError(t, err)
		expireAt(t, store, item.ID, past, true)

		result, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, ReapResult{Deleted: 1}, result)

		_, err = store.GetMediaByID(item.ID)
		assert.Error(t, err)
	})

	t.Run("row already deleted by a concurrent pass is not counted", func(t *testing.T) {
		store := db.NewMemStore()

		item, err := store.CreateMedia("gone.jpg", "gone.jpg", model.MediaKindImage, 4000, 0, true)
		require.NoError(t, err)
		expireAt(t, store, item.ID, past, true)
		snapshot, err := store.ListExpiredMedia(now)
		require.NoError(t, err)

		// the other pass wins the delete between our listing and ours
		_, err = store.DeleteMedia(item.ID)
		require.NoError(t, err)

		lc := NewLifecycle(&staleListStore{Store: store, expired: snapshot}, &fakeStorage{})
		result, err := lc.ReapExpired(now)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Deleted)
		assert.Equal(t, 0, result.Retired)
	})

	t.Run("auto-delete removes associations with the record", func(t *testing.T) {
		store := db.NewMemStore()
		lc := NewLifecycle(store, &fakeStorage{})

		screen, err := store.CreateScreen("lobby", nil, nil, "pub-lobby", "ABC123")
		require.NoError(t, err)
		item, err := store.CreateMedia("gone.jpg", "gone.jpg", model.MediaKindImage, 4000, 0, false)
		require.NoError(t, err)
		require.NoError(t, store.ReplaceScreenMedia(screen.ID, []int{item.ID}))
		expireAt(t, store, item.ID, past, true)

		_, err = lc.ReapExpired(now)
		require.NoError(t, err)

		assigned, err := store.ListScreenMedia(screen.ID)
		require.NoError(t, err)
		assert.Empty(t, assigned)
	})
}
