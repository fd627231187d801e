package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-av/vitrine/internal/db"
	"github.com/northlight-av/vitrine/internal/model"
)

func seedScreen(t *testing.T, store *db.MemStore) model.Screen {
	t.Helper()
	screen, err := store.CreateScreen("lobby", nil, nil, "pub-lobby", "ABC123")
	require.NoError(t, err)
	return screen
}

func seedMedia(t *testing.T, store *db.MemStore, filename string, duration int) model.MediaItem {
	t.Helper()
	item, err := store.CreateMedia(filename, filename, model.MediaKindImage, duration, 0, false)
	require.NoError(t, err)
	return item
}

func TestAssignReplacesWholeSet(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	a := seedMedia(t, store, "a.jpg", 4000)
	b := seedMedia(t, store, "b.jpg", 4000)
	c := seedMedia(t, store, "c.jpg", 4000)

	require.NoError(t, assignments.Assign(screen.ID, []int{a.ID, b.ID}))
	require.NoError(t, assignments.Assign(screen.ID, []int{c.ID, a.ID}))

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, c.ID, assigned[0].MediaID)
	assert.Equal(t, 0, assigned[0].Position)
	assert.Equal(t, a.ID, assigned[1].MediaID)
	assert.Equal(t, 1, assigned[1].Position)
}

func TestAssignSkipsUnknownMediaIDs(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	a := seedMedia(t, store, "a.jpg", 4000)

	require.NoError(t, assignments.Assign(screen.ID, []int{9999, a.ID}))

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, a.ID, assigned[0].MediaID)
}

func TestAssignEmptySetClears(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	a := seedMedia(t, store, "a.jpg", 4000)

	require.NoError(t, assignments.Assign(screen.ID, []int{a.ID}))
	require.NoError(t, assignments.Assign(screen.ID, nil))

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestAssignUnknownScreen(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)

	err := assignments.Assign(42, []int{1})
	assert.ErrorIs(t, err, ErrScreenNotFound)
}

func TestSetDuration(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	item := seedMedia(t, store, "a.jpg", 5000)
	require.NoError(t, assignments.Assign(screen.ID, []int{item.ID}))

	override := 3000
	effective, err := assignments.SetDuration(screen.ID, item.ID, &override)
	require.NoError(t, err)
	assert.Equal(t, 3000, effective)

	effective, err = assignments.SetDuration(screen.ID, item.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 5000, effective)
}

func TestSetDurationMissingAssociation(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	item := seedMedia(t, store, "a.jpg", 5000)

	override := 3000
	_, err := assignments.SetDuration(screen.ID, item.ID, &override)
	assert.ErrorIs(t, err, ErrAssociationNotFound)
}

func TestAppendUploaded(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)
	a := seedMedia(t, store, "a.jpg", 4000)
	b := seedMedia(t, store, "b.jpg", 4000)

	require.NoError(t, assignments.Assign(screen.ID, []int{a.ID}))
	require.NoError(t, assignments.AppendUploaded(screen.ID, b.ID))

	assigned, err := store.ListScreenMedia(screen.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	assert.Equal(t, b.ID, assigned[1].MediaID)
	assert.Equal(t, 1, assigned[1].Position)
}

func TestAppendUploadedUnknownMedia(t *testing.T) {
	store := db.NewMemStore()
	assignments := NewAssignments(store)
	screen := seedScreen(t, store)

	err := assignments.AppendUploaded(screen.ID, 9999)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}
