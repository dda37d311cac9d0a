package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/leadstack/internal/errors"
	"github.com/leadstack/internal/models"
)

func newTestListStore(t *testing.T) (*FileListStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lists.json")
	return NewFileListStore(path, testLogger()), path
}

func TestFileListStore_GetAll_MissingFile(t *testing.T) {
	store, _ := newTestListStore(t)

	lists, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestFileListStore_GetAll_CorruptFileDegrades(t *testing.T) {
	store, path := newTestListStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	lists, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestFileListStore_ReplaceAllRoundTrip(t *testing.T) {
	store, path := newTestListStore(t)
	ctx := context.Background()

	in := []models.SavedList{
		{
			ID:        "1724800000000",
			Name:      "German manufacturers",
			CreatedAt: 1724800000000,
			Leads: []models.Lead{
				{ID: 3, Name: "Smith, Inc", Industry: "Manufacturing", Location: "Germany"},
			},
		},
	}

	require.NoError(t, store.ReplaceAll(ctx, in))

	out, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// The on-disk blob carries a lastUpdated stamp alongside the lists.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Contains(t, onDisk, "lists")
	assert.Contains(t, onDisk, "lastUpdated")
}

func TestFileListStore_ReplaceAll_NilRejectedWithoutWrite(t *testing.T) {
	store, path := newTestListStore(t)

	err := store.ReplaceAll(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, "INVALID_PAYLOAD", apperrors.Categorize(err).Code)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written for an invalid payload")
}

func TestFileListStore_ReplaceAll_EmptyIsValid(t *testing.T) {
	store, _ := newTestListStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceAll(ctx, []models.SavedList{{ID: "1", Name: "tmp", Leads: []models.Lead{}}}))
	require.NoError(t, store.ReplaceAll(ctx, []models.SavedList{}))

	lists, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestFileListStore_SavedListIsFrozenSnapshot(t *testing.T) {
	store, _ := newTestListStore(t)
	ctx := context.Background()

	lead := models.Lead{ID: 1, Name: "Alice", Email: "a@b.c"}
	require.NoError(t, store.ReplaceAll(ctx, []models.SavedList{
		{ID: "10", Name: "snap", Leads: []models.Lead{lead}},
	}))

	// Mutating the source lead after saving must not affect the stored copy.
	lead.EmailUnlocked = true
	lead.Email = "changed@b.c"

	lists, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "a@b.c", lists[0].Leads[0].Email)
	assert.False(t, lists[0].Leads[0].EmailUnlocked)
}
