package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadstack/internal/csvcodec"
	"github.com/leadstack/internal/logging"
	"github.com/leadstack/internal/models"
)

func testLogger() *logging.Logger {
	l := logging.NewLogger(logging.LevelError, logging.FormatText)
	l.SetOutput(os.Stderr)
	return l
}

func newTestLeadStore(t *testing.T) (*FileLeadStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	return NewFileLeadStore(path, testLogger()), path
}

func TestFileLeadStore_GetAll_MissingFile(t *testing.T) {
	store, _ := newTestLeadStore(t)

	leads, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFileLeadStore_GetAll_MalformedHeaderDegrades(t *testing.T) {
	store, path := newTestLeadStore(t)
	require.NoError(t, os.WriteFile(path, []byte("Wrong,Header\nfoo,bar"), 0o644))

	leads, err := store.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestFileLeadStore_AppendToMissingFile(t *testing.T) {
	store, path := newTestLeadStore(t)

	count, err := store.Append(context.Background(), []models.Lead{
		{Name: "Alice", Industry: "Tech", Location: "USA", Email: "a@b.c", Phone: "1", Website: "x.com"},
		{Name: "Bob", Industry: "Finance", Location: "UK", Email: "b@b.c", Phone: "2", Website: "y.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	leads, err := csvcodec.Parse(string(content))
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, 1, leads[0].ID)
	assert.Equal(t, 2, leads[1].ID)
}

func TestFileLeadStore_AppendContinuesIDs(t *testing.T) {
	store, _ := newTestLeadStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, []models.Lead{
		{Name: "One"}, {Name: "Two"}, {Name: "Three"},
	})
	require.NoError(t, err)

	count, err := store.Append(ctx, []models.Lead{
		{Name: "Four", ID: 999}, // incoming ids are ignored
		{Name: "Five"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	leads, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 5)

	ids := make([]int, len(leads))
	for i, l := range leads {
		ids[i] = l.ID
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
	assert.Equal(t, "Four", leads[3].Name)
	assert.Equal(t, "Five", leads[4].Name)
	// Existing records are untouched by an append.
	assert.Equal(t, "One", leads[0].Name)
}

func TestFileLeadStore_AppendClearsUnlockFlags(t *testing.T) {
	store, _ := newTestLeadStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, []models.Lead{
		{Name: "Alice", Email: "a@b.c", Phone: "1", EmailUnlocked: true, PhoneUnlocked: true},
	})
	require.NoError(t, err)

	leads, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.False(t, leads[0].EmailUnlocked)
	assert.False(t, leads[0].PhoneUnlocked)
	// The unlocked values themselves are persisted; only the flags reset.
	assert.Equal(t, "a@b.c", leads[0].Email)
}

func TestFileLeadStore_RoundTripThroughFile(t *testing.T) {
	store, _ := newTestLeadStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, []models.Lead{
		{Name: "Smith, Inc", Industry: "Manufacturing", Location: "Germany", Email: "x@smith.de", Phone: "+49 30", Website: "smith.de"},
	})
	require.NoError(t, err)

	leads, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Smith, Inc", leads[0].Name)
}
