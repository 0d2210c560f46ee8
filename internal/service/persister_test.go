package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFilePersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "results.json")
	persister := NewFilePersister(path, zap.NewNop())
	items := []domain.NormalizedItem{
		{Question: `Who wrote "Hamlet"?`, Answer: "Shakespeare"},
		{Question: "Tom & Jerry <cartoon>", Answer: "Café"},
	}

	require.NoError(t, persister.Persist(context.Background(), items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tom & Jerry <cartoon>")

	var decoded []domain.NormalizedItem
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, items, decoded)
}

func TestFilePersister_EmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	persister := NewFilePersister(path, zap.NewNop())

	require.NoError(t, persister.Persist(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFilePersister_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"question":"old","answer":"old"},{"question":"x","answer":"y"}]`), 0o644))
	persister := NewFilePersister(path, zap.NewNop())

	require.NoError(t, persister.Persist(context.Background(), []domain.NormalizedItem{{Question: "new", Answer: "new"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question":"new","answer":"new"}]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
	assert.Equal(t, path, persister.Path())
}

func TestFilePersister_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))
	persister := NewFilePersister(filepath.Join(blocker, "results.json"), zap.NewNop())

	err := persister.Persist(context.Background(), []domain.NormalizedItem{{Question: "q", Answer: "a"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersist)
}
