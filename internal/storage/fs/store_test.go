package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

func TestSaveAndList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	tasks := []domain.TaskItem{
		{ID: 1, Title: "Buy milk", State: domain.TaskStateNew, CreatedAt: first},
	}
	require.NoError(t, store.Save(ctx, snapshot.New(first, tasks)))
	require.NoError(t, store.Save(ctx, snapshot.New(second, tasks)))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	// Newest first.
	assert.True(t, second.Equal(infos[0].TakenAt))
	assert.True(t, first.Equal(infos[1].TakenAt))
	assert.Equal(t, snapshot.ObjectName(second), infos[0].Name)
}

func TestSavedFileContents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	takenAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	due := takenAt.AddDate(0, 1, 0)
	tasks := []domain.TaskItem{
		{ID: 7, Title: "Review budget", Description: "Q2", State: domain.TaskStateActive, CreatedAt: takenAt, DueDate: &due},
	}
	require.NoError(t, store.Save(ctx, snapshot.New(takenAt, tasks)))

	data, err := os.ReadFile(filepath.Join(dir, snapshot.ObjectName(takenAt)))
	require.NoError(t, err)

	var decoded snapshot.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Tasks, 1)
	assert.Equal(t, int64(7), decoded.Tasks[0].ID)
	assert.Equal(t, "Review budget", decoded.Tasks[0].Title)
	assert.Equal(t, "Active", decoded.Tasks[0].State)
	require.NotNil(t, decoded.Tasks[0].DueDate)
	assert.True(t, due.Equal(*decoded.Tasks[0].DueDate))
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	infos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, infos)
}
