package snapshot_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

func TestObjectNameRoundTrip(t *testing.T) {
	takenAt := time.Date(2024, 5, 10, 12, 30, 45, 0, time.UTC)

	name := snapshot.ObjectName(takenAt)
	assert.Equal(t, "tasks-20240510T123045Z.json", name)

	parsed, ok := snapshot.ParseObjectName(name)
	require.True(t, ok)
	assert.Equal(t, takenAt, parsed)
}

func TestObjectNameOrderMatchesTime(t *testing.T) {
	earlier := snapshot.ObjectName(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	later := snapshot.ObjectName(time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}

func TestParseObjectNameRejectsForeignNames(t *testing.T) {
	for _, name := range []string{
		"notes.txt",
		"tasks-.json",
		"tasks-20240510T123045Z.txt",
		"tasks-not-a-timestamp.json",
	} {
		_, ok := snapshot.ParseObjectName(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestNewConvertsTasks(t *testing.T) {
	due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.TaskItem{
		{ID: 1, Title: "Buy milk", Description: "Two liters", State: domain.TaskStateActive, CreatedAt: time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC), DueDate: &due},
		{ID: 2, Title: "File taxes", Description: "Before the deadline", State: domain.TaskStateNew, CreatedAt: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)},
	}

	snap := snapshot.New(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC), items)

	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, "Active", snap.Tasks[0].State)
	assert.Equal(t, &due, snap.Tasks[0].DueDate)
	assert.Equal(t, "New", snap.Tasks[1].State)
	assert.Nil(t, snap.Tasks[1].DueDate)
}
