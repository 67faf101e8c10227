// Package snapshot defines the contract for exporting point-in-time copies
// of the task collection to a blob store (local filesystem or GCS).
package snapshot

import (
	"context"
	"time"

	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// TaskRecord is the serialized form of a task inside a snapshot. It is a
// stable export format, decoupled from the domain struct.
type TaskRecord struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Snapshot is a full JSON-serializable copy of the task collection at a
// point in time.
type Snapshot struct {
	TakenAt time.Time    `json:"taken_at"`
	Tasks   []TaskRecord `json:"tasks"`
}

// New builds a snapshot of the given tasks taken at the given instant.
func New(takenAt time.Time, items []domain.TaskItem) *Snapshot {
	records := make([]TaskRecord, len(items))
	for i, item := range items {
		records[i] = TaskRecord{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			State:       item.State.String(),
			CreatedAt:   item.CreatedAt,
			DueDate:     item.DueDate,
		}
	}
	return &Snapshot{TakenAt: takenAt.UTC(), Tasks: records}
}

// Info describes a stored snapshot without loading its contents.
type Info struct {
	Name    string    `json:"name"`
	TakenAt time.Time `json:"taken_at"`
}

// Store persists snapshots. Implementations are safe for concurrent use.
type Store interface {
	// Save writes the snapshot under a name derived from TakenAt.
	Save(ctx context.Context, snap *Snapshot) error

	// List returns descriptors for all stored snapshots, newest first.
	List(ctx context.Context) ([]Info, error)
}

// ObjectName returns the canonical object/file name for a snapshot taken at
// the given instant. Lexicographic order of names matches chronological order.
func ObjectName(takenAt time.Time) string {
	return "tasks-" + takenAt.UTC().Format("20060102T150405Z") + ".json"
}

// ParseObjectName recovers the taken-at instant from an object name produced
// by ObjectName. The second return is false for foreign names.
func ParseObjectName(name string) (time.Time, bool) {
	const prefix, suffix = "tasks-", ".json"
	if len(name) <= len(prefix)+len(suffix) ||
		name[:len(prefix)] != prefix || name[len(name)-len(suffix):] != suffix {
		return time.Time{}, false
	}
	stamp := name[len(prefix) : len(name)-len(suffix)]
	takenAt, err := time.Parse("20060102T150405Z", stamp)
	if err != nil {
		return time.Time{}, false
	}
	return takenAt.UTC(), true
}
