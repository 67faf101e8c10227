package domain

import "time"

// TaskItem is the single managed entity: a unit of work with a title,
// description, lifecycle state, and optional due date.
//
// ID is a surrogate key assigned by the persistence layer on creation and
// immutable afterwards. CreatedAt is set once, server-side, in UTC.
// Title and Description are stored trimmed and are guaranteed non-empty and
// within length bounds by validation before any write; the storage layer
// does not enforce this itself.
type TaskItem struct {
	ID          int64
	Title       string
	Description string
	State       TaskState
	CreatedAt   time.Time
	DueDate     *time.Time // nil = no due date
}

// TaskState is the lifecycle stage of a task.
// Persisted as a small integer; see the state constants for the only
// defined values.
type TaskState int16

const (
	TaskStateNew       TaskState = 0
	TaskStateActive    TaskState = 1
	TaskStateCompleted TaskState = 2
)

// Valid reports whether the state is one of the defined enumerants.
// Guards against out-of-range integers supplied by an untrusted caller.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateNew, TaskStateActive, TaskStateCompleted:
		return true
	}
	return false
}

// String returns the canonical name of the state ("New", "Active",
// "Completed"). Unknown values stringify as "Unknown".
func (s TaskState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// SortKey selects the ordering of a listed task collection.
// It is a request-time parameter, never persisted.
type SortKey int16

const (
	SortByCreatedAt SortKey = 0
	SortByTitle     SortKey = 1
	SortByDueDate   SortKey = 2
)

// String returns the canonical name of the sort key ("CreatedAt", "Title",
// "DueDate").
func (k SortKey) String() string {
	if name, ok := sortNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Field length bounds enforced by ValidateTask.
const (
	MaxTitleLen       = 128
	MaxDescriptionLen = 4096
)

// DueDateHorizon is how far into the future a due date may be set.
const DueDateHorizon = 3 // years
