package handler

import (
	"time"

	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// TaskDTO is the wire representation of a task.
type TaskDTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"`
	StateLabel  string     `json:"state_label"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskRequest is the mutable-field payload for create and update. State
// travels as a raw integer so out-of-range values reach validation instead
// of failing JSON decoding.
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       int16      `json:"state"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// MapTaskToDTO converts a domain task to its wire form.
func MapTaskToDTO(item *domain.TaskItem) TaskDTO {
	return TaskDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		State:       item.State.String(),
		StateLabel:  item.State.Label(),
		CreatedAt:   item.CreatedAt,
		DueDate:     item.DueDate,
	}
}

// Candidate converts the request payload to a validation candidate.
func (req TaskRequest) Candidate() domain.TaskCandidate {
	return domain.TaskCandidate{
		Title:       req.Title,
		Description: req.Description,
		State:       domain.TaskState(req.State),
		DueDate:     req.DueDate,
	}
}
