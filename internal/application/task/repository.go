package task

import (
	"context"

	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// Repository defines the persistence contract for task items. All methods may
// suspend on I/O and may fail with a storage error the service does not
// interpret; only domain.ErrTaskNotFound carries meaning across the boundary.
type Repository interface {
	// FindByID retrieves a single task by its ID.
	// Returns domain.ErrTaskNotFound if no such task exists.
	FindByID(ctx context.Context, id int64) (*domain.TaskItem, error)

	// List returns the collection matching the query. Implementations push
	// the state filter and sort order down to the storage engine rather than
	// materializing the full collection first.
	List(ctx context.Context, query domain.TaskQuery) ([]domain.TaskItem, error)

	// Insert persists a new task and assigns its ID on the passed item.
	Insert(ctx context.Context, item *domain.TaskItem) error

	// Update persists the mutable fields of an existing task.
	// Returns domain.ErrTaskNotFound if no such task exists.
	Update(ctx context.Context, item *domain.TaskItem) error

	// Delete removes a task permanently.
	// Returns domain.ErrTaskNotFound if no such task exists.
	Delete(ctx context.Context, id int64) error
}
