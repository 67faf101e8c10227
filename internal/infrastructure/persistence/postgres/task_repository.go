package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// checkRowsAffected validates that an UPDATE/DELETE affected exactly one row.
// Returns domain.ErrTaskNotFound if rowsAffected == 0, indicating the record
// doesn't exist.
func checkRowsAffected(rowsAffected int64, id int64) error {
	if rowsAffected == 0 {
		return fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
	}
	return nil
}

// orderByClause maps a sort key to its SQL ordering. The id tiebreak keeps
// the ordering deterministic across rows with equal primary keys.
func orderByClause(key domain.SortKey) string {
	switch key {
	case domain.SortByTitle:
		return "title ASC, id ASC"
	case domain.SortByDueDate:
		return "due_date IS NULL, due_date ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

const taskColumns = "id, title, description, state, created_at, due_date"

func scanTask(row pgx.Row) (*domain.TaskItem, error) {
	var item domain.TaskItem
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.State, &item.CreatedAt, &item.DueDate); err != nil {
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	if item.DueDate != nil {
		utc := item.DueDate.UTC()
		item.DueDate = &utc
	}
	return &item, nil
}

// FindByID retrieves a task by its ID.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.TaskItem, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = $1"

	item, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return item, nil
}

// List retrieves tasks matching the query's state filter in its sort order.
// Both the filter and the ordering are pushed down to the database.
func (s *Store) List(ctx context.Context, query domain.TaskQuery) ([]domain.TaskItem, error) {
	sql := "SELECT " + taskColumns + " FROM tasks"
	args := []any{}
	if query.State != nil {
		sql += " WHERE state = $1"
		args = append(args, int16(*query.State))
	}
	sql += " ORDER BY " + orderByClause(query.Sort)

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	items := []domain.TaskItem{}
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	return items, nil
}

// Insert stores a new task and fills in its database-assigned ID.
func (s *Store) Insert(ctx context.Context, item *domain.TaskItem) error {
	query := `INSERT INTO tasks (title, description, state, created_at, due_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		item.Title, item.Description, int16(item.State), item.CreatedAt, item.DueDate,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update rewrites the task's mutable fields. CreatedAt is intentionally not
// part of the statement; it is write-once.
func (s *Store) Update(ctx context.Context, item *domain.TaskItem) error {
	query := `UPDATE tasks SET title = $1, description = $2, state = $3, due_date = $4
		WHERE id = $5`

	tag, err := s.pool.Exec(ctx, query,
		item.Title, item.Description, int16(item.State), item.DueDate, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), item.ID)
}

// Delete removes the task row.
func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(tag.RowsAffected(), id)
}
