// Package sqlite provides a file-backed task repository using the pure Go
// SQLite driver. It is the default backend for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/domain"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store provides the SQLite implementation of the task repository.
type Store struct {
	db *sql.DB
}

var _ task.Repository = (*Store)(nil)

// NewStore opens (or creates) the SQLite database at path and runs
// migrations. Use ":memory:" for an ephemeral database.
func NewStore(ctx context.Context, path string) (*Store, error) {
	// busy_timeout covers concurrent writers; foreign_keys for completeness
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The driver serializes writes; a single connection avoids SQLITE_BUSY
	// under write contention.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle, useful for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

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

// Timestamps are stored as fixed-width UTC text; SQLite has no native
// timestamp type and lexicographic order on this layout matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.TaskItem, error) {
	var (
		item      domain.TaskItem
		createdAt string
		dueDate   sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Title, &item.Description, &item.State, &createdAt, &dueDate); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	item.CreatedAt = parsed.UTC()

	if dueDate.Valid {
		due, err := time.Parse(timeLayout, dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due_date: %w", err)
		}
		utc := due.UTC()
		item.DueDate = &utc
	}
	return &item, nil
}

func formatDue(due *time.Time) any {
	if due == nil {
		return nil
	}
	return due.UTC().Format(timeLayout)
}

// FindByID retrieves a task by its ID.
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.TaskItem, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"

	item, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return item, nil
}

// List retrieves tasks matching the query's state filter in its sort order.
func (s *Store) List(ctx context.Context, query domain.TaskQuery) ([]domain.TaskItem, error) {
	stmt := "SELECT " + taskColumns + " FROM tasks"
	args := []any{}
	if query.State != nil {
		stmt += " WHERE state = ?"
		args = append(args, int16(*query.State))
	}
	stmt += " ORDER BY " + orderByClause(query.Sort)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
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
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		item.Title, item.Description, int16(item.State),
		item.CreatedAt.UTC().Format(timeLayout), formatDue(item.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	item.ID = id
	return nil
}

// Update rewrites the task's mutable fields. CreatedAt is write-once and
// not part of the statement.
func (s *Store) Update(ctx context.Context, item *domain.TaskItem) error {
	query := `UPDATE tasks SET title = ?, description = ?, state = ?, due_date = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		item.Title, item.Description, int16(item.State), formatDue(item.DueDate), item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(result, item.ID)
}

// Delete removes the task row.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(result, id)
}

func checkRowsAffected(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
	}
	return nil
}
