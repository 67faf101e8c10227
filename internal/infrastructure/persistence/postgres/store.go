package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
)

// Store provides the PostgreSQL implementation of the task repository.
type Store struct {
	pool *pgxpool.Pool
}

var _ task.Repository = (*Store)(nil)

// NewStore creates a PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
// This is useful for health checks and raw queries.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
