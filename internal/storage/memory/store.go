// Package memory provides an in-process task repository. It backs unit
// tests and the zero-dependency development configuration.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/taskkeeper/taskkeeper/internal/domain"
)

// Store keeps tasks in a map guarded by a mutex and assigns sequential IDs
// on insert. It satisfies the task repository contract, including returning
// domain.ErrTaskNotFound for absent IDs.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]domain.TaskItem
	nextID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{tasks: make(map[int64]domain.TaskItem), nextID: 1}
}

func (s *Store) FindByID(ctx context.Context, id int64) (*domain.TaskItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
	}
	return &item, nil
}

func (s *Store) List(ctx context.Context, query domain.TaskQuery) ([]domain.TaskItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.TaskItem, 0, len(s.tasks))
	for _, item := range s.tasks {
		items = append(items, item)
	}
	return query.Apply(items), nil
}

func (s *Store) Insert(ctx context.Context, item *domain.TaskItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID
	s.nextID++
	s.tasks[item.ID] = *item
	return nil
}

func (s *Store) Update(ctx context.Context, item *domain.TaskItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[item.ID]; !ok {
		return fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, item.ID)
	}
	s.tasks[item.ID] = *item
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: task %d", domain.ErrTaskNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}
