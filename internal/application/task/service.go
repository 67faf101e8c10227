package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

// ListResult carries the listed collection plus the normalized filter and
// sort parameters so the caller can echo the resolved values.
type ListResult struct {
	Items []domain.TaskItem
	// Sort is the canonical sort key name, present even when defaulted.
	Sort string
	// State is the canonical state name, nil when the collection is
	// unfiltered (missing or unrecognized state parameter).
	State *string
}

// Service orchestrates the task lifecycle against a Repository: it runs
// validation before any write, normalizes list parameters, and reports
// user-facing outcomes as notices. Validation failures and missing records
// are recoverable results; storage errors propagate unwrapped in meaning.
type Service struct {
	repo      Repository
	snapshots snapshot.Store // optional, nil disables the snapshot operation
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the service clock. Tests use this to pin "now" for
// createdAt assignment and due-date validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSnapshotStore enables the snapshot export operation.
func WithSnapshotStore(store snapshot.Store) Option {
	return func(s *Service) { s.snapshots = store }
}

// NewService creates a task service backed by the given repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List applies the state filter and sort order to the full collection.
// Unrecognized parameters silently normalize: an unknown state token lists
// all states, an unknown sort token falls back to CreatedAt. The operation
// never fails for parameter reasons; only a storage error surfaces.
func (s *Service) List(ctx context.Context, sortParam, stateParam string) (*ListResult, error) {
	state, stateEcho := domain.ResolveStateFilter(stateParam)
	sort := domain.ResolveSort(sortParam)

	items, err := s.repo.List(ctx, domain.TaskQuery{State: state, Sort: sort})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ListResult{
		Items: items,
		Sort:  sort.String(),
		State: stateEcho,
	}, nil
}

// Detail retrieves a single task by ID.
// Returns domain.ErrTaskNotFound when the ID is absent; the caller surfaces
// a danger notice and redirects to the list view instead of rendering a
// detail page.
func (s *Service) Detail(ctx context.Context, id int64) (*domain.TaskItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err // repository returns domain errors
	}
	return item, nil
}

// Create validates the candidate and, when acceptable, persists it. On
// validation failure the FieldErrors are returned through err and nothing is
// written. On success the stored item carries the repository-assigned ID,
// trimmed title/description, and a server-assigned CreatedAt; any
// client-supplied creation time is impossible by construction (the candidate
// has no such field).
func (s *Service) Create(ctx context.Context, c domain.TaskCandidate) (*domain.TaskItem, domain.Notice, error) {
	now := s.now()
	if errs := domain.ValidateTask(c, now); errs != nil {
		return nil, domain.Notice{}, errs
	}

	item := newTaskFromCandidate(c, now)
	if err := s.repo.Insert(ctx, item); err != nil {
		return nil, domain.Notice{}, fmt.Errorf("failed to create task: %w", err)
	}

	return item, domain.SuccessNotice("Task created."), nil
}

// Update validates the candidate first, before even checking existence:
// a candidate that fails validation returns FieldErrors without touching
// storage, so validation failures take precedence over NotFound. A valid
// candidate against a missing ID yields domain.ErrTaskNotFound. Otherwise
// only the four mutable fields change; ID and CreatedAt are write-once.
func (s *Service) Update(ctx context.Context, id int64, c domain.TaskCandidate) (*domain.TaskItem, domain.Notice, error) {
	if errs := domain.ValidateTask(c, s.now()); errs != nil {
		return nil, domain.Notice{}, errs
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Notice{}, err
	}

	applyCandidate(item, c)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, domain.Notice{}, fmt.Errorf("failed to update task: %w", err)
	}

	return item, domain.SuccessNotice("Task updated."), nil
}

// Delete removes the task permanently. A missing ID yields
// domain.ErrTaskNotFound together with a danger notice; repeating the delete
// reports the same outcome, so the operation is idempotent in effect.
func (s *Service) Delete(ctx context.Context, id int64) (domain.Notice, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.DangerNotice("Task not found."), err
	}
	return domain.SuccessNotice("Task deleted."), nil
}

// Snapshot exports the full unfiltered collection to the configured snapshot
// store and returns its descriptor.
func (s *Service) Snapshot(ctx context.Context) (*snapshot.Info, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshot store not configured")
	}

	items, err := s.repo.List(ctx, domain.TaskQuery{Sort: domain.SortByCreatedAt})
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks for snapshot: %w", err)
	}

	snap := snapshot.New(s.now(), items)
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return &snapshot.Info{
		Name:    snapshot.ObjectName(snap.TakenAt),
		TakenAt: snap.TakenAt,
	}, nil
}

// ListSnapshots lists the stored snapshots, newest first.
func (s *Service) ListSnapshots(ctx context.Context) ([]snapshot.Info, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshot store not configured")
	}
	return s.snapshots.List(ctx)
}

// newTaskFromCandidate builds the persisted form of a validated candidate:
// trimmed text fields, server-assigned creation time, ID left for the
// repository to fill.
func newTaskFromCandidate(c domain.TaskCandidate, now time.Time) *domain.TaskItem {
	item := &domain.TaskItem{
		Title:       strings.TrimSpace(c.Title),
		Description: strings.TrimSpace(c.Description),
		State:       c.State,
		CreatedAt:   now,
	}
	if c.DueDate != nil {
		due := c.DueDate.UTC()
		item.DueDate = &due
	}
	return item
}

// applyCandidate copies the four mutable fields onto an existing item.
func applyCandidate(item *domain.TaskItem, c domain.TaskCandidate) {
	item.Title = strings.TrimSpace(c.Title)
	item.Description = strings.TrimSpace(c.Description)
	item.State = c.State
	if c.DueDate != nil {
		due := c.DueDate.UTC()
		item.DueDate = &due
	} else {
		item.DueDate = nil
	}
}
