package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/storage/memory"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestService(opts ...task.Option) (*task.Service, *memory.Store) {
	store := memory.NewStore()
	opts = append([]task.Option{task.WithClock(func() time.Time { return fixedNow })}, opts...)
	return task.NewService(store, opts...), store
}

func TestCreateValidCandidate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	due := fixedNow.AddDate(0, 1, 0)
	item, notice, err := svc.Create(ctx, domain.TaskCandidate{
		Title:       "  Buy milk  ",
		Description: "Two liters",
		State:       domain.TaskStateNew,
		DueDate:     &due,
	})
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "Buy milk", item.Title, "title is stored trimmed")
	assert.Equal(t, "Two liters", item.Description)
	assert.True(t, fixedNow.Equal(item.CreatedAt), "createdAt is server-assigned")
	require.NotNil(t, item.DueDate)
	assert.True(t, due.Equal(*item.DueDate))

	assert.Equal(t, domain.NoticeSuccess, notice.Severity)
	assert.Equal(t, "Task created.", notice.Message)
}

func TestCreateInvalidCandidate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	past := fixedNow.AddDate(0, 0, -1)
	_, _, err := svc.Create(ctx, domain.TaskCandidate{
		Title:   "   ",
		State:   domain.TaskState(42),
		DueDate: &past,
	})
	require.Error(t, err)

	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	byField := fieldErrs.ByField()
	assert.Contains(t, byField, domain.FieldTitle)
	assert.Contains(t, byField, domain.FieldState)
	assert.Contains(t, byField, domain.FieldDueDate)

	items, listErr := store.List(ctx, domain.TaskQuery{})
	require.NoError(t, listErr)
	assert.Empty(t, items, "a rejected candidate must not be persisted")
}

func TestDetail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Read", Description: "a chapter", State: domain.TaskStateNew})
	require.NoError(t, err)

	item, err := svc.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, item.ID)

	_, err = svc.Detail(ctx, created.ID+100)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateValidationPrecedesExistence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// An invalid candidate against a missing ID reports the field errors,
	// not NotFound: validation runs before storage is consulted.
	_, _, err := svc.Update(ctx, 9999, domain.TaskCandidate{Title: ""})
	var fieldErrs domain.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.NotErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateMissingID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Update(ctx, 9999, domain.TaskCandidate{Title: "Valid", Description: "still valid", State: domain.TaskStateNew})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Before", Description: "initial", State: domain.TaskStateNew})
	require.NoError(t, err)

	updated, notice, err := svc.Update(ctx, created.ID, domain.TaskCandidate{
		Title:       "  After  ",
		Description: "changed",
		State:       domain.TaskStateCompleted,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, domain.TaskStateCompleted, updated.State)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, domain.NoticeSuccess, notice.Severity)
	assert.Equal(t, "Task updated.", notice.Message)
}

func TestDeleteIsIdempotentInEffect(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Doomed", Description: "short-lived", State: domain.TaskStateNew})
	require.NoError(t, err)

	notice, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeSuccess, notice.Severity)
	assert.Equal(t, "Task deleted.", notice.Message)

	notice, err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, domain.NoticeDanger, notice.Severity)
	assert.Equal(t, "Task not found.", notice.Message)
}

func TestListNormalizesParameters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, title := range []string{"banana", "apple"} {
		_, _, err := svc.Create(ctx, domain.TaskCandidate{Title: title, Description: "fruit", State: domain.TaskStateNew})
		require.NoError(t, err)
	}
	_, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "cherry", Description: "fruit", State: domain.TaskStateActive})
	require.NoError(t, err)

	// Unknown tokens: unfiltered list, default sort, nil state echo.
	result, err := svc.List(ctx, "bogus", "bogus")
	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, "CreatedAt", result.Sort)
	assert.Nil(t, result.State)

	// Recognized tokens echo their canonical names.
	result, err = svc.List(ctx, "TITLE", "active")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "cherry", result.Items[0].Title)
	assert.Equal(t, "Title", result.Sort)
	require.NotNil(t, result.State)
	assert.Equal(t, "Active", *result.State)
}

// stubSnapshotStore records saved snapshots in memory.
type stubSnapshotStore struct {
	saved []*snapshot.Snapshot
	err   error
}

func (s *stubSnapshotStore) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snap)
	return nil
}

func (s *stubSnapshotStore) List(ctx context.Context) ([]snapshot.Info, error) {
	infos := make([]snapshot.Info, 0, len(s.saved))
	for _, snap := range s.saved {
		infos = append(infos, snapshot.Info{Name: snapshot.ObjectName(snap.TakenAt), TakenAt: snap.TakenAt})
	}
	return infos, nil
}

func TestSnapshot(t *testing.T) {
	store := &stubSnapshotStore{}
	svc, _ := newTestService(task.WithSnapshotStore(store))
	ctx := context.Background()

	_, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Export me", Description: "into the bucket", State: domain.TaskStateNew})
	require.NoError(t, err)

	info, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.ObjectName(fixedNow), info.Name)
	assert.True(t, fixedNow.Equal(info.TakenAt))

	require.Len(t, store.saved, 1)
	assert.Len(t, store.saved[0].Tasks, 1)

	infos, err := svc.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestSnapshotUnconfigured(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
	_, err = svc.ListSnapshots(context.Background())
	assert.Error(t, err)
}

func TestSnapshotSaveFailure(t *testing.T) {
	store := &stubSnapshotStore{err: errors.New("bucket unavailable")}
	svc, _ := newTestService(task.WithSnapshotStore(store))

	_, err := svc.Snapshot(context.Background())
	assert.Error(t, err)
}

// TestLifecycleScenario walks a task through create, rename, complete and
// delete, checking the list view after each step.
func TestLifecycleScenario(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	milk, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Buy milk", Description: "two liters", State: domain.TaskStateNew})
	require.NoError(t, err)
	taxes, _, err := svc.Create(ctx, domain.TaskCandidate{Title: "Archive taxes", Description: "2023 returns", State: domain.TaskStateNew})
	require.NoError(t, err)

	result, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	_, _, err = svc.Update(ctx, taxes.ID, domain.TaskCandidate{Title: "Archive taxes", Description: "2023 returns", State: domain.TaskStateCompleted})
	require.NoError(t, err)

	result, err = svc.List(ctx, "", "completed")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, taxes.ID, result.Items[0].ID)

	_, err = svc.Delete(ctx, milk.ID)
	require.NoError(t, err)

	result, err = svc.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, taxes.ID, result.Items[0].ID)
}
