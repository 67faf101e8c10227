package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskkeeper/taskkeeper/internal/application/task"
	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/ptr"
)

// RunRepositoryComplianceTest runs a standard set of tests against a task
// repository implementation. setup returns a fresh (clean) repository for
// each subtest plus a teardown to clean up resources (if any).
func RunRepositoryComplianceTest(t *testing.T, setup func() (task.Repository, func())) {
	t.Run("InsertAndFind", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		item := &domain.TaskItem{
			Title:       "Test task",
			Description: "A description",
			State:       domain.TaskStateNew,
			CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		}

		err := repo.Insert(ctx, item)
		require.NoError(t, err)
		require.NotZero(t, item.ID, "insert must assign an ID")

		fetched, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, fetched.ID)
		assert.Equal(t, "Test task", fetched.Title)
		assert.Equal(t, "A description", fetched.Description)
		assert.Equal(t, domain.TaskStateNew, fetched.State)
		assert.True(t, item.CreatedAt.Equal(fetched.CreatedAt))
		assert.Nil(t, fetched.DueDate)
	})

	t.Run("InsertAssignsDistinctIDs", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		first := &domain.TaskItem{Title: "First", State: domain.TaskStateNew, CreatedAt: time.Now().UTC()}
		second := &domain.TaskItem{Title: "Second", State: domain.TaskStateNew, CreatedAt: time.Now().UTC()}

		require.NoError(t, repo.Insert(ctx, first))
		require.NoError(t, repo.Insert(ctx, second))
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("UpdatePreservesIdentity", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		created := time.Now().UTC().Truncate(time.Microsecond)
		item := &domain.TaskItem{Title: "Before", State: domain.TaskStateNew, CreatedAt: created}
		require.NoError(t, repo.Insert(ctx, item))

		due := created.AddDate(0, 1, 0)
		item.Title = "After"
		item.Description = "Now with details"
		item.State = domain.TaskStateActive
		item.DueDate = &due
		require.NoError(t, repo.Update(ctx, item))

		fetched, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", fetched.Title)
		assert.Equal(t, "Now with details", fetched.Description)
		assert.Equal(t, domain.TaskStateActive, fetched.State)
		require.NotNil(t, fetched.DueDate)
		assert.True(t, due.Equal(*fetched.DueDate))
		assert.True(t, created.Equal(fetched.CreatedAt), "update must not touch createdAt")
	})

	t.Run("UpdateClearsDueDate", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		due := time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Microsecond)
		item := &domain.TaskItem{Title: "Dated", State: domain.TaskStateNew, CreatedAt: time.Now().UTC(), DueDate: ptr.To(due)}
		require.NoError(t, repo.Insert(ctx, item))

		item.DueDate = nil
		require.NoError(t, repo.Update(ctx, item))

		fetched, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.DueDate)
	})

	t.Run("ListFiltersAndSorts", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		base := time.Now().UTC().Truncate(time.Microsecond)
		items := []*domain.TaskItem{
			{Title: "banana", State: domain.TaskStateNew, CreatedAt: base.Add(1 * time.Second)},
			{Title: "apple", State: domain.TaskStateActive, CreatedAt: base.Add(2 * time.Second)},
			{Title: "cherry", State: domain.TaskStateNew, CreatedAt: base.Add(3 * time.Second)},
		}
		for _, item := range items {
			require.NoError(t, repo.Insert(ctx, item))
		}

		newState := domain.TaskStateNew
		filtered, err := repo.List(ctx, domain.TaskQuery{State: &newState, Sort: domain.SortByCreatedAt})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, "cherry", filtered[0].Title, "newest first")
		assert.Equal(t, "banana", filtered[1].Title)

		byTitle, err := repo.List(ctx, domain.TaskQuery{Sort: domain.SortByTitle})
		require.NoError(t, err)
		require.Len(t, byTitle, 3)
		assert.Equal(t, "apple", byTitle[0].Title)
		assert.Equal(t, "banana", byTitle[1].Title)
		assert.Equal(t, "cherry", byTitle[2].Title)
	})

	t.Run("ListSortsDueDateNilLast", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		base := time.Now().UTC().Truncate(time.Microsecond)
		soon := base.AddDate(0, 0, 1)
		later := base.AddDate(0, 0, 7)
		items := []*domain.TaskItem{
			{Title: "no due", State: domain.TaskStateNew, CreatedAt: base},
			{Title: "later", State: domain.TaskStateNew, CreatedAt: base, DueDate: ptr.To(later)},
			{Title: "soon", State: domain.TaskStateNew, CreatedAt: base, DueDate: ptr.To(soon)},
		}
		for _, item := range items {
			require.NoError(t, repo.Insert(ctx, item))
		}

		listed, err := repo.List(ctx, domain.TaskQuery{Sort: domain.SortByDueDate})
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "soon", listed[0].Title)
		assert.Equal(t, "later", listed[1].Title)
		assert.Equal(t, "no due", listed[2].Title)
	})

	t.Run("FindMissingID", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		_, err := repo.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("UpdateMissingID", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := repo.Update(ctx, &domain.TaskItem{ID: 9999, Title: "ghost", State: domain.TaskStateNew, CreatedAt: time.Now().UTC()})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("DeleteThenDeleteAgain", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		item := &domain.TaskItem{Title: "Doomed", State: domain.TaskStateNew, CreatedAt: time.Now().UTC()}
		require.NoError(t, repo.Insert(ctx, item))

		require.NoError(t, repo.Delete(ctx, item.ID))

		_, err := repo.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		err = repo.Delete(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}
