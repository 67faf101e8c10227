package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []TaskItem {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 2, 0)
	return []TaskItem{
		{ID: 1, Title: "Buy milk", State: TaskStateNew, CreatedAt: base.Add(1 * time.Hour)},
		{ID: 2, Title: "Archive taxes", State: TaskStateActive, CreatedAt: base.Add(2 * time.Hour), DueDate: &due},
		{ID: 3, Title: "Call plumber", State: TaskStateCompleted, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func TestResolveStateFilter(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantState *TaskState
		wantEcho  *string
	}{
		{"canonical", "Active", statePtr(TaskStateActive), strPtr("Active")},
		{"case-insensitive", "completed", statePtr(TaskStateCompleted), strPtr("Completed")},
		{"uppercase", "NEW", statePtr(TaskStateNew), strPtr("New")},
		{"empty means all", "", nil, nil},
		{"unrecognized means all", "bogus", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, echo := ResolveStateFilter(tt.token)
			assert.Equal(t, tt.wantState, state)
			assert.Equal(t, tt.wantEcho, echo)
		})
	}
}

func TestResolveSort(t *testing.T) {
	assert.Equal(t, SortByTitle, ResolveSort("title"))
	assert.Equal(t, SortByDueDate, ResolveSort("DUEDATE"))
	assert.Equal(t, SortByCreatedAt, ResolveSort("CreatedAt"))

	// Missing or unparseable tokens fall back to the default, and the
	// canonical name is still echoed.
	assert.Equal(t, SortByCreatedAt, ResolveSort(""))
	assert.Equal(t, SortByCreatedAt, ResolveSort("garbage"))
	assert.Equal(t, "CreatedAt", ResolveSort("garbage").String())
}

func TestApply_DefaultAndExplicitCreatedAtAgree(t *testing.T) {
	items := sampleTasks()

	defaulted := TaskQuery{Sort: ResolveSort("")}.Apply(items)
	explicit := TaskQuery{Sort: ResolveSort("CreatedAt")}.Apply(items)

	assert.Equal(t, defaulted, explicit)
	// Newest first.
	require.Len(t, defaulted, 3)
	assert.Equal(t, int64(3), defaulted[0].ID)
	assert.Equal(t, int64(1), defaulted[2].ID)
}

func TestApply_TitleAscending(t *testing.T) {
	ordered := TaskQuery{Sort: SortByTitle}.Apply(sampleTasks())

	require.Len(t, ordered, 3)
	assert.Equal(t, "Archive taxes", ordered[0].Title)
	assert.Equal(t, "Buy milk", ordered[1].Title)
	assert.Equal(t, "Call plumber", ordered[2].Title)
}

func TestApply_DueDateNilAlwaysLast(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	withDue := TaskItem{ID: 1, Title: "dated", DueDate: &due}
	noDue := TaskItem{ID: 2, Title: "undated"}

	// Regardless of input order, the dated item sorts first.
	for _, items := range [][]TaskItem{{noDue, withDue}, {withDue, noDue}} {
		ordered := TaskQuery{Sort: SortByDueDate}.Apply(items)
		require.Len(t, ordered, 2)
		assert.Equal(t, int64(1), ordered[0].ID)
		assert.Equal(t, int64(2), ordered[1].ID)
	}
}

func TestApply_StateFilter(t *testing.T) {
	state := TaskStateActive
	filtered := TaskQuery{State: &state, Sort: SortByCreatedAt}.Apply(sampleTasks())

	require.Len(t, filtered, 1)
	assert.Equal(t, int64(2), filtered[0].ID)
}

func TestApply_FilterAndSortCommute(t *testing.T) {
	items := sampleTasks()
	// Shuffle so the property does not ride on input order.
	rng := rand.New(rand.NewSource(7))
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	state := TaskStateNew
	q := TaskQuery{State: &state, Sort: SortByTitle}

	filterThenSort := TaskQuery{Sort: q.Sort}.Apply(TaskQuery{State: q.State}.Apply(items))
	sortThenFilter := TaskQuery{State: q.State}.Apply(TaskQuery{Sort: q.Sort}.Apply(items))

	assert.Equal(t, filterThenSort, sortThenFilter)
	assert.Equal(t, q.Apply(items), filterThenSort)
}

func TestStateOptions(t *testing.T) {
	options := StateOptions()
	require.Len(t, options, 3)
	assert.Equal(t, EnumOption{Value: 0, Name: "New", Label: "New"}, options[0])
	assert.Equal(t, "In progress", options[1].Label)
	assert.Equal(t, "Done", options[2].Label)
}

func TestSortOptions(t *testing.T) {
	options := SortOptions()
	require.Len(t, options, 3)
	assert.Equal(t, "CreatedAt", options[0].Name)
	assert.Equal(t, "Due date", options[2].Label)
}

func statePtr(s TaskState) *TaskState {
	return &s
}

func strPtr(s string) *string {
	return &s
}
