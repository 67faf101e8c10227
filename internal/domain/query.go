package domain

import (
	"slices"
	"strings"
)

// TaskQuery is the normalized filter+sort handed to a repository. State nil
// means no filtering. Repositories are expected to push both down to the
// storage engine (WHERE / ORDER BY); Match and CompareTasks give the
// equivalent predicate/comparator forms for in-memory backends.
//
// Filtering only removes rows and sorting only reorders, so the two
// transforms commute: filter-then-sort and sort-then-filter yield identical
// results. Tests rely on this property.
type TaskQuery struct {
	State *TaskState
	Sort  SortKey
}

// ParseTaskState parses a state token case-insensitively by canonical name.
func ParseTaskState(token string) (TaskState, error) {
	for state, name := range stateNames {
		if strings.EqualFold(token, name) {
			return state, nil
		}
	}
	return 0, ErrInvalidTaskState
}

// ParseSortKey parses a sort token case-insensitively by canonical name.
func ParseSortKey(token string) (SortKey, error) {
	for key, name := range sortNames {
		if strings.EqualFold(token, name) {
			return key, nil
		}
	}
	return 0, ErrInvalidSortKey
}

// ResolveStateFilter normalizes a caller-supplied state parameter. A missing,
// empty, or unrecognized token means "all states": the returned filter is nil
// and so is the echo. Otherwise both the parsed state and its canonical name
// are returned for the caller to echo back.
func ResolveStateFilter(raw string) (*TaskState, *string) {
	state, err := ParseTaskState(raw)
	if err != nil {
		return nil, nil
	}
	name := state.String()
	return &state, &name
}

// ResolveSort normalizes a caller-supplied sort parameter, defaulting to
// CreatedAt when the token does not parse. The canonical name is always
// available via the returned key's String method, even when defaulted.
func ResolveSort(raw string) SortKey {
	key, err := ParseSortKey(raw)
	if err != nil {
		return SortByCreatedAt
	}
	return key
}

// Match reports whether the item passes the query's state filter.
func (q TaskQuery) Match(item TaskItem) bool {
	return q.State == nil || item.State == *q.State
}

// CompareTasks returns the comparator for the given sort key:
//
//	CreatedAt → creation time descending (newest first)
//	Title     → title ascending, lexicographic
//	DueDate   → due date ascending, items without a due date last
//
// The DueDate ordering is a two-key sort: first by "has no due date"
// (false before true), then by the date itself, so nil due dates always
// land at the end regardless of the primary direction.
func CompareTasks(key SortKey) func(a, b TaskItem) int {
	switch key {
	case SortByTitle:
		return func(a, b TaskItem) int {
			return strings.Compare(a.Title, b.Title)
		}
	case SortByDueDate:
		return func(a, b TaskItem) int {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			case b.DueDate == nil:
				return -1
			}
			return a.DueDate.Compare(*b.DueDate)
		}
	default:
		return func(a, b TaskItem) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	}
}

// Apply materializes the query against an in-memory slice: filter, then a
// stable sort. The input is not modified.
func (q TaskQuery) Apply(items []TaskItem) []TaskItem {
	result := make([]TaskItem, 0, len(items))
	for _, item := range items {
		if q.Match(item) {
			result = append(result, item)
		}
	}
	slices.SortStableFunc(result, CompareTasks(q.Sort))
	return result
}
