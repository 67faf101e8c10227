package domain

// Static name and display-label tables for the enum types. The presentation
// layer renders labels; canonical names travel in requests and responses.

var stateNames = map[TaskState]string{
	TaskStateNew:       "New",
	TaskStateActive:    "Active",
	TaskStateCompleted: "Completed",
}

var stateLabels = map[TaskState]string{
	TaskStateNew:       "New",
	TaskStateActive:    "In progress",
	TaskStateCompleted: "Done",
}

var sortNames = map[SortKey]string{
	SortByCreatedAt: "CreatedAt",
	SortByTitle:     "Title",
	SortByDueDate:   "DueDate",
}

var sortLabels = map[SortKey]string{
	SortByCreatedAt: "Created",
	SortByTitle:     "Title",
	SortByDueDate:   "Due date",
}

// Label returns the human-readable display string for the state.
func (s TaskState) Label() string {
	if label, ok := stateLabels[s]; ok {
		return label
	}
	return s.String()
}

// Label returns the human-readable display string for the sort key.
func (k SortKey) Label() string {
	if label, ok := sortLabels[k]; ok {
		return label
	}
	return k.String()
}

// EnumOption is a (value, name, label) triple for rendering selection inputs.
type EnumOption struct {
	Value int16  `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// StateOptions returns all defined task states in declaration order.
func StateOptions() []EnumOption {
	states := []TaskState{TaskStateNew, TaskStateActive, TaskStateCompleted}
	options := make([]EnumOption, len(states))
	for i, s := range states {
		options[i] = EnumOption{Value: int16(s), Name: s.String(), Label: s.Label()}
	}
	return options
}

// SortOptions returns all defined sort keys in declaration order.
func SortOptions() []EnumOption {
	keys := []SortKey{SortByCreatedAt, SortByTitle, SortByDueDate}
	options := make([]EnumOption, len(keys))
	for i, k := range keys {
		options[i] = EnumOption{Value: int16(k), Name: k.String(), Label: k.Label()}
	}
	return options
}
