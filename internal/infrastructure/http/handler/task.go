package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/http/response"
)

// ListTasksResponse is the payload for GET /v1/tasks. Sort always echoes
// the applied key; State is null when the listing is unfiltered.
type ListTasksResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Sort  string    `json:"sort"`
	State *string   `json:"state"`
}

// TaskResponse wraps a single task, with a notice on mutations.
type TaskResponse struct {
	Task   TaskDTO        `json:"task"`
	Notice *domain.Notice `json:"notice,omitempty"`
}

// NoticeResponse carries just a notice, used by delete.
type NoticeResponse struct {
	Notice domain.Notice `json:"notice"`
}

// ListTasks handles GET /v1/tasks?state=...&sort=...
// Unrecognized parameter values never fail the request; they normalize to
// the unfiltered collection and the default sort.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	result, err := h.taskService.List(r.Context(), r.URL.Query().Get("sort"), r.URL.Query().Get("state"))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list tasks via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	dtos := make([]TaskDTO, len(result.Items))
	for i := range result.Items {
		dtos[i] = MapTaskToDTO(&result.Items[i])
	}
	response.OK(w, ListTasksResponse{Tasks: dtos, Sort: result.Sort, State: result.State})
}

// CreateTask handles POST /v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	item, notice, err := h.taskService.Create(r.Context(), req.Candidate())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task created via HTTP", "task_id", item.ID)
	response.Created(w, TaskResponse{Task: MapTaskToDTO(item), Notice: &notice})
}

// GetTask handles GET /v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.taskService.Detail(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, TaskResponse{Task: MapTaskToDTO(item)})
}

// UpdateTask handles PUT /v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON")
		return
	}

	item, notice, err := h.taskService.Update(r.Context(), id, req.Candidate())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task updated via HTTP", "task_id", item.ID)
	response.OK(w, TaskResponse{Task: MapTaskToDTO(item), Notice: &notice})
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	notice, err := h.taskService.Delete(r.Context(), id)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "task deleted via HTTP", "task_id", id)
	response.OK(w, NoticeResponse{Notice: notice})
}

// parseID reads the {id} route parameter. A non-numeric ID can never exist,
// so it reports 404 rather than 400.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.NotFound(w, "Task not found.")
		return 0, false
	}
	return id, true
}
