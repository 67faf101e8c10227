// Package handler adapts HTTP requests to task service calls.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskkeeper/taskkeeper/internal/application/task"
)

// TaskHandler serves the task API.
type TaskHandler struct {
	taskService *task.Service
}

// NewTaskHandler creates a new HTTP API handler.
func NewTaskHandler(taskService *task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// NewRouter mounts all API routes. Both production code and tests use this
// function so they exercise identical routing.
func NewRouter(taskService *task.Service) http.Handler {
	h := NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Get("/{id}", h.GetTask)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
		})
		r.Get("/meta", h.GetMeta)
		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", h.ListSnapshots)
			r.Post("/", h.CreateSnapshot)
		})
	})
	return r
}
