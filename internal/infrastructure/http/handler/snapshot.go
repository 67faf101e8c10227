package handler

import (
	"log/slog"
	"net/http"

	"github.com/taskkeeper/taskkeeper/internal/infrastructure/http/response"
	"github.com/taskkeeper/taskkeeper/internal/storage/snapshot"
)

// SnapshotResponse wraps a single snapshot descriptor.
type SnapshotResponse struct {
	Snapshot snapshot.Info `json:"snapshot"`
}

// ListSnapshotsResponse lists stored snapshot descriptors, newest first.
type ListSnapshotsResponse struct {
	Snapshots []snapshot.Info `json:"snapshots"`
}

// CreateSnapshot handles POST /v1/snapshots: exports the full collection to
// the configured snapshot store.
func (h *TaskHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := h.taskService.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create snapshot via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "snapshot created via HTTP", "name", info.Name)
	response.Created(w, SnapshotResponse{Snapshot: *info})
}

// ListSnapshots handles GET /v1/snapshots.
func (h *TaskHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := h.taskService.ListSnapshots(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list snapshots via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, ListSnapshotsResponse{Snapshots: infos})
}
