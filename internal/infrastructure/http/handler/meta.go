package handler

import (
	"net/http"

	"github.com/taskkeeper/taskkeeper/internal/domain"
	"github.com/taskkeeper/taskkeeper/internal/infrastructure/http/response"
)

// MetaResponse lists the selectable states and sort keys for building
// filter and sort inputs.
type MetaResponse struct {
	States []domain.EnumOption `json:"states"`
	Sorts  []domain.EnumOption `json:"sorts"`
}

// GetMeta handles GET /v1/meta.
func (h *TaskHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	response.OK(w, MetaResponse{
		States: domain.StateOptions(),
		Sorts:  domain.SortOptions(),
	})
}
