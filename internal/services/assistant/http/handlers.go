// Package http provides http transport for the assistant
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/assistant/domain"
)

// Register mounts the assistant endpoint on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
}

type handlers struct{ svc domain.Port }

// query godoc
// @Summary Answer a natural language question
// @Description Always returns 200; failures surface as success=false
// @Tags assistant
// @Accept json
// @Produce json
// @Success 200 {object} domain.QueryResponse
// @Router /assistant/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Process(r.Context(), in.Query), nil
}
