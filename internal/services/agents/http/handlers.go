// Package http provides http transport for agents
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/agents/domain"
)

// Register mounts agent endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
}

type handlers struct{ svc domain.Port }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(a), nil
}
