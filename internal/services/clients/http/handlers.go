// Package http provides http transport for clients
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/clients/domain"
)

// Register mounts client endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
}

type handlers struct{ svc domain.Port }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(c), nil
}
