// Package http provides http transport for meters
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/meters/domain"
)

// Register mounts meter endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{serial}", h.get)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
}

type handlers struct{ svc domain.Port }

// @Summary List meters
// @Tags Compteurs
// @Produce json
// @Param type query string false "EAU or ELECTRICITE"
// @Success 200 {array} domain.Meter "ok"
// @Router /compteurs [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), r.URL.Query().Get("type"))
}

// @Summary Get one meter
// @Tags Compteurs
// @Produce json
// @Param serial path string true "meter serial"
// @Success 200 {object} domain.Meter "ok"
// @Failure 404 "unknown meter"
// @Router /compteurs/{serial} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "serial"))
}

// @Summary Register a meter
// @Tags Compteurs
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Meter"
// @Success 201 {object} domain.Meter "created"
// @Router /compteurs [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(m), nil
}
