// Package http provides http transport for the mobile companion app
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	perr "releves/internal/platform/errors"
	readingsdom "releves/internal/services/readings/domain"
	"releves/internal/services/tours/domain"
)

// Register mounts the mobile endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/tournees", h.tour)
	httpkit.PostJSON[readingsdom.CreateInput](r, "/releves", h.submit)
}

type handlers struct{ svc domain.Port }

// tour godoc
// @Summary Walk list for an agent
// @Description Meters in the agent's district without a reading this month
// @Tags mobile
// @Produce json
// @Param agent_id query string true "agent id"
// @Success 200 {object} domain.Tour
// @Failure 404 {object} httpkit.Envelope
// @Router /mobile/tournees [get]
func (h *handlers) tour(r *stdhttp.Request) (any, error) {
	agentID := r.URL.Query().Get("agent_id")
	if agentID == "" {
		return nil, perr.InvalidArgf("agent_id est requis")
	}
	return h.svc.Tour(r.Context(), agentID)
}

// submit godoc
// @Summary Submit a reading from the field
// @Tags mobile
// @Accept json
// @Produce json
// @Success 201 {object} readingsdom.Reading
// @Router /mobile/releves [post]
func (h *handlers) submit(r *stdhttp.Request, in readingsdom.CreateInput) (any, error) {
	reading, err := h.svc.SubmitReading(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(reading), nil
}
