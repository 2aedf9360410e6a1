// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/dashboard/domain"
)

// Register mounts the dashboard endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/summary", h.summary)
}

type handlers struct{ svc domain.Port }

// summary godoc
// @Summary Back-office overview figures
// @Tags dashboard
// @Produce json
// @Success 200 {object} domain.Summary
// @Router /dashboard/summary [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.Summary(r.Context())
}
