// Package http provides http transport for addresses and districts
package http

import (
	stdhttp "net/http"

	"releves/internal/modkit/httpkit"
	"releves/internal/services/addresses/domain"
)

// Register mounts address and district endpoints on the given router
func Register(r httpkit.Router, s domain.Port) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/adresses", h.listAddresses)
	httpkit.Get(r, "/quartiers", h.listDistricts)
}

type handlers struct{ svc domain.Port }

// listAddresses godoc
// @Summary List addresses
// @Tags referentiel
// @Produce json
// @Success 200 {array} domain.Address
// @Router /adresses [get]
func (h *handlers) listAddresses(r *stdhttp.Request) (any, error) {
	return h.svc.ListAddresses(r.Context())
}

// listDistricts godoc
// @Summary List districts
// @Tags referentiel
// @Produce json
// @Success 200 {array} domain.District
// @Router /quartiers [get]
func (h *handlers) listDistricts(r *stdhttp.Request) (any, error) {
	return h.svc.ListDistricts(r.Context())
}
