// Package http provides http transport for readings
package http

import (
	stdhttp "net/http"
	"time"

	"releves/internal/modkit/httpkit"
	perr "releves/internal/platform/errors"
	"releves/internal/services/readings/domain"
)

type ports interface {
	domain.WriterPort
	domain.QueryPort
}

// Register mounts reading endpoints on the given router
func Register(r httpkit.Router, s ports) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
}

type handlers struct{ svc ports }

// @Summary Submit a meter reading
// @Tags Releves
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Submission"
// @Success 201 {object} domain.Reading "created"
// @Failure 400 "index regression"
// @Failure 404 "unknown meter"
// @Router /releves [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	out, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// @Summary List readings
// @Tags Releves
// @Produce json
// @Param from query string false "RFC 3339 lower bound (inclusive)"
// @Param to query string false "RFC 3339 upper bound (exclusive)"
// @Param quartier query string false "district label"
// @Success 200 {array} domain.Row "ok"
// @Router /releves [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	f, err := filtersFromQuery(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), f)
}

func filtersFromQuery(r *stdhttp.Request) (domain.Filters, error) {
	var f domain.Filters
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, perr.InvalidArgf("invalid from date %q", v)
		}
		f.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return f, perr.InvalidArgf("invalid to date %q", v)
		}
		f.To = &t
	}
	f.District = q.Get("quartier")
	return f, nil
}
