// Package module wires the mobile tours surface into the API using modkit
package module

import (
	"net/http"

	modkit "releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	str "releves/internal/platform/strings"
	readingsdom "releves/internal/services/readings/domain"
	"releves/internal/services/tours/domain"
	tourshttp "releves/internal/services/tours/http"
	"releves/internal/services/tours/repo"
	tourssvc "releves/internal/services/tours/service"
)

// Ports exposed by the tours module
type Ports struct {
	Tours domain.Port
}

// Module implements the tours service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the tours module. writer is the readings submission port,
// injected so the mobile path reuses the same transactional flow.
func New(deps modkit.Deps, writer readingsdom.WriterPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("tours"),
		modkit.WithPrefix("/mobile"),
	}, opts...)...)

	svc := tourssvc.New(deps.PG, repo.NewPG(), writer)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}
	m.ports = Ports{Tours: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		tourshttp.Register(r, svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
