// Package module wires meters into the API using modkit
package module

import (
	"net/http"

	modkit "releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	str "releves/internal/platform/strings"
	"releves/internal/services/meters/domain"
	metershttp "releves/internal/services/meters/http"
	"releves/internal/services/meters/repo"
	meterssvc "releves/internal/services/meters/service"
)

// Ports exposed by the meters module
type Ports struct {
	Meters domain.Port
}

// Module implements the meters service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *meterssvc.Service
}

// New constructs the meters module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("compteurs"),
		modkit.WithPrefix("/compteurs"),
	}, opts...)...)

	svc := meterssvc.New(deps.PG, repo.NewPG(), meterssvc.Config{
		ListLimit: deps.Cfg.Prefix("COMPTEURS_").MayInt("LIST_LIMIT", 500),
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Meters: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metershttp.Register(r, svc)
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
