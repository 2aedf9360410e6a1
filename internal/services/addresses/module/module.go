// Package module wires addresses and districts into the API using modkit
package module

import (
	"net/http"

	modkit "releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	str "releves/internal/platform/strings"
	"releves/internal/services/addresses/domain"
	addrhttp "releves/internal/services/addresses/http"
	"releves/internal/services/addresses/repo"
	addrsvc "releves/internal/services/addresses/service"
)

// Ports exposed by the addresses module
type Ports struct {
	Addresses domain.Port
}

// Module implements the addresses service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the addresses module. It mounts at the API root since it
// exposes two sibling catalogs, /adresses and /quartiers.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("addresses"),
		modkit.WithPrefix("/"),
	}, opts...)...)

	svc := addrsvc.New(deps.PG, repo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}
	m.ports = Ports{Addresses: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		addrhttp.Register(r, svc)
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
