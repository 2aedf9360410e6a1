// Package module wires agents into the API using modkit
package module

import (
	"net/http"

	modkit "releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	str "releves/internal/platform/strings"
	"releves/internal/services/agents/domain"
	agentshttp "releves/internal/services/agents/http"
	"releves/internal/services/agents/repo"
	agentssvc "releves/internal/services/agents/service"
)

// Ports exposed by the agents module
type Ports struct {
	Agents domain.Port
}

// Module implements the agents service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the agents module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("agents"),
		modkit.WithPrefix("/agents"),
	}, opts...)...)

	svc := agentssvc.New(deps.PG, repo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}
	m.ports = Ports{Agents: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		agentshttp.Register(r, svc)
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
