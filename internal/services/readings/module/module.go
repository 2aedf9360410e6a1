// Package module wires readings into the API using modkit
package module

import (
	"net/http"

	modkit "releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	str "releves/internal/platform/strings"
	"releves/internal/services/readings/domain"
	readingshttp "releves/internal/services/readings/http"
	"releves/internal/services/readings/repo"
	readingssvc "releves/internal/services/readings/service"
)

// Ports exposed by the readings module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements the readings service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *readingssvc.Service
}

// New constructs the readings module. notifier may be nil when billing is off
func New(deps modkit.Deps, notifier domain.NotifierPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("releves"),
		modkit.WithPrefix("/releves"),
	}, opts...)...)

	svcOpts := FromConfig(deps.Cfg)
	svc := readingssvc.New(deps.PG, repo.NewPG(), notifier, readingssvc.Config{
		ListLimit:     svcOpts.ListLimit,
		NotifyTimeout: svcOpts.NotifyTimeout,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Writer: svc, Query: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		readingshttp.Register(r, svc)
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
