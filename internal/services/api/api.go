// Package api provides the HTTP API for the application
package api

import (
	"crypto/subtle"
	"time"

	"releves/internal/platform/config"
	perr "releves/internal/platform/errors"
	"releves/internal/platform/logger"
	phttp "releves/internal/platform/net/http"
	"releves/internal/platform/net/middleware"
	"releves/internal/platform/store"

	"releves/internal/modkit"
	"releves/internal/modkit/httpkit"
	"releves/internal/modkit/module"

	"releves/internal/adapters/billing"
	addressesmod "releves/internal/services/addresses/module"
	agentsmod "releves/internal/services/agents/module"
	assistantmod "releves/internal/services/assistant/module"
	clientsmod "releves/internal/services/clients/module"
	dashboardmod "releves/internal/services/dashboard/module"
	metersmod "releves/internal/services/meters/module"
	readingsdom "releves/internal/services/readings/domain"
	readingsmod "releves/internal/services/readings/module"
	toursmod "releves/internal/services/tours/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// outbound billing notifier, disabled when no base URL is configured
	var notifier readingsdom.NotifierPort
	billingCfg := opt.Config.Prefix("BILLING_")
	if base := billingCfg.MayString("BASE_URL", ""); base != "" {
		notifier = billing.NewClient(billing.Options{
			BaseURL: base,
			APIKey:  billingCfg.MayString("API_KEY", ""),
			Timeout: billingCfg.MayDuration("TIMEOUT", 5*time.Second),
		})
	}

	// Readings first; the mobile tours module reuses its Writer port so both
	// entry points share one submission flow
	readings := readingsmod.New(deps, notifier)
	writer := module.MustPortsOf[readingsmod.Ports](readings).Writer

	mods := []module.Module{
		readings,
		metersmod.New(deps),
		agentsmod.New(deps),
		clientsmod.New(deps),
		addressesmod.New(deps),
		toursmod.New(deps, writer),
		dashboardmod.New(deps),
		assistantmod.New(deps),
	}

	// versioned API with the common middleware stack plus the auth seam.
	// Auth stays a pass-through until a bearer token is configured
	mw := append(httpkit.CommonStack(), httpkit.Auth(authPortFromConfig(opt.Config)))
	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

// authPortFromConfig builds a static bearer-token port from AUTH_TOKEN,
// or nil (auth disabled) when the variable is unset
func authPortFromConfig(cfg config.Conf) middleware.AuthPort {
	tok := cfg.MayString("AUTH_TOKEN", "")
	if tok == "" {
		return nil
	}
	return httpkit.NewPortFunc(func(raw string) (string, error) {
		if subtle.ConstantTimeCompare([]byte(raw), []byte(tok)) != 1 {
			return "", perr.Unauthorizedf("invalid bearer token")
		}
		// a shared service token carries no agent identity
		return "", nil
	})
}
