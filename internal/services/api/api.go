// Package api provides the HTTP API for the application
package api

import (
	"doclint/internal/platform/config"
	"doclint/internal/platform/logger"
	phttp "doclint/internal/platform/net/http"
	"doclint/internal/platform/store"

	"doclint/internal/modkit"
	"doclint/internal/modkit/httpkit"
	"doclint/internal/modkit/module"
	"doclint/internal/modkit/swaggerkit"

	metamod "doclint/internal/services/api/meta/module"
	scanapimod "doclint/internal/services/api/scanapi/module"

	// Scan module (owns the Checker/Query ports)
	scanmod "doclint/internal/services/scan/module"
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

	// Construct the scan module first and extract its ports
	scOpts := scanmod.FromConfig(deps.Cfg)
	scan := scanmod.New(deps, scOpts)
	scanPorts := module.MustPortsOf[scanmod.Ports](scan)

	// Inject the scan ports into the API module
	scanAPI := scanapimod.New(
		deps,
		modkit.WithPorts(scanapimod.Ports{
			Checker: scanPorts.Checker,
			Query:   scanPorts.Query,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		scan, // include the worker module so its ports are registered
		scanAPI,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
