// Package module wires the scan API into the router using modkit
package module

import (
	"net/http"

	modkit "doclint/internal/modkit"
	"doclint/internal/modkit/httpkit"
	str "doclint/internal/platform/strings"

	scanapihttp "doclint/internal/services/api/scanapi/http"
	scandom "doclint/internal/services/scan/domain"
)

// Ports are the scan module ports this API module depends on
type Ports struct {
	Checker scandom.CheckerPort
	Query   scandom.QueryPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs a scan API module; the scan module's ports must be
// injected via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("scan"), modkit.WithPrefix("/scan")}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Checker == nil {
		panic("scanapi module requires Ports with a Checker")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     ports,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		scanapihttp.Register(r, scanapihttp.Ports{
			Checker: ports.Checker,
			Query:   ports.Query,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
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

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
