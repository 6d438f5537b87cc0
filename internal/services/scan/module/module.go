// Package module implements the scan service module
package module

import (
	"context"

	"doclint/internal/modkit"
	"doclint/internal/modkit/httpkit"
	"doclint/internal/modkit/repokit"
	"doclint/internal/modkit/scope"
	"doclint/internal/services/scan/domain"
	"doclint/internal/services/scan/repo"
	"doclint/internal/services/scan/service"
)

// Ports exposed by the scan module
type Ports struct {
	Runner  domain.RunnerPort
	Checker domain.CheckerPort
	Query   domain.QueryPort
}

// Module implements the scan service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new scan module. A nil deps.PG is allowed and yields
// a dry-run-only module (no persistence, no query port)
func New(deps modkit.Deps, opts Options) *Module {
	cfg := service.Config{
		Workers:         opts.Workers,
		MinParams:       opts.MinParams,
		MaxSummaryLines: opts.MaxSummaryLines,
		Severity:        opts.Severity,
		DryRun:          opts.DryRun,
	}

	var writer domain.WriterPort
	var query domain.QueryPort
	if deps.PG != nil {
		// Tag write transactions with the run id so pg_stat_activity
		// shows which scan a session belongs to
		pgq := repokit.WithBeginHooks(deps.PG, func(ctx context.Context, q repokit.Queryer) error {
			run, ok := scope.Get(ctx, "run_id")
			if !ok {
				return nil
			}
			_, err := q.Exec(ctx, `SELECT set_config('application_name', 'doclint-scan:' || $1, true)`, run)
			return err
		})
		storage := repo.NewPG().Bind(pgq)
		writer = storage
		query = storage
	}

	svc := service.New(writer, cfg)

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner:  svc,
		Checker: svc,
		Query:   query,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "scan" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
