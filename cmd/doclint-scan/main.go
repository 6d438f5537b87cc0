package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"

	"doclint/internal/modkit"
	"doclint/internal/modkit/module"
	"doclint/internal/modkit/repokit"
	"doclint/internal/platform/config"
	"doclint/internal/platform/logger"
	"doclint/internal/platform/store"

	scandom "doclint/internal/services/scan/domain"
	scanmod "doclint/internal/services/scan/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		rootDir  = flag.String("root", "", "directory tree to scan (required)")
		workers  = flag.Int("workers", 4, "concurrency (>=1)")
		minPar   = flag.Int("min-params", 1, "minimum parameter count before the rule applies")
		maxSum   = flag.Int("max-summary-lines", 0, "summary line cap, 0 disables")
		severity = flag.String("severity", "warning", "severity stamped on findings (info|warning|error)")
		dryRun   = flag.Bool("dry-run", false, "report findings but do not persist")
	)
	flag.Parse()

	if *rootDir == "" {
		log.Fatal("-root is required")
	}

	// Pass CLI flags into CORE_SCAN_* so the module can read its own config
	mustSetEnv("CORE_SCAN_WORKERS", strconv.Itoa(*workers))
	mustSetEnv("CORE_SCAN_MIN_PARAMS", strconv.Itoa(*minPar))
	mustSetEnv("CORE_SCAN_MAX_SUMMARY_LINES", strconv.Itoa(*maxSum))
	mustSetEnv("CORE_SCAN_SEVERITY", *severity)
	mustSetEnv("CORE_SCAN_DRY_RUN", map[bool]string{true: "1", false: "0"}[*dryRun])

	root := config.New()
	l := logger.Get()

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	// A dry run never touches the database, so it works without one
	if !*dryRun {
		pgCfg := root.Prefix("SERVICE_PGSQL_")
		st, err := store.Open(context.Background(), store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		}, store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		repokit.MustGuard(context.Background(), st)
		deps.PG = st.PG
	}

	sm := scanmod.New(deps, scanmod.FromConfig(root))
	module.Register(sm.Name(), sm.Ports())

	ports := sm.Ports().(scanmod.Ports)
	sum, err := ports.Runner.Run(context.Background(), scandom.Options{Root: *rootDir})
	if err != nil {
		l.Error().Err(err).Msg("scan failed")
		return 1
	}

	if sum.Findings > 0 {
		return 1
	}
	return 0
}
