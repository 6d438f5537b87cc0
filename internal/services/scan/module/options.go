package module

import "doclint/internal/platform/config"

// Options holds configuration settings for the scan module
type Options struct {
	Workers         int
	MinParams       int
	MaxSummaryLines int
	Severity        string
	DryRun          bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCAN_")
	return Options{
		Workers:         sc.MayInt("WORKERS", 4),
		MinParams:       sc.MayInt("MIN_PARAMS", 1),
		MaxSummaryLines: sc.MayInt("MAX_SUMMARY_LINES", 0),
		Severity:        sc.MayEnum("SEVERITY", "warning", "info", "warning", "error"),
		DryRun:          sc.MayBool("DRY_RUN", false),
	}
}
