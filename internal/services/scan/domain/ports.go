package domain

import "context"

// RunnerPort is the external port for a whole-tree scan
type RunnerPort interface {
	Run(ctx context.Context, opts Options) (RunSummary, error)
}

// CheckerPort validates a single source blob without persistence
type CheckerPort interface {
	CheckSource(ctx context.Context, path string, src []byte, opts Options) ([]Finding, error)
}

// WriterPort persists runs and findings
type WriterPort interface {
	// BeginRun records the run row before any findings reference it
	BeginRun(ctx context.Context, sum RunSummary) error

	// WriteBatch persists findings; duplicates within a run are dropped
	// (ON CONFLICT DO NOTHING) and the surviving count is returned
	WriteBatch(ctx context.Context, xs []Finding) (int, error)

	// FinishRun stamps the final counters on the run row
	FinishRun(ctx context.Context, sum RunSummary) error
}

// QueryPort reads persisted findings back
type QueryPort interface {
	ListByRun(ctx context.Context, runID string, after AfterKey, limit int) ([]Finding, AfterKey, error)
	ListByPath(ctx context.Context, runID, path string, limit int) ([]Finding, error)
	RecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
}
