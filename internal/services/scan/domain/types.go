// Package domain defines the core types and interfaces for the scan service
package domain

import "time"

// Options controls one scan run
type Options struct {
	Root            string
	Workers         int
	MinParams       int
	MaxSummaryLines int
	Severity        string
	DryRun          bool
}

// Finding is one doc-structure violation, localized to a byte offset in
// its file. Line and Col are derived from ByteOffset for display only
type Finding struct {
	ID         string // uuid
	RunID      string // uuid, empty for stateless checks
	Path       string
	Function   string
	ByteOffset int
	Line       int
	Col        int
	Rule       string
	Reason     string
	Severity   string

	// SummaryNorm is the normalized summary text of the offending comment,
	// empty when the comment had no summary block
	SummaryNorm string

	// Script and Lang are best-effort hints over SummaryNorm
	Script string
	Lang   string

	CreatedAt time.Time
}

// RunSummary describes one completed (or running) scan run
type RunSummary struct {
	RunID        string
	Root         string
	StartedAt    time.Time
	FinishedAt   time.Time
	FilesScanned int
	FilesFailed  int
	FuncsChecked int
	FuncsSkipped int // unverifiable declarations (bad ranges, block docs)
	Findings     int
}

// AfterKey is the keyset cursor for paging findings within a run
type AfterKey struct {
	Path       string
	ByteOffset int
	ID         string // uuid tie-breaker
}
