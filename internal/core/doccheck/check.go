// Package doccheck decides whether a function's doc comment follows the
// summary-then-parameters structural contract and localizes the first
// defect when it does not
package doccheck

import (
	"strings"

	"doclint/internal/core/docline"
	"doclint/internal/core/docparam"
	"doclint/internal/core/docsplit"
)

// RuleID names the single rule this core implements
const RuleID = "doc-structure"

// Reason classifies why a doc comment failed. It refines the outcome
// for reporting and aggregation; the offset alone is authoritative for
// locating the defect
type Reason string

// Reasons, ordered by the check that produces them
const (
	ReasonMissingBoundary  Reason = "missing_boundary"
	ReasonSummaryTooLong   Reason = "summary_too_long"
	ReasonUnparsableParams Reason = "unparsable_parameters"
	ReasonCountMismatch    Reason = "count_mismatch"
	ReasonNameMismatch     Reason = "name_mismatch"
)

// Config is the per-run knob set. The zero value applies the rule to
// every function and leaves summary length unchecked
type Config struct {
	// Severity is carried through to findings untouched
	Severity string

	// MaxSummaryLines caps the summary block line count; 0 disables the
	// check entirely
	MaxSummaryLines int

	// MinParams is the parameter-count threshold below which the rule
	// does not apply at all
	MinParams int
}

// Outcome is the single result of one validation call. Offset is only
// meaningful when Valid is false; it points at the offending entry's
// line, or at the doc-comment start for structural defects
type Outcome struct {
	Valid  bool
	Offset int
	Reason Reason

	// Summary holds the summary block text (lines joined by newlines)
	// for annotative consumers; empty on valid-by-threshold outcomes
	Summary string
}

// ok is the valid outcome
func ok() Outcome { return Outcome{Valid: true} }

func invalid(off int, r Reason, summary string) Outcome {
	return Outcome{Offset: off, Reason: r, Summary: summary}
}

// Check runs the whole pipeline for one declaration: slice the doc
// range, split blocks, parse entries, and match against params in
// declaration order.
//
// The returned error is docline.ErrMalformedRange and nothing else;
// callers must then treat the declaration as unverifiable and skip it.
// Every other failure mode is an Invalid outcome, never an error
func Check(t *docline.Table, off, length int, marker string, params []string, cfg Config) (Outcome, error) {
	// below the threshold the rule does not apply, comment or no comment
	if len(params) < cfg.MinParams {
		return ok(), nil
	}

	lines, err := docline.Slice(t, off, length, marker)
	if err != nil {
		return Outcome{}, err
	}
	return Match(lines, off, params, cfg), nil
}

// Match applies the fixed check order from the structural contract to
// already-sliced lines. Checks short-circuit: the first failure wins
func Match(lines []docline.Line, docStart int, params []string, cfg Config) Outcome {
	blocks, err := docsplit.Split(lines)
	if err != nil {
		return invalid(docStart, ReasonMissingBoundary, "")
	}
	summary := joinText(blocks.Summary)
	if len(blocks.Summary) == 0 {
		return invalid(docStart, ReasonMissingBoundary, summary)
	}
	if cfg.MaxSummaryLines > 0 && len(blocks.Summary) > cfg.MaxSummaryLines {
		return invalid(docStart, ReasonSummaryTooLong, summary)
	}

	entries, err := docparam.Parse(blocks.Params)
	if err != nil || len(entries) == 0 {
		return invalid(docStart, ReasonUnparsableParams, summary)
	}

	// count mismatch is resolved before any pairwise walk, in both
	// directions: missing and excess entries anchor at the doc start
	if len(entries) != len(params) {
		return invalid(docStart, ReasonCountMismatch, summary)
	}

	for i, want := range params {
		if !strings.HasPrefix(entries[i].Rest, want+":") {
			return invalid(entries[i].Line.Offset, ReasonNameMismatch, summary)
		}
	}
	o := ok()
	o.Summary = summary
	return o
}

func joinText(lines []docline.Line) string {
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, len(lines))
	for i, ln := range lines {
		parts[i] = ln.Text
	}
	return strings.Join(parts, "\n")
}
