// Package repo provides the scan repository implementation.
package repo

import (
	"context"
	"fmt"
	"strings"

	"doclint/internal/modkit/repokit"
	ptime "doclint/internal/platform/time"
	"doclint/internal/services/scan/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the scan repository
type Storage interface {
	BeginRun(ctx context.Context, sum domain.RunSummary) error
	WriteBatch(ctx context.Context, xs []domain.Finding) (int, error)
	FinishRun(ctx context.Context, sum domain.RunSummary) error
	ListByRun(ctx context.Context, runID string, after domain.AfterKey, limit int) ([]domain.Finding, domain.AfterKey, error)
	ListByPath(ctx context.Context, runID, path string, limit int) ([]domain.Finding, error)
	RecentRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)
}

// BeginRun implements Storage
func (s *pg) BeginRun(ctx context.Context, sum domain.RunSummary) error {
	_, err := s.q.Exec(ctx, `INSERT INTO scan_runs (id, root, started_at) VALUES ($1, $2, $3)`,
		sum.RunID, sum.Root, sum.StartedAt)
	return err
}

// WriteBatch implements Storage
func (s *pg) WriteBatch(ctx context.Context, xs []domain.Finding) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO findings
		(id, run_id, path, function, byte_offset, line, col, rule, reason,
		severity, summary_norm, script, lang, created_at) VALUES `)

	args := make([]any, 0, len(xs)*14)
	for i, f := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*14 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12, base+13)

		args = append(args,
			f.ID, f.RunID, f.Path, f.Function, f.ByteOffset, f.Line, f.Col,
			f.Rule, f.Reason, f.Severity, f.SummaryNorm, f.Script, f.Lang, f.CreatedAt,
		)
	}
	// Idempotent per run: a function has at most one finding per offset
	sb.WriteString(` ON CONFLICT (run_id, path, function, byte_offset) DO NOTHING`)

	// Batch goes through a tx so begin hooks apply to the insert
	if tx, ok := s.q.(repokit.TxRunner); ok {
		var n int
		err := repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
			tag, err := q.Exec(ctx, sb.String(), args...)
			if err != nil {
				return err
			}
			n = int(tag.RowsAffected())
			return nil
		})
		return n, err
	}

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// FinishRun implements Storage
func (s *pg) FinishRun(ctx context.Context, sum domain.RunSummary) error {
	_, err := s.q.Exec(ctx, `
		UPDATE scan_runs SET
			finished_at = $2,
			files_scanned = $3,
			files_failed = $4,
			funcs_checked = $5,
			funcs_skipped = $6,
			findings = $7
		WHERE id = $1`,
		sum.RunID, ptime.Ptr(sum.FinishedAt), sum.FilesScanned, sum.FilesFailed,
		sum.FuncsChecked, sum.FuncsSkipped, sum.Findings)
	return err
}

// ListByRun implements Storage with keyset pagination over (path, byte_offset, id)
func (s *pg) ListByRun(
	ctx context.Context,
	runID string,
	after domain.AfterKey,
	limit int,
) ([]domain.Finding, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT id::text, run_id::text, path, function, byte_offset, line, col,
			rule, reason, severity, summary_norm, script, lang, created_at
		FROM findings
		WHERE run_id = ` + arg(runID) + `::uuid
	`)
	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if after.ID != "" {
		sb.WriteString(
			"  AND (path, byte_offset, id) > (" +
				arg(after.Path) + ", " +
				arg(after.ByteOffset) + ", " +
				arg(after.ID) + "::uuid)\n",
		)
	}
	sb.WriteString("ORDER BY path, byte_offset, id\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.Finding, 0, limit)
	var last domain.AfterKey
	for rows.Next() {
		var f domain.Finding
		if err := scanFinding(rows, &f); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, f)
		last = domain.AfterKey{Path: f.Path, ByteOffset: f.ByteOffset, ID: f.ID}
	}
	return out, last, rows.Err()
}

// ListByPath implements Storage
func (s *pg) ListByPath(ctx context.Context, runID, path string, limit int) ([]domain.Finding, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, run_id::text, path, function, byte_offset, line, col,
			rule, reason, severity, summary_norm, script, lang, created_at
		FROM findings
		WHERE run_id = $1::uuid AND path = $2
		ORDER BY byte_offset, id
		LIMIT $3`, runID, path, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Finding
	for rows.Next() {
		var f domain.Finding
		if err := scanFinding(rows, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// RecentRuns implements Storage
func (s *pg) RecentRuns(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, root, started_at,
			COALESCE(finished_at, 'epoch'::timestamptz),
			files_scanned, files_failed, funcs_checked, funcs_skipped, findings
		FROM scan_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RunSummary
	for rows.Next() {
		var r domain.RunSummary
		if err := rows.Scan(
			&r.RunID, &r.Root, &r.StartedAt, &r.FinishedAt,
			&r.FilesScanned, &r.FilesFailed, &r.FuncsChecked, &r.FuncsSkipped, &r.Findings,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanFinding(rows repokit.Rows, f *domain.Finding) error {
	return rows.Scan(
		&f.ID, &f.RunID, &f.Path, &f.Function, &f.ByteOffset, &f.Line, &f.Col,
		&f.Rule, &f.Reason, &f.Severity, &f.SummaryNorm, &f.Script, &f.Lang, &f.CreatedAt,
	)
}
