// Package http provides http transport for the scan API
package http

import (
	stdhttp "net/http"
	"time"

	"doclint/internal/modkit/httpkit"
	"doclint/internal/services/api/scanapi/domain"
	scandom "doclint/internal/services/scan/domain"
)

// Ports are the scan module ports the handlers call into
type Ports struct {
	Checker scandom.CheckerPort
	Query   scandom.QueryPort
}

// Register mounts scan endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{ports: p}
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
	httpkit.PostJSON[domain.ByRunInput](r, "/findings/by-run", h.byRun)
	httpkit.PostJSON[domain.ByPathInput](r, "/findings/by-path", h.byPath)
	httpkit.Get(r, "/runs/recent", h.recentRuns)
}

type handlers struct{ ports Ports }

// swagger:route POST /scan/check Scan scanCheck
// @Summary Validate doc comments in one source blob without persisting
// @Tags Scan
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Source"
// @Success 200 {array} domain.Finding "ok"
// @Router /scan/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	fs, err := h.ports.Checker.CheckSource(r.Context(), in.Filename, []byte(in.Source), scandom.Options{
		MinParams:       in.MinParams,
		MaxSummaryLines: in.MaxSummaryLines,
		Severity:        in.Severity,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Finding, 0, len(fs))
	for _, f := range fs {
		out = append(out, toWire(f))
	}
	return out, nil
}

// swagger:route POST /scan/findings/by-run Scan scanFindingsByRun
// @Summary Page the findings of one run in (path, offset) order
// @Tags Scan
// @Accept json
// @Produce json
// @Param payload body domain.ByRunInput true "Query"
// @Success 200 type domain.FindingsPage "ok"
// @Router /scan/findings/by-run [post]
func (h *handlers) byRun(r *stdhttp.Request, in domain.ByRunInput) (any, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}
	fs, next, err := h.ports.Query.ListByRun(r.Context(), in.RunID, scandom.AfterKey{
		Path:       in.AfterPath,
		ByteOffset: in.AfterOffset,
		ID:         in.AfterID,
	}, limit)
	if err != nil {
		return nil, err
	}
	page := domain.FindingsPage{Findings: make([]domain.Finding, 0, len(fs))}
	for _, f := range fs {
		page.Findings = append(page.Findings, toWire(f))
	}
	if len(fs) == limit {
		page.NextPath, page.NextOffset, page.NextID = next.Path, next.ByteOffset, next.ID
	}
	return page, nil
}

// swagger:route POST /scan/findings/by-path Scan scanFindingsByPath
// @Summary Findings for one file within a run
// @Tags Scan
// @Accept json
// @Produce json
// @Param payload body domain.ByPathInput true "Query"
// @Success 200 {array} domain.Finding "ok"
// @Router /scan/findings/by-path [post]
func (h *handlers) byPath(r *stdhttp.Request, in domain.ByPathInput) (any, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}
	fs, err := h.ports.Query.ListByPath(r.Context(), in.RunID, in.Path, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Finding, 0, len(fs))
	for _, f := range fs {
		out = append(out, toWire(f))
	}
	return out, nil
}

// swagger:route GET /scan/runs/recent Scan scanRunsRecent
// @Summary Most recent scan runs
// @Tags Scan
// @Produce json
// @Success 200 {array} domain.Run "ok"
// @Router /scan/runs/recent [get]
func (h *handlers) recentRuns(r *stdhttp.Request) (any, error) {
	runs, err := h.ports.Query.RecentRuns(r.Context(), 20)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Run, 0, len(runs))
	for _, s := range runs {
		w := domain.Run{
			RunID:        s.RunID,
			Root:         s.Root,
			StartedAt:    s.StartedAt.UTC().Format(time.RFC3339),
			FilesScanned: s.FilesScanned,
			FilesFailed:  s.FilesFailed,
			FuncsChecked: s.FuncsChecked,
			FuncsSkipped: s.FuncsSkipped,
			Findings:     s.Findings,
		}
		if !s.FinishedAt.IsZero() && s.FinishedAt.Unix() != 0 {
			w.FinishedAt = s.FinishedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, w)
	}
	return out, nil
}

func toWire(f scandom.Finding) domain.Finding {
	w := domain.Finding{
		ID:          f.ID,
		RunID:       f.RunID,
		Path:        f.Path,
		Function:    f.Function,
		ByteOffset:  f.ByteOffset,
		Line:        f.Line,
		Col:         f.Col,
		Rule:        f.Rule,
		Reason:      f.Reason,
		Severity:    f.Severity,
		SummaryNorm: f.SummaryNorm,
		Script:      f.Script,
		Lang:        f.Lang,
	}
	if !f.CreatedAt.IsZero() {
		w.CreatedAt = f.CreatedAt.UTC().Format(time.RFC3339)
	}
	return w
}
