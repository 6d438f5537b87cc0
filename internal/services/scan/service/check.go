package service

import (
	"time"

	"github.com/google/uuid"

	"doclint/internal/adapters/source/gosrc"
	"doclint/internal/core/doccheck"
	"doclint/internal/core/langhint"
	"doclint/internal/core/normalize"
	"doclint/internal/services/scan/domain"
)

// fileResult is what one worker produces for one file
type fileResult struct {
	findings []domain.Finding
	checked  int
	skipped  int
}

// checkFile runs the structural check over every declaration in one
// parsed file. Unverifiable declarations (bad ranges, block-comment
// docs) are counted and skipped, never reported
func checkFile(f *gosrc.File, runID string, cfg doccheck.Config, norm *normalize.Normalizer, now time.Time) fileResult {
	var res fileResult
	for _, d := range f.Decls {
		switch d.Kind {
		case gosrc.DocOther:
			res.skipped++
			continue
		case gosrc.DocNone:
			// the threshold still applies when there is no comment
			if len(d.Params) < cfg.MinParams {
				res.checked++
				continue
			}
			res.checked++
			res.findings = append(res.findings, newFinding(f, runID, d, d.Offset, doccheck.ReasonMissingBoundary, cfg, "", now))
			continue
		}

		out, err := doccheck.Check(f.Table, d.DocOffset, d.DocLen, gosrc.Marker, d.Params, cfg)
		if err != nil {
			res.skipped++
			continue
		}
		res.checked++
		if out.Valid {
			continue
		}
		res.findings = append(res.findings, newFinding(f, runID, d, out.Offset, out.Reason, cfg, norm.Normalize(out.Summary), now))
	}
	return res
}

func newFinding(
	f *gosrc.File,
	runID string,
	d gosrc.Decl,
	offset int,
	reason doccheck.Reason,
	cfg doccheck.Config,
	summaryNorm string,
	now time.Time,
) domain.Finding {
	line, col := f.Position(offset)
	script, lang := langhint.DetectScriptAndLang(summaryNorm)
	return domain.Finding{
		ID:          uuid.NewString(),
		RunID:       runID,
		Path:        f.Path,
		Function:    d.Name,
		ByteOffset:  offset,
		Line:        line,
		Col:         col,
		Rule:        doccheck.RuleID,
		Reason:      string(reason),
		Severity:    cfg.Severity,
		SummaryNorm: summaryNorm,
		Script:      script,
		Lang:        lang,
		CreatedAt:   now,
	}
}
