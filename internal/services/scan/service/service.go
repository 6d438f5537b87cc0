// Package service implements the scan service
package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"doclint/internal/adapters/source/gosrc"
	"doclint/internal/core/doccheck"
	"doclint/internal/core/normalize"
	"doclint/internal/modkit/scope"
	"doclint/internal/platform/logger"
	"doclint/internal/services/scan/domain"
)

// Config for the scan service
type Config struct {
	Workers         int
	MinParams       int
	MaxSummaryLines int
	Severity        string
	DryRun          bool
}

// Service implements domain.RunnerPort and domain.CheckerPort
type Service struct {
	Writer domain.WriterPort // nil means dry-run only
	Norm   *normalize.Normalizer
	Cfg    Config
}

// New constructs a new scan service
func New(writer domain.WriterPort, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Severity == "" {
		cfg.Severity = "warning"
	}
	return &Service{
		Writer: writer,
		Norm:   normalize.New(),
		Cfg:    cfg,
	}
}

// checkConfig merges per-run options over the service defaults
func (s *Service) checkConfig(opts domain.Options) doccheck.Config {
	cfg := doccheck.Config{
		Severity:        s.Cfg.Severity,
		MaxSummaryLines: s.Cfg.MaxSummaryLines,
		MinParams:       s.Cfg.MinParams,
	}
	if opts.Severity != "" {
		cfg.Severity = opts.Severity
	}
	if opts.MaxSummaryLines > 0 {
		cfg.MaxSummaryLines = opts.MaxSummaryLines
	}
	if opts.MinParams > 0 {
		cfg.MinParams = opts.MinParams
	}
	return cfg
}

// CheckSource implements domain.CheckerPort. Findings carry no run id
// and are never persisted
func (s *Service) CheckSource(ctx context.Context, path string, src []byte, opts domain.Options) ([]domain.Finding, error) {
	f, err := gosrc.ParseFile(path, src)
	if err != nil {
		return nil, err
	}
	res := checkFile(f, "", s.checkConfig(opts), s.Norm, time.Now().UTC())
	return res.findings, nil
}

// Run implements domain.RunnerPort: walk the tree, check every file
// with a bounded worker pool, and persist findings per file batch
func (s *Service) Run(ctx context.Context, opts domain.Options) (domain.RunSummary, error) {
	if opts.Root == "" {
		return domain.RunSummary{}, errors.New("scan root is required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = s.Cfg.Workers
	}
	dryRun := opts.DryRun || s.Cfg.DryRun || s.Writer == nil
	cfg := s.checkConfig(opts)

	paths, err := collectGoFiles(opts.Root)
	if err != nil {
		return domain.RunSummary{}, err
	}

	sum := domain.RunSummary{
		RunID:     uuid.NewString(),
		Root:      opts.Root,
		StartedAt: time.Now().UTC(),
	}
	ctx = logger.WithRun(ctx, sum.RunID)
	ctx = scope.With(ctx, map[string]string{"run_id": sum.RunID})
	log := logger.C(ctx)

	if !dryRun {
		if err := s.Writer.BeginRun(ctx, sum); err != nil {
			return domain.RunSummary{}, err
		}
	}

	results := make([]fileResult, len(paths))
	failed := make([]bool, len(paths))

	sem := make(chan struct{}, workers)
	wg := sync.WaitGroup{}
	for i := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			src, err := os.ReadFile(paths[i])
			if err != nil {
				log.Warn().Err(err).Str("path", paths[i]).Msg("read failed")
				failed[i] = true
				return
			}
			f, err := gosrc.ParseFile(paths[i], src)
			if err != nil {
				log.Debug().Err(err).Str("path", paths[i]).Msg("parse failed")
				failed[i] = true
				return
			}
			results[i] = checkFile(f, sum.RunID, cfg, s.Norm, time.Now().UTC())
		}(i)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return sum, err
	}

	for i := range results {
		if failed[i] {
			sum.FilesFailed++
			continue
		}
		sum.FilesScanned++
		sum.FuncsChecked += results[i].checked
		sum.FuncsSkipped += results[i].skipped
		sum.Findings += len(results[i].findings)

		for _, f := range results[i].findings {
			log.Warn().
				Str("path", f.Path).
				Int("line", f.Line).
				Int("col", f.Col).
				Str("func", f.Function).
				Str("reason", f.Reason).
				Msg("doc comment violation")
		}

		if dryRun || len(results[i].findings) == 0 {
			continue
		}
		if _, err := s.Writer.WriteBatch(ctx, results[i].findings); err != nil {
			return sum, err
		}
	}

	sum.FinishedAt = time.Now().UTC()
	if !dryRun {
		if err := s.Writer.FinishRun(ctx, sum); err != nil {
			return sum, err
		}
	}

	log.Info().
		Int("files", sum.FilesScanned).
		Int("funcs", sum.FuncsChecked).
		Int("findings", sum.Findings).
		Dur("took", sum.FinishedAt.Sub(sum.StartedAt)).
		Msg("scan complete")
	return sum, nil
}

// collectGoFiles walks root for .go files, skipping vendor trees,
// testdata, and hidden or underscore-prefixed directories
func collectGoFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if name == "vendor" || name == "testdata" ||
				strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// deterministic order keeps runs comparable
	sort.Strings(out)
	return out, nil
}
