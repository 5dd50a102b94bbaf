package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-matcher/internal/logger"
)

// Document is a named text, typically a file name and its extracted content.
type Document struct {
	Name string
	Text string
}

// Report is a Result tagged with the documents it was computed for.
type Report struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Resume string `json:"resume" yaml:"resume"`
	Job    string `json:"job" yaml:"job"`
	Result `yaml:",inline"`
}

// AnalyzeBatch analyses every candidate against target with at most concurrency
// analyses in flight; zero or less means unlimited. Reports keep the input order and
// share one run id.
func (e *Engine) AnalyzeBatch(ctx context.Context, target Document, candidates []Document, concurrency int) ([]Report, error) {
	runID := uuid.NewString()
	reports := make([]Report, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, candidate := range candidates {
		g.Go(func() error {
			log := logger.WithDocumentFields(e.logger, runID, candidate.Name, target.Name)

			result, err := e.Analyze(gctx, candidate.Text, target.Text)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", candidate.Name, err)
			}

			log.Debug("analysis finished",
				zap.Float64("score", result.Score),
				zap.Int("found", len(result.Found)),
				zap.Int("missing", len(result.Missing)),
				zap.Int("warnings", len(result.Warnings)),
			)

			reports[i] = Report{
				RunID:  runID,
				Resume: candidate.Name,
				Job:    target.Name,
				Result: *result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("batch analysis finished",
		zap.String(logger.FieldRunID, runID),
		zap.String(logger.FieldJob, target.Name),
		zap.Int("count", len(reports)),
	)

	return reports, nil
}
