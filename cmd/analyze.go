package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/metrics"
	"github.com/spigell/resume-matcher/internal/report"
)

type analyzeOptions struct {
	resume      string
	job         string
	pick        bool
	format      string
	out         string
	concurrency int
}

var analyzeOpts analyzeOptions

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score résumés against a job description",
	Long: "Score résumés against a job description. By default every résumé in paths.resumes " +
		"is compared with the newest job description in paths.jobs.",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		logger, cfg := setup()
		recorder := metrics.New()
		engine := newEngine(ctx, cfg, recorder, logger)

		if err := runAnalysis(ctx, engine, cfg, analyzeOpts, logger); err != nil {
			logger.Fatal("analysis failed", zap.Error(err))
		}

		flushMetrics(recorder, logger)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeOpts.resume, "resume", "r", "", "résumé file (default: every résumé in paths.resumes)")
	analyzeCmd.Flags().StringVar(&analyzeOpts.job, "job", "", "job description file (default: newest in paths.jobs)")
	analyzeCmd.Flags().BoolVarP(&analyzeOpts.pick, "pick", "p", false, "choose the résumé interactively")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.format, "format", "f", report.FormatText, "output format: text, json or yaml")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.out, "out", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().IntVar(&analyzeOpts.concurrency, "concurrency", 4, "analyses running at once")
}

func runAnalysis(ctx context.Context, engine *analysis.Engine, cfg *config.Config, opts analyzeOptions, logger *zap.Logger) error {
	jobPath, err := resolveJob(opts.job, cfg.Paths.Jobs)
	if err != nil {
		return fmt.Errorf("selecting job description: %w", err)
	}

	resumePaths, err := resolveResumes(opts.resume, opts.pick, cfg.Paths.Resumes)
	if err != nil {
		return fmt.Errorf("selecting résumés: %w", err)
	}

	job, err := loadDocument(jobPath)
	if err != nil {
		return err
	}

	candidates, err := loadDocuments(resumePaths)
	if err != nil {
		return err
	}

	logger.Info("starting analysis",
		zap.String("job", job.Name),
		zap.Int("resumes", len(candidates)),
	)

	reports, err := engine.AnalyzeBatch(ctx, job, candidates, opts.concurrency)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(opts.out)
	if err != nil {
		return err
	}

	if err := report.Write(w, opts.format, reports); err != nil {
		closeOut()
		return fmt.Errorf("writing report: %w", err)
	}

	return closeOut()
}
