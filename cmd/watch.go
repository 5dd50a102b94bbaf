package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/metrics"
	"github.com/spigell/resume-matcher/internal/report"
	"github.com/spigell/resume-matcher/internal/watch"
)

var (
	watchDebounce time.Duration
	watchFormat   string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis whenever a résumé or job description changes",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger, cfg := setup()
		recorder := metrics.New()
		engine := newEngine(ctx, cfg, recorder, logger)

		dirs := []string{cfg.Paths.Resumes, cfg.Paths.Jobs}
		for _, dir := range dirs {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				logger.Fatal("creating watched directory", zap.Error(err))
			}
		}

		watcher, err := watch.New(dirs,
			watch.WithDebounce(watchDebounce),
			watch.WithFilter(ingest.Supported),
			watch.WithLogger(logger),
		)
		if err != nil {
			logger.Fatal("starting watcher", zap.Error(err))
		}
		defer watcher.Close()

		opts := analyzeOptions{format: watchFormat, concurrency: 4}
		rerun := func(ctx context.Context, changed []string) {
			logger.Info("documents changed", zap.Strings("paths", changed))
			if err := runAnalysis(ctx, engine, cfg, opts, logger); err != nil {
				logger.Warn("analysis failed", zap.Error(err))
				return
			}
			flushMetrics(recorder, logger)
		}

		logger.Info("watching for changes", zap.Strings("dirs", dirs))
		if err := watcher.Run(ctx, rerun); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("watcher stopped", zap.Error(err))
		}
		logger.Info("exiting", zap.String("reason", "interrupted"))
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-running")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", report.FormatText, "output format: text, json or yaml")
}
