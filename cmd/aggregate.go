package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/bullets"
	"github.com/spigell/resume-matcher/internal/ingest"
)

var aggregateOut string

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Collect every statement from cached résumés into the master bullet list",
	Run: func(_ *cobra.Command, _ []string) {
		logger, cfg := setup()

		paths, err := ingest.List(cfg.Paths.Resumes)
		if err != nil {
			logger.Fatal("listing résumés", zap.Error(err))
		}
		if len(paths) == 0 {
			logger.Info("exiting", zap.String("reason", "no résumés to aggregate"), zap.String("dir", cfg.Paths.Resumes))
			return
		}

		texts := make([]string, 0, len(paths))
		for _, path := range paths {
			text, err := ingest.Load(path)
			if err != nil {
				logger.Warn("skipping résumé", zap.String("path", path), zap.Error(err))
				continue
			}
			texts = append(texts, text)
		}

		statements := bullets.Aggregate(texts)

		out := aggregateOut
		if out == "" {
			out = filepath.Join(cfg.Paths.Exports, masterListName)
		}

		w, closeOut, err := openOutput(out)
		if err != nil {
			logger.Fatal("creating master list", zap.Error(err))
		}
		if err := bullets.WriteMasterList(w, statements); err != nil {
			closeOut()
			logger.Fatal("writing master list", zap.Error(err))
		}
		if err := closeOut(); err != nil {
			logger.Fatal("writing master list", zap.Error(err))
		}

		logger.Info("master list created",
			zap.String("path", out),
			zap.Int("resumes", len(texts)),
			zap.Int("statements", len(statements)),
		)
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVarP(&aggregateOut, "out", "o", "", "output file (default: paths.exports/"+masterListName+")")
}
