package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ingest"
)

var importAsJob bool

var importCmd = &cobra.Command{
	Use:   "import PATH",
	Short: "Extract a résumé or job description and store it as cleaned text",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger, cfg := setup()

		text, err := ingest.Load(args[0])
		if err != nil {
			logger.Fatal("extracting document", zap.Error(err))
		}

		dir, name := cfg.Paths.Resumes, ingest.ResumeName(args[0])
		if importAsJob {
			dir, name = cfg.Paths.Jobs, ingest.JobName(time.Now())
		}

		path, err := ingest.Store(dir, name, text)
		if err != nil {
			logger.Fatal("storing document", zap.Error(err))
		}

		logger.Info("document imported",
			zap.String("source", args[0]),
			zap.String("path", path),
			zap.Bool("job", importAsJob),
		)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importAsJob, "job", false, "store the document as a job description")
}
