package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/bullets"
	"github.com/spigell/resume-matcher/internal/report"
)

var (
	rankJob    string
	rankMaster string
	rankLimit  int
	rankFormat string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the master bullet list against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		logger, cfg := setup()
		if rankLimit > 0 {
			cfg.Settings.MasterTopN = rankLimit
		}

		jobPath, err := resolveJob(rankJob, cfg.Paths.Jobs)
		if err != nil {
			logger.Fatal("selecting job description", zap.Error(err))
		}

		job, err := loadDocument(jobPath)
		if err != nil {
			logger.Fatal("loading job description", zap.Error(err))
		}

		master := rankMaster
		if master == "" {
			master = filepath.Join(cfg.Paths.Exports, masterListName)
		}

		lines, err := readMasterList(master)
		if err != nil {
			logger.Fatal("reading master list", zap.Error(err), zap.String("hint", "run the aggregate command first"))
		}

		engine := newEngine(ctx, cfg, nil, logger)
		ranked, err := engine.RankMasterList(ctx, lines, job.Text)
		if err != nil {
			logger.Fatal("ranking master list", zap.Error(err))
		}

		logger.Info("ranked master list",
			zap.String("job", job.Name),
			zap.Int("statements", len(lines)),
			zap.Int("returned", len(ranked)),
		)

		if err := report.WriteRanked(os.Stdout, rankFormat, ranked); err != nil {
			logger.Fatal("writing ranking", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankJob, "job", "", "job description file (default: newest in paths.jobs)")
	rankCmd.Flags().StringVarP(&rankMaster, "master", "m", "", "master bullet list (default: paths.exports/"+masterListName+")")
	rankCmd.Flags().IntVarP(&rankLimit, "limit", "n", 0, "maximum statements to print (default: settings.master_top_n)")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", report.FormatText, "output format: text, json or yaml")
}

func readMasterList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return bullets.ReadMasterList(f)
}
