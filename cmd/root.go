package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/metrics"
	"github.com/spigell/resume-matcher/internal/polarity"
	"github.com/spigell/resume-matcher/internal/polarity/gemini"
	"github.com/spigell/resume-matcher/internal/secrets"
)

const (
	app = "resume-matcher"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher scores résumés against a job description and ranks their statements",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("metrics-file", "", "write prometheus metrics to this file after the run")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("metrics-file", rootCmd.PersistentFlags().Lookup("metrics-file"))
}

// loadDotEnv makes GEMINI_API_KEY and RESUME_MATCHER_* overrides from a local .env
// file visible to the config loader. Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}
}

// setup builds the logger and loads the configuration, exiting on failure.
func setup() (*zap.Logger, *config.Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		logger.Fatal("loading config", zap.Error(err), zap.String("config", cfgFile))
	}

	logger.Debug("starting with config", zap.Any("config", cfg.Redacted()))

	return logger, cfg
}

// newEngine wires the configured polarity provider and metrics into an engine.
func newEngine(ctx context.Context, cfg *config.Config, recorder *metrics.Recorder, logger *zap.Logger) *analysis.Engine {
	opts := []analysis.Option{
		analysis.WithLogger(logger),
		analysis.WithMetrics(recorder),
	}

	scorer, err := newPolarityScorer(ctx, cfg.Polarity, logger)
	if err != nil {
		logger.Warn("falling back to the lexicon polarity scorer", zap.Error(err))
	} else if scorer != nil {
		opts = append(opts, analysis.WithPolarity(scorer))
	}

	engine, err := analysis.New(cfg, opts...)
	if err != nil {
		logger.Fatal("building analysis engine", zap.Error(err))
	}

	return engine
}

func newPolarityScorer(ctx context.Context, cfg config.PolarityConfig, logger *zap.Logger) (polarity.Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", config.ProviderLexicon:
		return nil, nil
	case config.ProviderGemini:
	default:
		return nil, errors.New("unsupported polarity provider: " + cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   config.GeminiKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", config.ProviderGemini),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewScorer(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

// flushMetrics writes the metrics textfile when --metrics-file is set.
func flushMetrics(recorder *metrics.Recorder, logger *zap.Logger) {
	path := viper.GetString("metrics-file")
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		logger.Warn("writing metrics", zap.Error(err))
		return
	}
	logger.Debug("metrics written", zap.String("path", path))
}
