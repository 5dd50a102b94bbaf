// Package analysis composes normalisation, similarity scoring, skill matching and
// statement ranking into one résumé against job analysis.
package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/bullets"
	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/metrics"
	"github.com/spigell/resume-matcher/internal/polarity"
	"github.com/spigell/resume-matcher/internal/similarity"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

// Result is the outcome of one candidate/target analysis.
type Result struct {
	Score    float64  `json:"score" yaml:"score"`
	Found    []string `json:"found" yaml:"found"`
	Missing  []string `json:"missing" yaml:"missing"`
	Warnings []string `json:"warnings" yaml:"warnings"`
	RedFlags []string `json:"red_flags" yaml:"red_flags"`
	// Categories maps every found, missing or warned skill to its inventory categories.
	Categories map[string][]string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Ranked     []bullets.Scored    `json:"ranked_statements" yaml:"ranked_statements"`
	Weakest    []bullets.Scored    `json:"weakest_statements,omitempty" yaml:"weakest_statements,omitempty"`
}

// Engine holds everything compiled from one configuration. It is safe for concurrent
// use as long as the polarity scorer is.
type Engine struct {
	normalizer *textnorm.Normalizer
	matcher    *skills.Matcher
	classifier *polarity.Classifier
	ranker     *bullets.Ranker
	outdated   []string
	masterTopN int

	scorer  polarity.Scorer
	logger  *zap.Logger
	metrics *metrics.Recorder
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolarity replaces the built-in lexicon tone scorer.
func WithPolarity(s polarity.Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// New compiles cfg into an engine. A nil cfg uses config.Default, and settings left
// at their zero value take the defaults. Working directories are not consulted.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.WithDefaults()
	if err := cfg.ValidateSettings(); err != nil {
		return nil, err
	}

	patterns, err := cfg.CompileFilters()
	if err != nil {
		return nil, err
	}

	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	classifierOpts := []polarity.Option{
		polarity.WithThreshold(cfg.Polarity.Threshold),
		polarity.WithLogger(e.logger),
	}
	if len(cfg.Polarity.Negations) > 0 {
		classifierOpts = append(classifierOpts, polarity.WithNegations(cfg.Polarity.Negations))
	}

	e.normalizer = textnorm.New(cfg.Synonyms)
	e.matcher = skills.Compile(cfg.Inventory)
	e.classifier = polarity.NewClassifier(e.scorer, classifierOpts...)
	e.ranker = bullets.NewRanker(e.normalizer, patterns, cfg.Settings.Ranking(), e.logger)
	e.outdated = cfg.OutdatedList()
	e.masterTopN = cfg.Settings.MasterTopN

	e.logger.Debug("analysis engine ready",
		zap.Int("skills", e.matcher.Len()),
		zap.Int("synonym_variants", e.normalizer.Len()),
		zap.Int("filters", len(patterns)),
	)

	return e, nil
}

// Analyze scores candidate against target. The error is non-nil only when ctx is done.
func (e *Engine) Analyze(ctx context.Context, candidate, target string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	splitCandidate := textnorm.SplitStructure(candidate)
	normCandidate := e.normalizer.Normalize(splitCandidate)
	normTarget := e.normalizer.Normalize(textnorm.SplitStructure(target))

	matches := e.matcher.Match(ctx, normCandidate, normTarget, e.classifier)

	ranking, err := e.ranker.ExtractAndRank(ctx, splitCandidate, normTarget)
	if err != nil {
		return nil, fmt.Errorf("ranking statements: %w", err)
	}

	result := &Result{
		Score:    similarity.DocumentScore(normCandidate, normTarget),
		Found:    matches.Found,
		Missing:  matches.Missing,
		Warnings: matches.Warnings,
		RedFlags: skills.RedFlags(normCandidate, e.outdated),
		Ranked:   ranking.Top,
		Weakest:  ranking.Weakest,
	}
	result.Categories = e.categories(result.Found, result.Missing, result.Warnings)

	e.metrics.Observe(result.Score, len(result.Found), len(result.Missing), len(result.Warnings), len(result.RedFlags))

	return result, nil
}

// RankMasterList scores a flat statement list against target, capped at the
// configured master_top_n.
func (e *Engine) RankMasterList(ctx context.Context, lines []string, target string) ([]bullets.Scored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normTarget := e.normalizer.Normalize(textnorm.SplitStructure(target))
	return e.ranker.RankMasterList(lines, normTarget, e.masterTopN), nil
}

func (e *Engine) categories(lists ...[]string) map[string][]string {
	out := make(map[string][]string)
	for _, list := range lists {
		for _, name := range list {
			if cats := e.matcher.Categories(name); len(cats) > 0 {
				out[name] = cats
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
