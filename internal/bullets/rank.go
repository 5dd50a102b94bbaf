package bullets

import (
	"context"
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/similarity"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

const (
	DefaultTopK      = 10
	DefaultMinLength = 25
	DefaultBottomK   = 5
	DefaultMasterTop = 25
)

// Scored is a statement with its relevance to the target, 0-100.
type Scored struct {
	Text  string  `json:"text" yaml:"text"`
	Score float64 `json:"score" yaml:"score"`
}

// Settings controls extraction and ranking.
type Settings struct {
	TopK        int
	Deduplicate bool
	MinLength   int
	BottomK     int
}

// Ranking is the outcome of ExtractAndRank.
type Ranking struct {
	// Top holds at most TopK statements, best first.
	Top []Scored
	// Weakest holds the BottomK lowest scoring statements, worst first. It stays empty
	// unless at least 2*BottomK statements survived filtering.
	Weakest []Scored
	// Stats records how many statements each filter dropped.
	Stats []filtering.Step
}

// Ranker extracts, filters, deduplicates, scores and orders candidate statements.
type Ranker struct {
	normalizer *textnorm.Normalizer
	patterns   []*regexp.Regexp
	settings   Settings
	logger     *zap.Logger
}

// NewRanker builds a ranker. Statements are normalised with n before scoring and
// dropped when they match any of patterns (see filtering.CompilePatterns).
func NewRanker(n *textnorm.Normalizer, patterns []*regexp.Regexp, settings Settings, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.TopK <= 0 {
		settings.TopK = DefaultTopK
	}
	if settings.MinLength < 0 {
		settings.MinLength = 0
	}

	return &Ranker{
		normalizer: n,
		patterns:   patterns,
		settings:   settings,
		logger:     logger,
	}
}

func (r *Ranker) steps() []filtering.Filter {
	steps := []filtering.Filter{
		filtering.NewMinLength(r.settings.MinLength),
		filtering.NewPatterns(r.patterns),
		filtering.NewDedupe(),
	}
	if !r.settings.Deduplicate {
		filtering.DisableByName(steps, "dedupe", "deduplicate_bullets is off")
	}
	return steps
}

// ExtractAndRank segments the raw candidate text and ranks the surviving statements
// against the already normalised target text.
func (r *Ranker) ExtractAndRank(ctx context.Context, raw, normTarget string) (Ranking, error) {
	filters := r.steps()
	if ce := r.logger.Check(zap.DebugLevel, "filter pipeline"); ce != nil {
		ce.Write(zap.Any("filters", filtering.Describe(filters)))
	}

	statements, steps, err := filtering.Run(ctx, filtering.Deps{Logger: r.logger}, filters, filtering.FromTexts(Segment(raw)))
	if err != nil {
		return Ranking{}, err
	}

	scored := r.score(statements.Texts(), normTarget)

	ranking := Ranking{
		Top:   head(scored, r.settings.TopK),
		Stats: steps,
	}

	if k := r.settings.BottomK; k > 0 && len(scored) >= 2*k {
		weakest := make([]Scored, 0, k)
		for i := len(scored) - 1; i >= len(scored)-k; i-- {
			weakest = append(weakest, scored[i])
		}
		ranking.Weakest = weakest
	}

	r.logger.Debug("ranked statements",
		zap.Int("candidates", len(scored)),
		zap.Int("returned", len(ranking.Top)),
	)

	return ranking, nil
}

// RankMasterList scores an existing flat list of statements without extraction,
// filtering or deduplication. Blank lines are skipped and a leading bullet marker is
// removed. At most limit entries are returned.
func (r *Ranker) RankMasterList(lines []string, normTarget string, limit int) []Scored {
	if limit <= 0 {
		limit = DefaultMasterTop
	}

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := StripMarker(line); text != "" {
			texts = append(texts, text)
		}
	}

	return head(r.score(texts, normTarget), limit)
}

func (r *Ranker) score(texts []string, normTarget string) []Scored {
	scorer := similarity.NewStatementScorer(normTarget)
	scored := make([]Scored, 0, len(texts))
	for _, text := range texts {
		scored = append(scored, Scored{
			Text:  text,
			Score: scorer.Score(r.normalizer.Normalize(text)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

func head(scored []Scored, n int) []Scored {
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
