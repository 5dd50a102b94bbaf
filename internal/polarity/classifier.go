package polarity

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

const (
	// DefaultThreshold is the polarity below which a sentence reads as unfavourable.
	DefaultThreshold = -0.2
	// DefaultWindow is how many tokens before the keyword are checked for negation cues.
	DefaultWindow = 3
)

// DefaultNegations are cues that disclaim the keyword that follows them.
var DefaultNegations = []string{
	"no", "none", "never", "lack", "lacking", "without", "learning", "minimal", "want", "not",
}

var segmentBreaks = regexp.MustCompile(`[.!?;]+(?:\s+|$)|\n+`)

const tokenPunctuation = `.,;:!?()[]{}"'` + "`"

// Keyword is a term together with its whole-word pattern.
type Keyword struct {
	Term    string
	Pattern *regexp.Regexp
}

// NewKeyword compiles the whole-word pattern for term.
func NewKeyword(term string) Keyword {
	return Keyword{Term: strings.ToLower(strings.TrimSpace(term)), Pattern: textnorm.WholeWord(term)}
}

// Classifier applies lexical negation cues first and falls back to a sentence tone scorer.
type Classifier struct {
	scorer    Scorer
	threshold float64
	window    int
	negations map[string]struct{}
	logger    *zap.Logger
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithThreshold overrides the tone threshold.
func WithThreshold(threshold float64) Option {
	return func(c *Classifier) { c.threshold = threshold }
}

// WithLogger attaches a logger used to report scorer failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Classifier) { c.logger = logger.WithFields(l, zap.String("component", "polarity")) }
}

// WithNegations replaces the negation cue list.
func WithNegations(cues []string) Option {
	return func(c *Classifier) {
		c.negations = make(map[string]struct{}, len(cues))
		for _, cue := range cues {
			c.negations[strings.ToLower(cue)] = struct{}{}
		}
	}
}

// NewClassifier builds a classifier. A nil scorer falls back to VADER.
func NewClassifier(scorer Scorer, opts ...Option) *Classifier {
	if scorer == nil {
		scorer = NewVader()
	}

	c := &Classifier{
		scorer:    scorer,
		threshold: DefaultThreshold,
		window:    DefaultWindow,
		logger:    zap.NewNop(),
	}
	WithNegations(DefaultNegations)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsFavorable reports whether keyword is claimed rather than denied in text.
func (c *Classifier) IsFavorable(ctx context.Context, text, keyword string) bool {
	return c.Classify(ctx, text, NewKeyword(keyword))
}

// Classify is IsFavorable with a precompiled keyword.
func (c *Classifier) Classify(ctx context.Context, text string, kw Keyword) bool {
	segment, ok := findSegment(text, kw.Pattern)
	if !ok {
		return true
	}

	tokens := strings.Fields(segment)
	if idx := indexOf(tokens, strings.Fields(kw.Term)); idx >= 0 {
		for _, tok := range tokens[max(0, idx-c.window):idx] {
			if _, neg := c.negations[trimToken(tok)]; neg {
				return false
			}
		}
	}

	score, err := c.scorer.Polarity(ctx, segment)
	if err != nil {
		c.logger.Warn("polarity scoring failed, treating sentence as neutral",
			zap.String("keyword", kw.Term),
			zap.String("sentence", logger.TruncateForLog(segment, 120)),
			zap.Error(err),
		)
		return true
	}

	return score >= c.threshold
}

func findSegment(text string, pattern *regexp.Regexp) (string, bool) {
	for _, segment := range segmentBreaks.Split(strings.ToLower(text), -1) {
		if pattern.MatchString(segment) {
			return strings.TrimSpace(segment), true
		}
	}
	return "", false
}

// indexOf returns the index of the first run of tokens equal to needle, or -1.
func indexOf(tokens, needle []string) int {
	if len(needle) == 0 {
		return -1
	}

outer:
	for i := 0; i+len(needle) <= len(tokens); i++ {
		for j, n := range needle {
			if trimToken(tokens[i+j]) != n {
				continue outer
			}
		}
		return i
	}

	return -1
}

func trimToken(tok string) string {
	return strings.Trim(tok, tokenPunctuation)
}
