package polarity

import (
	"context"
	"sync"

	"github.com/jonreiter/govader"
)

// sharedAnalyzer parses the VADER lexicon once per process. The analyzer only reads
// its tables after construction.
var sharedAnalyzer = sync.OnceValue(govader.NewSentimentIntensityAnalyzer)

// Vader scores sentences with the VADER rule-based model: the compound score, which
// already lies in [-1, 1] and accounts for negation, boosters and "but" clauses.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader returns a scorer backed by the bundled English VADER lexicon.
func NewVader() *Vader {
	return &Vader{analyzer: sharedAnalyzer()}
}

func (v *Vader) Polarity(_ context.Context, sentence string) (float64, error) {
	return v.Score(sentence), nil
}

// Score returns the compound polarity of the sentence, 0 when no word carries sentiment.
func (v *Vader) Score(sentence string) float64 {
	return clamp(v.analyzer.PolarityScores(sentence).Compound)
}
