// Package polarity decides whether a keyword is claimed or disclaimed in its surrounding text.
package polarity

import "context"

// Scorer rates the tone of a sentence in [-1, 1]; negative means unfavourable.
type Scorer interface {
	Polarity(ctx context.Context, sentence string) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(sentence string) float64

func (f ScorerFunc) Polarity(_ context.Context, sentence string) (float64, error) {
	return f(sentence), nil
}

// Neutral scores every sentence as 0.
var Neutral = ScorerFunc(func(string) float64 { return 0 })

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
