package polarity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderScore(t *testing.T) {
	t.Parallel()

	v := NewVader()

	tests := []struct {
		name     string
		sentence string
		check    func(t *testing.T, score float64)
	}{
		{name: "no sentiment", sentence: "deployed kubernetes clusters", check: func(t *testing.T, s float64) {
			assert.Zero(t, s)
		}},
		{name: "positive", sentence: "excellent sql skills", check: func(t *testing.T, s float64) {
			assert.Greater(t, s, 0.5)
		}},
		{name: "negative", sentence: "my sql skills are terrible", check: func(t *testing.T, s float64) {
			assert.Less(t, s, DefaultThreshold)
		}},
		{name: "negated", sentence: "not good at terraform", check: func(t *testing.T, s float64) {
			assert.Less(t, s, DefaultThreshold)
		}},
		{name: "contraction negates", sentence: "i don't enjoy kubernetes", check: func(t *testing.T, s float64) {
			assert.Less(t, s, DefaultThreshold)
		}},
		{name: "bounded", sentence: "great great great excellent amazing love", check: func(t *testing.T, s float64) {
			assert.LessOrEqual(t, s, 1.0)
			assert.Greater(t, s, 0.9)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, v.Score(tt.sentence))
		})
	}
}

func TestVaderPolarityMatchesScore(t *testing.T) {
	t.Parallel()

	v := NewVader()
	p, err := v.Polarity(context.Background(), "terrible code")
	require.NoError(t, err)
	assert.InDelta(t, v.Score("terrible code"), p, 1e-12)
	assert.Same(t, v.analyzer, NewVader().analyzer)
}

func TestScorerFunc(t *testing.T) {
	t.Parallel()

	p, err := Neutral.Polarity(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}
