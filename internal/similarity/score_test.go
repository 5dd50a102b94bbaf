package similarity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"built", "apis", "node", "js", "kubernetes"},
		Tokenize("I built the APIs with Node.js on a Kubernetes"))
	assert.Empty(t, Tokenize("a I of the"))
	assert.Empty(t, Tokenize(""))
}

func TestDocumentScore(t *testing.T) {
	t.Parallel()

	resume := "Senior Go engineer. Built REST APIs on AWS with Kubernetes and PostgreSQL."
	job := "Looking for a Go engineer with AWS, Kubernetes and Terraform experience."

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, DocumentScore(resume, job), DocumentScore(job, resume))
	})

	t.Run("identical documents", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 100.0, DocumentScore(resume, resume), 0.01)
	})

	t.Run("disjoint vocabulary", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, DocumentScore("gardening tulips roses", "kubernetes terraform aws"))
	})

	t.Run("partial overlap within bounds", func(t *testing.T) {
		t.Parallel()
		score := DocumentScore(resume, job)
		assert.Greater(t, score, 0.0)
		assert.Less(t, score, 100.0)
	})

	t.Run("stop words only", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 0.0, DocumentScore("the and of", ""))
		assert.Equal(t, 0.0, DocumentScore("", ""))
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		t.Parallel()
		score := DocumentScore(resume, job)
		assert.InDelta(t, score, float64(int(score*100+0.5))/100, 1e-9)
	})
}

func TestDocumentScoreDiscountsRepetition(t *testing.T) {
	t.Parallel()

	job := "python kubernetes terraform"
	honest := "python kubernetes"
	stuffed := "python python python python python python python python kubernetes"

	// sub-linear tf keeps keyword stuffing from beating an honest match
	assert.LessOrEqual(t, DocumentScore(stuffed, job), DocumentScore(honest, job))
}

func TestStatementScore(t *testing.T) {
	t.Parallel()

	job := "We need Go, Kubernetes and AWS experience."

	assert.Equal(t, 0.0, StatementScore("   ", job))
	assert.Equal(t, 0.0, StatementScore("Go and AWS", "the of and"))
	assert.Equal(t, 0.0, StatementScore("painted watercolours", job))

	full := StatementScore("go kubernetes aws experience need", job)
	assert.InDelta(t, 100.0, full, 0.01)

	partial := StatementScore("Ran Kubernetes services", job)
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, full)
}

func TestStatementScoreIgnoresOwnVocabulary(t *testing.T) {
	t.Parallel()

	job := "Python developer"

	short := StatementScore("Python", job)
	padded := StatementScore("Python plus lots of unrelated wording about pottery", job)
	assert.Equal(t, short, padded)
}

func TestFit(t *testing.T) {
	t.Parallel()

	_, err := Fit([]string{"the", "and"}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyVocabulary))

	model, err := Fit([]string{"alpha beta", "beta gamma"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, model.Size())

	v := model.Transform("delta epsilon")
	assert.Empty(t, v)
	assert.Equal(t, 0.0, Cosine(v, model.Transform("alpha")))
}
