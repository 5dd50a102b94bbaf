package analysis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBatchKeepsOrder(t *testing.T) {
	t.Parallel()

	e := newEngine(t, testConfig())
	target := Document{Name: "job.txt", Text: "Python and kubernetes engineer."}
	candidates := []Document{
		{Name: "a.txt", Text: "Python developer."},
		{Name: "b.txt", Text: "Kubernetes operator and python engineer."},
		{Name: "c.txt", Text: "Chef."},
		{Name: "d.txt", Text: "No experience with kubernetes."},
	}

	reports, err := e.AnalyzeBatch(context.Background(), target, candidates, 2)
	require.NoError(t, err)
	require.Len(t, reports, len(candidates))

	runID := reports[0].RunID
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	for i, report := range reports {
		assert.Equal(t, candidates[i].Name, report.Resume)
		assert.Equal(t, "job.txt", report.Job)
		assert.Equal(t, runID, report.RunID)

		single, err := e.Analyze(context.Background(), candidates[i].Text, target.Text)
		require.NoError(t, err)
		assert.Equal(t, *single, report.Result)
	}

	assert.Equal(t, []string{"kubernetes"}, reports[3].Warnings)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t, nil).AnalyzeBatch(ctx, Document{Text: "go"}, []Document{{Name: "a", Text: "go"}}, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	t.Parallel()

	reports, err := newEngine(t, nil).AnalyzeBatch(context.Background(), Document{Text: "x"}, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
