package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/bullets"
)

func sampleReports() []analysis.Report {
	return []analysis.Report{{
		RunID:  "run-1",
		Resume: "jane.txt",
		Job:    "job_120000.txt",
		Result: analysis.Result{
			Score:    61.5,
			Found:    []string{"aws", "python"},
			Missing:  []string{"a", "b", "c", "d", "e", "f"},
			Warnings: []string{"java"},
			RedFlags: []string{"jquery"},
			Ranked: []bullets.Scored{
				{Text: strings.Repeat("x", 100), Score: 80.123},
				{Text: "Wrote python services", Score: 40},
			},
			Weakest: []bullets.Scored{{Text: "Organised the office party", Score: 0}},
		},
	}}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReports()))
	out := buf.String()

	assert.Contains(t, out, "FILE: jane.txt\n")
	assert.Contains(t, out, "MATCH: 61.50%\n")
	assert.Contains(t, out, "SKILLS: aws, python\n")
	assert.Contains(t, out, "MISSING: a, b, c, d, e\n")
	assert.Contains(t, out, "CONTEXT WARNINGS: java\n")
	assert.Contains(t, out, "WARNING: Outdated tech found: jquery\n")
	assert.Contains(t, out, "   1. [80.12%] "+strings.Repeat("x", 85)+"...\n")
	assert.Contains(t, out, "   2. [40.00%] Wrote python services\n")
	assert.Contains(t, out, "WEAKEST 1 STATEMENTS (Rewrite/Remove):\n   1. [0.00%] Organised the office party\n")
	assert.True(t, strings.HasSuffix(out, strings.Repeat("-", 70)+"\n"))
}

func TestWriteTextGroupsSkillsByCategory(t *testing.T) {
	t.Parallel()

	reports := []analysis.Report{{
		Resume: "jane.txt",
		Result: analysis.Result{
			Found:    []string{"aws", "python"},
			Missing:  []string{"kubernetes"},
			Warnings: []string{"java"},
			Categories: map[string][]string{
				"aws":        {"cloud"},
				"kubernetes": {"cloud", "devops"},
				"python":     {"languages"},
				"java":       {"languages"},
			},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, reports))

	assert.Contains(t, buf.String(), "BY CATEGORY:\n"+
		"   cloud: found aws; missing kubernetes\n"+
		"   devops: missing kubernetes\n"+
		"   languages: found python; disclaimed java\n")
}

func TestWriteTextWithoutCategories(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sampleReports()))
	assert.NotContains(t, buf.String(), "BY CATEGORY:")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "JSON", sampleReports()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "jane.txt", decoded[0]["resume"])
	assert.Equal(t, 61.5, decoded[0]["score"])
	assert.Len(t, decoded[0]["ranked_statements"], 2)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleReports()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "run-1", decoded[0]["run_id"])
	assert.Equal(t, []any{"jquery"}, decoded[0]["red_flags"])
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	assert.Error(t, Write(&bytes.Buffer{}, "xml", nil))
	assert.Error(t, WriteRanked(&bytes.Buffer{}, "xml", nil))
}

func TestWriteRanked(t *testing.T) {
	t.Parallel()

	ranked := []bullets.Scored{{Text: "Deployed kubernetes", Score: 81.65}}

	var buf bytes.Buffer
	require.NoError(t, WriteRanked(&buf, FormatText, ranked))
	assert.Equal(t, "TOP 1 STATEMENTS\n   1. [81.65%] Deployed kubernetes\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRanked(&buf, FormatYAML, ranked))
	assert.Equal(t, "- text: Deployed kubernetes\n  score: 81.65\n", buf.String())
}
