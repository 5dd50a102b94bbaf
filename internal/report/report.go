// Package report renders analysis reports as console text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-matcher/internal/analysis"
	"github.com/spigell/resume-matcher/internal/bullets"
	"github.com/spigell/resume-matcher/internal/logger"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

const (
	missingShown = 5
	previewLen   = 85
	ruleWidth    = 70
)

// Write renders reports in the requested format.
func Write(w io.Writer, format string, reports []analysis.Report) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return writeText(w, reports)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteRanked renders a master-list ranking.
func WriteRanked(w io.Writer, format string, ranked []bullets.Scored) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		p := &printer{w: w}
		p.line("TOP %d STATEMENTS", len(ranked))
		p.statements(ranked)
		return p.err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ranked)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ranked); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) statements(list []bullets.Scored) {
	for i, s := range list {
		p.line("   %d. [%.2f%%] %s", i+1, s.Score, logger.TruncateForLog(s.Text, previewLen))
	}
}

func writeText(w io.Writer, reports []analysis.Report) error {
	p := &printer{w: w}
	rule := strings.Repeat("-", ruleWidth)

	for _, r := range reports {
		p.line("FILE: %s", r.Resume)
		if r.Job != "" {
			p.line("JOB: %s", r.Job)
		}
		p.line("MATCH: %.2f%%", r.Score)
		p.line("SKILLS: %s", strings.Join(r.Found, ", "))

		missing := r.Missing
		if len(missing) > missingShown {
			missing = missing[:missingShown]
		}
		p.line("MISSING: %s", strings.Join(missing, ", "))

		if len(r.Warnings) > 0 {
			p.line("CONTEXT WARNINGS: %s", strings.Join(r.Warnings, ", "))
		}
		if len(r.RedFlags) > 0 {
			p.line("WARNING: Outdated tech found: %s", strings.Join(r.RedFlags, ", "))
		}

		if len(r.Categories) > 0 {
			p.line("BY CATEGORY:")
			for _, g := range groupByCategory(r.Result) {
				p.line("   %s: %s", g.name, g.summary())
			}
		}

		p.line("")
		p.line("TOP %d STATEMENTS (Keep/Promote):", len(r.Ranked))
		p.statements(r.Ranked)

		if len(r.Weakest) > 0 {
			p.line("")
			p.line("WEAKEST %d STATEMENTS (Rewrite/Remove):", len(r.Weakest))
			p.statements(r.Weakest)
		}

		p.line("%s", rule)
	}

	return p.err
}

type categoryGroup struct {
	name                     string
	found, missing, warnings []string
}

func (g categoryGroup) summary() string {
	var parts []string
	if len(g.found) > 0 {
		parts = append(parts, "found "+strings.Join(g.found, ", "))
	}
	if len(g.missing) > 0 {
		parts = append(parts, "missing "+strings.Join(g.missing, ", "))
	}
	if len(g.warnings) > 0 {
		parts = append(parts, "disclaimed "+strings.Join(g.warnings, ", "))
	}
	return strings.Join(parts, "; ")
}

// groupByCategory buckets the skills of r by inventory category, categories sorted.
// A skill listed under several categories appears in each.
func groupByCategory(r analysis.Result) []categoryGroup {
	groups := map[string]*categoryGroup{}
	add := func(names []string, pick func(*categoryGroup) *[]string) {
		for _, name := range names {
			for _, category := range r.Categories[name] {
				g, ok := groups[category]
				if !ok {
					g = &categoryGroup{name: category}
					groups[category] = g
				}
				list := pick(g)
				*list = append(*list, name)
			}
		}
	}
	add(r.Found, func(g *categoryGroup) *[]string { return &g.found })
	add(r.Missing, func(g *categoryGroup) *[]string { return &g.missing })
	add(r.Warnings, func(g *categoryGroup) *[]string { return &g.warnings })

	out := make([]categoryGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
