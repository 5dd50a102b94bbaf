// Package skills cross-references a configured skill inventory against a candidate
// and a target document.
package skills

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/spigell/resume-matcher/internal/polarity"
)

// Inventory maps a category name to its ordered skill names.
type Inventory map[string][]string

// Classifier decides whether a keyword is claimed in the candidate text.
type Classifier interface {
	Classify(ctx context.Context, text string, kw polarity.Keyword) bool
}

// Matches is the outcome of cross-referencing one document pair.
type Matches struct {
	Found    []string `json:"found" yaml:"found"`
	Missing  []string `json:"missing" yaml:"missing"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

type skill struct {
	keyword    polarity.Keyword
	categories []string
}

// Matcher holds one precompiled whole-word pattern per distinct skill.
type Matcher struct {
	skills []skill
	index  map[string]int
}

// Compile builds a matcher from the inventory. Skills are folded to lower case and
// deduplicated across categories; categories are visited in sorted order.
func Compile(inventory Inventory) *Matcher {
	categories := make([]string, 0, len(inventory))
	for category := range inventory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	m := &Matcher{index: make(map[string]int)}
	for _, category := range categories {
		for _, name := range inventory[category] {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}

			if idx, ok := m.index[name]; ok {
				if !slices.Contains(m.skills[idx].categories, category) {
					m.skills[idx].categories = append(m.skills[idx].categories, category)
				}
				continue
			}

			m.index[name] = len(m.skills)
			m.skills = append(m.skills, skill{
				keyword:    polarity.NewKeyword(name),
				categories: []string{category},
			})
		}
	}

	return m
}

// Len returns the number of distinct skills.
func (m *Matcher) Len() int {
	return len(m.skills)
}

// Categories returns the inventory categories a skill belongs to.
func (m *Matcher) Categories(name string) []string {
	idx, ok := m.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return append([]string(nil), m.skills[idx].categories...)
}

// Match checks every skill the target asks for: absent from the candidate it is missing,
// present and claimed it is found, present but disclaimed it is a warning.
// Both texts are expected to be normalised already.
func (m *Matcher) Match(ctx context.Context, resume, job string, classifier Classifier) Matches {
	var found, missing, warnings []string

	for _, s := range m.skills {
		if !s.keyword.Pattern.MatchString(job) {
			continue
		}

		if !s.keyword.Pattern.MatchString(resume) {
			missing = append(missing, s.keyword.Term)
			continue
		}

		if classifier == nil || classifier.Classify(ctx, resume, s.keyword) {
			found = append(found, s.keyword.Term)
		} else {
			warnings = append(warnings, s.keyword.Term)
		}
	}

	return Matches{
		Found:    sortedUnique(found),
		Missing:  sortedUnique(missing),
		Warnings: sortedUnique(warnings),
	}
}

func sortedUnique(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
