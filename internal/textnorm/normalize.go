// Package textnorm rewrites raw document text into the canonical form used for matching:
// synonym normalisation, structural splitting and boilerplate cleanup.
package textnorm

import (
	"regexp"
	"sort"
	"strings"
)

// Synonyms maps a canonical term to the surface forms that should be rewritten to it.
type Synonyms map[string][]string

type replacement struct {
	canonical string
	pattern   *regexp.Regexp
}

// Normalizer lower-cases text and rewrites synonym variants to their canonical term.
// It is safe for concurrent use once built.
type Normalizer struct {
	replacements []replacement
}

// New compiles the synonym map. Canonical terms are applied in sorted order so the
// result does not depend on map iteration; variants keep their configured order.
func New(synonyms Synonyms) *Normalizer {
	canonicals := make([]string, 0, len(synonyms))
	for canonical := range synonyms {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	n := &Normalizer{}
	for _, canonical := range canonicals {
		target := strings.ToLower(canonical)
		for _, variant := range synonyms[canonical] {
			variant = strings.ToLower(strings.TrimSpace(variant))
			if variant == "" {
				continue
			}
			n.replacements = append(n.replacements, replacement{
				canonical: target,
				pattern:   WholeWord(variant),
			})
		}
	}

	return n
}

// Normalize returns the lower-cased text with every whole-word variant replaced.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	if n == nil {
		return text
	}

	for _, r := range n.replacements {
		text = r.pattern.ReplaceAllLiteralString(text, r.canonical)
	}

	return text
}

// Len reports how many variant patterns were compiled.
func (n *Normalizer) Len() int {
	if n == nil {
		return 0
	}
	return len(n.replacements)
}

// Normalize is a one-off helper that compiles the synonyms on every call.
func Normalize(text string, synonyms Synonyms) string {
	return New(synonyms).Normalize(text)
}

// WholeWord builds a case-insensitive pattern matching term only at word boundaries.
func WholeWord(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}
