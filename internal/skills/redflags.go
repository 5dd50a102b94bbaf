package skills

import "strings"

// DefaultOutdatedTerms are technologies considered obsolete for matching purposes.
var DefaultOutdatedTerms = []string{"flash", "angularjs", "silverlight", "vb6", "jquery"}

// RedFlags returns the outdated terms contained anywhere in the text, in list order.
// Matching is plain case-insensitive substring containment. An empty list uses
// DefaultOutdatedTerms.
func RedFlags(text string, terms []string) []string {
	if len(terms) == 0 {
		terms = DefaultOutdatedTerms
	}

	lower := strings.ToLower(text)
	flags := make([]string, 0)
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lower, term) {
			flags = append(flags, term)
		}
	}

	return flags
}
