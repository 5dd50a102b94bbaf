package filtering

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

type dedupeFilter struct {
	disabled bool
	reason   string
}

// NewDedupe creates a filter that keeps only the first of statements that differ
// solely in punctuation, case, spacing or bullet glyphs.
func NewDedupe() Filter {
	return &dedupeFilter{}
}

// DedupeKey strips every non-word character and lower-cases the rest.
func DedupeKey(text string) string {
	return strings.ToLower(nonWord.ReplaceAllString(text, ""))
}

func (f *dedupeFilter) Name() string { return "dedupe" }

func (f *dedupeFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *dedupeFilter) IsEnabled() bool { return !f.disabled }

func (f *dedupeFilter) Validate() error { return nil }

func (f *dedupeFilter) Apply(_ context.Context, deps Deps, s *Statements) (*Statements, Step, error) {
	initial := s.Len()
	seen := make(map[string]struct{}, s.Len())

	dropped := s.keep(func(st Statement) bool {
		key := DedupeKey(st.Text)
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})

	if len(dropped) > 0 {
		deps.Logger.Debug("dropping duplicate statements", zap.Strings("dropped", dropped))
	}

	return s, Step{Initial: initial, Dropped: len(dropped), Left: s.Len()}, nil
}

func (f *dedupeFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: !f.disabled, Reason: f.reason}
}
