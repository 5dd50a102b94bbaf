package filtering

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

type patternFilter struct {
	compiled []*regexp.Regexp
}

// NewPatterns creates a filter that removes statements matching any of the compiled
// expressions. Build them with CompilePatterns.
func NewPatterns(compiled []*regexp.Regexp) Filter {
	return &patternFilter{compiled: compiled}
}

// CompilePattern compiles one configured exclusion pattern case-insensitively.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile filter pattern %q: %w", pattern, err)
	}
	return re, nil
}

// CompilePatterns compiles every non-blank pattern with CompilePattern.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		re, err := CompilePattern(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func (f *patternFilter) Name() string { return "pattern" }

func (f *patternFilter) Disable(string) {}

func (f *patternFilter) IsEnabled() bool { return true }

func (f *patternFilter) Validate() error {
	for _, re := range f.compiled {
		if re == nil {
			return errors.New("nil filter pattern")
		}
	}
	return nil
}

func (f *patternFilter) Apply(_ context.Context, deps Deps, s *Statements) (*Statements, Step, error) {
	initial := s.Len()
	if len(f.compiled) == 0 {
		return s, Step{Initial: initial, Left: s.Len()}, nil
	}

	dropped := s.keep(func(st Statement) bool {
		for _, re := range f.compiled {
			if re.MatchString(st.Text) {
				return false
			}
		}
		return true
	})

	if len(dropped) > 0 {
		deps.Logger.Debug("dropping statements matching filters",
			zap.Strings("patterns", f.sources()),
			zap.Strings("dropped", dropped),
		)
	}

	return s, Step{Initial: initial, Dropped: len(dropped), Left: s.Len()}, nil
}

func (f *patternFilter) sources() []string {
	out := make([]string, 0, len(f.compiled))
	for _, re := range f.compiled {
		out = append(out, strings.TrimPrefix(re.String(), "(?i)"))
	}
	return out
}

func (f *patternFilter) Status() Status {
	details := map[string]string{}
	if len(f.compiled) > 0 {
		details["patterns"] = strings.Join(f.sources(), ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
