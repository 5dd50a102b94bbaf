package filtering

import (
	"context"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"
)

type minLengthFilter struct {
	min int
}

// NewMinLength creates a filter that removes statements shorter than min characters.
func NewMinLength(min int) Filter {
	return &minLengthFilter{min: min}
}

func (f *minLengthFilter) Name() string { return "min_length" }

func (f *minLengthFilter) Disable(string) {}

func (f *minLengthFilter) IsEnabled() bool { return true }

func (f *minLengthFilter) Validate() error { return nil }

func (f *minLengthFilter) Apply(_ context.Context, deps Deps, s *Statements) (*Statements, Step, error) {
	initial := s.Len()
	if f.min <= 0 {
		return s, Step{Initial: initial, Left: s.Len()}, nil
	}

	dropped := s.keep(func(st Statement) bool {
		return utf8.RuneCountInString(st.Text) >= f.min
	})

	if len(dropped) > 0 {
		deps.Logger.Debug("dropping short statements",
			zap.Int("min_length", f.min),
			zap.Strings("dropped", dropped),
		)
	}

	return s, Step{Initial: initial, Dropped: len(dropped), Left: s.Len()}, nil
}

func (f *minLengthFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: true, Details: map[string]string{"min": strconv.Itoa(f.min)}}
}
