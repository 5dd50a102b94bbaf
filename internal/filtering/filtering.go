// Package filtering runs candidate statements through an ordered list of filter steps.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Statement is a candidate statement with its extraction position.
type Statement struct {
	Text  string
	Index int
}

// Statements is the working list passed between steps.
type Statements struct {
	Items []Statement
}

// FromTexts wraps texts in extraction order.
func FromTexts(texts []string) *Statements {
	s := &Statements{Items: make([]Statement, 0, len(texts))}
	for i, text := range texts {
		s.Items = append(s.Items, Statement{Text: text, Index: i})
	}
	return s
}

// Len returns the number of statements.
func (s *Statements) Len() int {
	return len(s.Items)
}

// Texts returns the statement texts in order.
func (s *Statements) Texts() []string {
	out := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		out = append(out, item.Text)
	}
	return out
}

// keep retains the statements for which fn returns true, preserving order,
// and returns the dropped texts.
func (s *Statements) keep(fn func(Statement) bool) []string {
	var dropped []string
	kept := s.Items[:0]
	for _, item := range s.Items {
		if fn(item) {
			kept = append(kept, item)
			continue
		}
		dropped = append(dropped, item.Text)
	}
	s.Items = kept
	return dropped
}

// Filter represents a single filtering step applied to statements.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, deps Deps, s *Statements) (*Statements, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Name    string `json:"name" yaml:"name"`
	Initial int    `json:"initial" yaml:"initial"`
	Dropped int    `json:"dropped" yaml:"dropped"`
	Left    int    `json:"left" yaml:"left"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates and then executes the enabled filters sequentially, returning the
// surviving statements and one Step per executed filter.
func Run(ctx context.Context, deps Deps, steps []Filter, s *Statements) (*Statements, []Step, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	stats := make([]Step, 0, len(steps))
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		next, info, err := step.Apply(ctx, deps, s)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
		info.Name = step.Name()

		deps.Logger.Debug("filter step",
			zap.String("name", info.Name),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		s = next
		stats = append(stats, info)
	}

	return s, stats, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
