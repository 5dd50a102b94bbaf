// Package gemini scores sentence polarity with a Gemini model.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Scorer asks the model for the polarity of a sentence. Results are memoised per
// sentence for the lifetime of the scorer.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int

	mu   sync.Mutex
	memo map[string]float64
}

func NewScorer(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		memo:      make(map[string]float64),
	}
}

// Polarity returns the sentence tone in [-1, 1].
func (s *Scorer) Polarity(ctx context.Context, sentence string) (float64, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return 0, nil
	}

	s.mu.Lock()
	if v, ok := s.memo[sentence]; ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	prompt := buildPrompt(sentence)

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("sentence_preview", logger.TruncateForLog(sentence, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	value, err := parseResponse(raw)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.memo[sentence] = value
	s.mu.Unlock()

	return value, nil
}

func buildPrompt(sentence string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Sentence:\n{{SENTENCE}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{SENTENCE}}", sentence)
}

func parseResponse(raw string) (float64, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return 0, fmt.Errorf("parse gemini response: %w", err)
	}

	value := coerceFloat(data["polarity"])
	if math.IsNaN(value) {
		return 0, fmt.Errorf("gemini response has no numeric polarity: %q", cleaned)
	}

	return math.Max(-1, math.Min(1, value)), nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
