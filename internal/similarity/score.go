package similarity

import (
	"math"
	"strings"
)

// DocumentScore compares two whole documents on a vocabulary fitted over both of them,
// with sub-linear term frequencies. The result is a 0-100 percentage rounded to 2 decimals
// and is symmetric in its arguments.
func DocumentScore(a, b string) float64 {
	model, err := Fit([]string{a, b}, Options{SublinearTF: true})
	if err != nil {
		return 0
	}

	return round2(Cosine(model.Transform(a), model.Transform(b)) * 100)
}

// StatementScore scores one short statement against a reference text. The vocabulary
// is anchored on the reference only, so terms the reference never uses do not count.
func StatementScore(statement, reference string) float64 {
	return NewStatementScorer(reference).Score(statement)
}

// StatementScorer reuses one fitted reference model across many statements.
type StatementScorer struct {
	model     *Model
	reference Vector
}

// NewStatementScorer fits the reference text once. A reference without scorable terms
// produces a scorer that always returns 0.
func NewStatementScorer(reference string) *StatementScorer {
	model, err := Fit([]string{reference}, Options{})
	if err != nil {
		return &StatementScorer{}
	}

	return &StatementScorer{
		model:     model,
		reference: model.Transform(reference),
	}
}

// Score returns the statement's cosine similarity to the reference as a percentage.
func (s *StatementScorer) Score(statement string) float64 {
	if strings.TrimSpace(statement) == "" || s == nil || s.model == nil {
		return 0
	}

	return Cosine(s.model.Transform(statement), s.reference) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
