// Package similarity scores text relevance with tf-idf weighted cosine similarity.
package similarity

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned by Fit when no document yields a scorable term.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Options tunes the vectoriser.
type Options struct {
	// SublinearTF replaces a raw term count tf with 1 + ln(tf).
	SublinearTF bool
}

// Vector is a sparse, L2-normalised document vector keyed by vocabulary index.
type Vector map[int]float64

// Model is a fitted vocabulary with smoothed inverse document frequencies.
type Model struct {
	vocab map[string]int
	idf   []float64
	opts  Options
}

// Tokenize lower-cases text and returns its non stop word terms in order.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if IsStopWord(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Fit builds the vocabulary over docs. idf is ln((1+n)/(1+df)) + 1.
func Fit(docs []string, opts Options) (*Model, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range Tokenize(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	m := &Model{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
		opts:  opts,
	}
	for i, term := range terms {
		m.vocab[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return m, nil
}

// Size returns the number of vocabulary terms.
func (m *Model) Size() int {
	return len(m.vocab)
}

// Transform projects text into the fitted vocabulary. Unknown terms are ignored.
func (m *Model) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range Tokenize(text) {
		if idx, ok := m.vocab[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		if m.opts.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		w := tf * m.idf[idx]
		counts[idx] = w
		norm += w * w
	}

	if norm == 0 {
		return Vector{}
	}

	norm = math.Sqrt(norm)
	for idx := range counts {
		counts[idx] /= norm
	}

	return Vector(counts)
}

// Cosine returns the cosine similarity of two vectors, 0 when either is empty.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}

	var dot, na, nb float64
	for idx, w := range a {
		dot += w * b[idx]
		na += w * w
	}
	for _, w := range b {
		nb += w * w
	}

	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
