// Package tfidf is an offline embedder for the in-memory index. It needs no
// credentials and produces deterministic vectors.
package tfidf

import (
	"context"
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
)

var (
	ErrNotFitted   = errors.New("tfidf embedder has not been fitted")
	ErrEmptyCorpus = errors.New("tfidf corpus has no indexable terms")
)

// tokens keep digits so that "4 bedrooms" and "$650,000" contribute terms.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}]+)*`)

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its", "this", "that",
		"these", "those", "from", "up", "down", "over", "again", "further", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own",
		"same", "too", "very", "can", "will", "just", "should", "now", "i", "me", "my", "we", "our",
		"you", "your", "want", "looking", "would", "like",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// Embedder is an immutable TF-IDF model. The zero value is unfitted; Fit
// returns a fitted copy.
type Embedder struct {
	vocabulary map[string]int
	idf        []float64
}

var (
	_ embedding.Embedder = (*Embedder)(nil)
	_ embedding.Fitter   = (*Embedder)(nil)
)

func NewEmbedder() *Embedder {
	return &Embedder{}
}

func (e *Embedder) Name() string { return "tfidf" }

func (e *Embedder) Dimension() int { return len(e.idf) }

// Fit builds the vocabulary and smoothed IDF weights from corpus.
func (e *Embedder) Fit(corpus []string) (embedding.Embedder, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyCorpus
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	fitted := &Embedder{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		fitted.vocabulary[term] = i
		fitted.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return fitted, nil
}

// Embed returns one L2-normalized vector per text. Texts without known terms
// map to the zero vector.
func (e *Embedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if len(e.idf) == 0 {
		return nil, ErrNotFitted
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.vector(text)
	}
	return out, nil
}

func (e *Embedder) vector(text string) []float32 {
	vec := make([]float32, len(e.idf))

	tf := make(map[int]int)
	total := 0
	for _, tok := range tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}

	for idx, count := range tf {
		vec[idx] = float32(float64(count) / float64(total) * e.idf[idx])
	}
	embedding.Normalize(vec)
	return vec
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}
