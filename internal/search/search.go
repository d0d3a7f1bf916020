package search

import (
	"context"
	"errors"
	"strings"

	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=search.go -destination=mocks/mock_search.go -package=mocks

var (
	ErrInvalidCount = errors.New("desired count must be at least 1")
	ErrEmptyQuery   = errors.New("query must not be empty")
)

type Rewriter interface {
	Rewrite(ctx context.Context, query string) string
}

type Retriever interface {
	Retrieve(ctx context.Context, text string, k int) []listing.Listing
}

// Corpus is the listing collection being searched.
type Corpus interface {
	Len() int
	Version() uint64
	Fingerprint() string
}

// Key identifies a cached search. Corpus is the content fingerprint of the
// listings searched, so entries written by another process or before a
// restart are only reused for the same listings.
type Key struct {
	Corpus  string
	Count   int
	Rewrite bool
	Query   string
}

type ResultCache interface {
	Get(ctx context.Context, key Key) (*Result, bool)
	Set(ctx context.Context, key Key, result *Result)
}

type Result struct {
	Query          string            `json:"query"`
	RewrittenQuery string            `json:"rewritten_query,omitempty"`
	Constraints    constraints.Set   `json:"constraints"`
	Candidates     int               `json:"candidates"`
	Matched        int               `json:"matched"`
	Version        uint64            `json:"version"`
	Listings       []listing.Listing `json:"listings"`
	Cached         bool              `json:"cached"`
}

type Orchestrator struct {
	retriever Retriever
	corpus    Corpus
	rewriter  Rewriter
	cache     ResultCache
	logger    *zerolog.Logger
}

type Option func(*Orchestrator)

// WithRewriter enables LLM query rewriting for retrieval. Constraints are
// always extracted from the raw query.
func WithRewriter(r Rewriter) Option {
	return func(o *Orchestrator) {
		o.rewriter = r
	}
}

func WithCache(c ResultCache) Option {
	return func(o *Orchestrator) {
		o.cache = c
	}
}

func NewOrchestrator(retriever Retriever, corpus Corpus, logger *zerolog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		retriever: retriever,
		corpus:    corpus,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search returns up to desiredCount listings that are semantically relevant
// to rawQuery and satisfy the budget and bedroom constraints it states.
// No match is an empty result, not an error.
func (o *Orchestrator) Search(ctx context.Context, rawQuery string, desiredCount int) (*Result, error) {
	if desiredCount < 1 {
		return nil, ErrInvalidCount
	}
	if strings.TrimSpace(rawQuery) == "" {
		return nil, ErrEmptyQuery
	}

	version := o.corpus.Version()
	var key Key
	if o.cache != nil {
		key = Key{Corpus: o.corpus.Fingerprint(), Count: desiredCount, Rewrite: o.rewriter != nil, Query: rawQuery}
		if cached, ok := o.cache.Get(ctx, key); ok {
			cached.Cached = true
			cached.Version = version
			o.logger.Debug().Str("query", rawQuery).Str("corpus", key.Corpus).Msg("Search served from cache")
			return cached, nil
		}
	}

	result := &Result{
		Query:       rawQuery,
		Constraints: constraints.Extract(rawQuery),
		Version:     version,
		Listings:    []listing.Listing{},
	}

	retrievalQuery := rawQuery
	if o.rewriter != nil {
		retrievalQuery = o.rewriter.Rewrite(ctx, rawQuery)
		result.RewrittenQuery = retrievalQuery
	}

	candidates := o.retriever.Retrieve(ctx, retrievalQuery, o.corpus.Len())
	matched := constraints.Filter(candidates, result.Constraints)

	result.Candidates = len(candidates)
	result.Matched = len(matched)
	if len(matched) > desiredCount {
		matched = matched[:desiredCount]
	}
	result.Listings = append(result.Listings, matched...)

	o.logger.Info().
		Str("query", rawQuery).
		Str("retrieval_query", retrievalQuery).
		Str("constraints", result.Constraints.String()).
		Int("candidates", result.Candidates).
		Int("matched", result.Matched).
		Int("returned", len(result.Listings)).
		Msg("Search complete")

	if o.cache != nil {
		o.cache.Set(ctx, key, result)
	}
	return result, nil
}
