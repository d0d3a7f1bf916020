package retrieval

import (
	"context"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/rs/zerolog"
)

// Corpus reports the size of the listing collection the index was built from.
type Corpus interface {
	Len() int
}

// Engine ranks listings by semantic similarity using a vector index.
type Engine struct {
	corpus Corpus
	index  vectorstore.Index
	logger *zerolog.Logger
}

func NewEngine(corpus Corpus, index vectorstore.Index, logger *zerolog.Logger) *Engine {
	return &Engine{
		corpus: corpus,
		index:  index,
		logger: logger,
	}
}

// Retrieve returns up to k listings in ranking order. k is clamped to
// [1, corpus size]. Index failures are logged and yield an empty result.
func (e *Engine) Retrieve(ctx context.Context, text string, k int) []listing.Listing {
	size := e.corpus.Len()
	if size == 0 {
		e.logger.Debug().Msg("Corpus is empty, skipping index query")
		return []listing.Listing{}
	}
	k = max(1, min(k, size))

	matches, err := e.index.Query(ctx, text, k)
	if err != nil {
		e.logger.Warn().Err(err).Str("query", text).Int("k", k).Msg("Vector index query failed")
		return []listing.Listing{}
	}

	results := make([]listing.Listing, 0, min(len(matches), k))
	for _, m := range matches {
		if len(results) == k {
			break
		}
		results = append(results, m.Listing)
	}

	e.logger.Debug().Str("query", text).Int("k", k).Int("results", len(results)).Msg("Retrieved listings")
	return results
}
