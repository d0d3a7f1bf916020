package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/rs/zerolog"
)

type state struct {
	embedder embedding.Embedder
	docs     []vectorstore.Document
	vectors  [][]float32
}

// Index is a brute-force cosine index held in memory. When the configured
// embedder is an embedding.Fitter it is refitted on every ReplaceAll.
type Index struct {
	mu       sync.RWMutex
	embedder embedding.Embedder
	current  *state
	logger   *zerolog.Logger
}

var _ vectorstore.Index = (*Index)(nil)

func NewIndex(embedder embedding.Embedder, logger *zerolog.Logger) *Index {
	return &Index{
		embedder: embedder,
		current:  &state{embedder: embedder},
		logger:   logger,
	}
}

func (i *Index) ReplaceAll(ctx context.Context, docs []vectorstore.Document) error {
	if len(docs) == 0 {
		i.swap(&state{embedder: i.embedder})
		i.logger.Debug().Msg("Index cleared")
		return nil
	}

	texts := make([]string, len(docs))
	for n, d := range docs {
		texts[n] = d.Text
	}

	embedder := i.embedder
	if fitter, ok := embedder.(embedding.Fitter); ok {
		fitted, err := fitter.Fit(texts)
		if err != nil {
			return fmt.Errorf("failed to fit %s embedder: %w", embedder.Name(), err)
		}
		embedder = fitted
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	next := &state{
		embedder: embedder,
		docs:     append([]vectorstore.Document(nil), docs...),
		vectors:  vectors,
	}
	i.swap(next)

	i.logger.Debug().
		Str("embedder", embedder.Name()).
		Int("documents", len(docs)).
		Int("dimension", embedder.Dimension()).
		Msg("Index replaced")
	return nil
}

func (i *Index) Query(ctx context.Context, text string, k int) ([]vectorstore.Match, error) {
	i.mu.RLock()
	s := i.current
	i.mu.RUnlock()

	if len(s.docs) == 0 || k <= 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the query", len(vecs))
	}
	query := vecs[0]

	scores := make([]float64, len(s.vectors))
	for n, v := range s.vectors {
		scores[n] = embedding.Cosine(query, v)
	}

	// ties keep document order
	order := make([]int, len(scores))
	for n := range order {
		order[n] = n
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	k = min(k, len(order))
	matches := make([]vectorstore.Match, k)
	for n := 0; n < k; n++ {
		d := s.docs[order[n]]
		matches[n] = vectorstore.Match{ID: d.ID, Score: scores[order[n]], Listing: d.Listing}
	}
	return matches, nil
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.current.docs)
}

func (i *Index) swap(next *state) {
	i.mu.Lock()
	i.current = next
	i.mu.Unlock()
}
