package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/rs/zerolog"
)

type fixedCorpus int

func (c fixedCorpus) Len() int { return int(c) }

type fakeIndex struct {
	matches []vectorstore.Match
	err     error
	calls   int
	lastK   int
}

func (f *fakeIndex) ReplaceAll(context.Context, []vectorstore.Document) error { return nil }

func (f *fakeIndex) Query(_ context.Context, _ string, k int) ([]vectorstore.Match, error) {
	f.calls++
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func matches(names ...string) []vectorstore.Match {
	out := make([]vectorstore.Match, len(names))
	for i, n := range names {
		out[i] = vectorstore.Match{ID: listing.ID(i), Listing: listing.Listing{Neighborhood: n}}
	}
	return out
}

func TestRetrieve(t *testing.T) {
	tests := []struct {
		name       string
		corpus     int
		index      *fakeIndex
		k          int
		wantK      int
		wantCalls  int
		wantResult []string
	}{
		{
			name:       "empty corpus never calls the index",
			corpus:     0,
			index:      &fakeIndex{matches: matches("A")},
			k:          5,
			wantCalls:  0,
			wantResult: []string{},
		},
		{
			name:       "k clamped to corpus size",
			corpus:     2,
			index:      &fakeIndex{matches: matches("A", "B")},
			k:          10,
			wantK:      2,
			wantCalls:  1,
			wantResult: []string{"A", "B"},
		},
		{
			name:       "k below one clamped to one",
			corpus:     3,
			index:      &fakeIndex{matches: matches("A")},
			k:          0,
			wantK:      1,
			wantCalls:  1,
			wantResult: []string{"A"},
		},
		{
			name:       "index returning too many is truncated",
			corpus:     3,
			index:      &fakeIndex{matches: matches("A", "B", "C")},
			k:          2,
			wantK:      2,
			wantCalls:  1,
			wantResult: []string{"A", "B"},
		},
		{
			name:       "index failure yields empty result",
			corpus:     3,
			index:      &fakeIndex{err: errors.New("connection refused")},
			k:          3,
			wantK:      3,
			wantCalls:  1,
			wantResult: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.Nop()
			engine := NewEngine(fixedCorpus(tt.corpus), tt.index, &logger)

			got := engine.Retrieve(context.Background(), "quiet suburb", tt.k)

			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if tt.index.calls != tt.wantCalls {
				t.Errorf("index calls: got %d, want %d", tt.index.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && tt.index.lastK != tt.wantK {
				t.Errorf("k passed to index: got %d, want %d", tt.index.lastK, tt.wantK)
			}
			if len(got) != len(tt.wantResult) {
				t.Fatalf("results: got %d, want %d", len(got), len(tt.wantResult))
			}
			for i, name := range tt.wantResult {
				if got[i].Neighborhood != name {
					t.Errorf("result %d: got %q, want %q", i, got[i].Neighborhood, name)
				}
			}
		})
	}
}
