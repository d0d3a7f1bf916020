package vectorstore

import (
	"context"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

// Document is one indexed listing. Text is what gets embedded; Listing is
// carried as metadata so that matches can be returned without a second
// lookup.
type Document struct {
	ID      string
	Text    string
	Listing listing.Listing
}

// Match is a ranked query hit. Higher Score is more similar.
type Match struct {
	ID      string
	Score   float64
	Listing listing.Listing
}

// Index is a similarity index over listing documents.
type Index interface {
	// ReplaceAll drops the current contents and indexes docs. On error the
	// previous contents stay queryable.
	ReplaceAll(ctx context.Context, docs []Document) error
	// Query returns at most k matches ordered by descending similarity.
	Query(ctx context.Context, text string, k int) ([]Match, error)
}

// Documents builds index documents for ls in store order.
func Documents(ls []listing.Listing) []Document {
	docs := make([]Document, len(ls))
	for i, l := range ls {
		docs[i] = Document{
			ID:      listing.ID(i),
			Text:    l.Document(),
			Listing: l,
		}
	}
	return docs
}
