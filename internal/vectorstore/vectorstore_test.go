package vectorstore

import (
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

func TestDocuments(t *testing.T) {
	ls := []listing.Listing{
		{Neighborhood: "Downtown", Price: listing.NewPrice(900000), Bedrooms: 2},
		{Neighborhood: "Seaside", Price: listing.NewPrice(1200000), Bedrooms: 3},
	}

	docs := Documents(ls)
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	for i, d := range docs {
		if d.ID != listing.ID(i) {
			t.Errorf("document %d: got id %q, want %q", i, d.ID, listing.ID(i))
		}
		if d.Listing.Neighborhood != ls[i].Neighborhood {
			t.Errorf("document %d: listing not carried as metadata", i)
		}
		if !strings.HasPrefix(d.Text, "Neighborhood: "+ls[i].Neighborhood+"\n") {
			t.Errorf("document %d: unexpected text %q", i, d.Text)
		}
	}

	if got := Documents(nil); len(got) != 0 {
		t.Errorf("got %d documents for empty input", len(got))
	}
}
