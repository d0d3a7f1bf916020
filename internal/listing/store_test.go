package listing

import (
	"sync"
	"testing"
)

func TestStore_Replace(t *testing.T) {
	store := NewStore()
	if store.Len() != 0 || store.Version() != 0 {
		t.Fatalf("new store: len=%d version=%d", store.Len(), store.Version())
	}

	input := []Listing{
		{Neighborhood: "Arts Quarter", Price: NewPrice(400000)},
		{Neighborhood: "Cedar Park", Price: NewPrice(550000)},
	}
	version := store.Replace(input)
	if version != 1 {
		t.Errorf("version: got %d, want 1", version)
	}

	// Mutating the caller's slice must not leak into the store.
	input[0].Neighborhood = "changed"
	got := store.All()
	if got[0].Neighborhood != "Arts Quarter" {
		t.Errorf("store was mutated through caller slice: %q", got[0].Neighborhood)
	}

	got[1].Neighborhood = "changed"
	if store.All()[1].Neighborhood != "Cedar Park" {
		t.Error("store was mutated through returned slice")
	}

	store.Replace(nil)
	if store.Len() != 0 || store.Version() != 2 {
		t.Errorf("after empty replace: len=%d version=%d", store.Len(), store.Version())
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	store := NewStore()
	small := []Listing{{Neighborhood: "a"}}
	large := []Listing{{Neighborhood: "b"}, {Neighborhood: "b"}, {Neighborhood: "b"}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				listings, _ := store.Snapshot()
				if len(listings) == 0 {
					continue
				}
				first := listings[0].Neighborhood
				for _, l := range listings {
					if l.Neighborhood != first {
						t.Errorf("torn snapshot: %q vs %q", l.Neighborhood, first)
						return
					}
				}
			}
		}()
	}

	for j := 0; j < 200; j++ {
		if j%2 == 0 {
			store.Replace(small)
		} else {
			store.Replace(large)
		}
	}
	wg.Wait()
}

func TestStore_Fingerprint(t *testing.T) {
	oldTown := []Listing{{Neighborhood: "Old Town", Price: NewPrice(450000), Bedrooms: 2}}
	harbor := []Listing{{Neighborhood: "New Harbor", Price: NewPrice(450000), Bedrooms: 2}}

	first := NewStore()
	second := NewStore()
	if first.Fingerprint() != second.Fingerprint() {
		t.Error("empty stores should share a fingerprint")
	}

	first.Replace(oldTown)
	second.Replace(harbor)
	if first.Version() != second.Version() {
		t.Fatalf("versions should match: %d vs %d", first.Version(), second.Version())
	}
	if first.Fingerprint() == second.Fingerprint() {
		t.Error("different corpora at the same version share a fingerprint")
	}

	second.Replace(oldTown)
	if first.Fingerprint() != second.Fingerprint() {
		t.Error("same corpus should give the same fingerprint regardless of version")
	}
}
