package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync/atomic"
)

type snapshot struct {
	listings    []Listing
	version     uint64
	fingerprint string
}

// Store holds the current ordered set of listings. It is replaced wholesale,
// never mutated in place, so readers always see a complete snapshot.
type Store struct {
	current atomic.Pointer[snapshot]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(&snapshot{fingerprint: Fingerprint(nil)})
	return s
}

// Replace swaps in a copy of listings and returns the new version.
func (s *Store) Replace(listings []Listing) uint64 {
	next := &snapshot{listings: slices.Clone(listings), fingerprint: Fingerprint(listings)}
	for {
		prev := s.current.Load()
		next.version = prev.version + 1
		if s.current.CompareAndSwap(prev, next) {
			return next.version
		}
	}
}

// All returns a copy of the listings in insertion order.
func (s *Store) All() []Listing {
	listings, _ := s.Snapshot()
	return listings
}

// Snapshot returns a copy of the listings together with the version they
// belong to.
func (s *Store) Snapshot() ([]Listing, uint64) {
	snap := s.current.Load()
	return slices.Clone(snap.listings), snap.version
}

func (s *Store) Len() int {
	return len(s.current.Load().listings)
}

// Version counts replacements made by this process. It starts over on every
// restart; use Fingerprint to identify a corpus across processes.
func (s *Store) Version() uint64 {
	return s.current.Load().version
}

// Fingerprint identifies the current corpus by content.
func (s *Store) Fingerprint() string {
	return s.current.Load().fingerprint
}

// Fingerprint hashes the indexed text of ls in order. Two processes holding
// the same listings in the same order get the same value.
func Fingerprint(ls []Listing) string {
	h := sha256.New()
	for _, l := range ls {
		h.Write([]byte(l.Document()))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
