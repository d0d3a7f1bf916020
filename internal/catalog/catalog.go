package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/povarna/generative-ai-agents/homematch/internal/generation"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/rs/zerolog"
)

// Generator produces a batch of fresh listings.
type Generator interface {
	Generate(ctx context.Context, n int) (*generation.Batch, error)
}

// Catalog is the single place where the listing store and the vector index
// change together. Writers are serialized; readers go straight to the store.
type Catalog struct {
	mu     sync.Mutex
	store  *listing.Store
	index  vectorstore.Index
	logger *zerolog.Logger
}

func New(store *listing.Store, index vectorstore.Index, logger *zerolog.Logger) *Catalog {
	return &Catalog{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Replace validates listings and makes them the current corpus. The index is
// rebuilt before the store snapshot is swapped, so a failed rebuild leaves
// both untouched.
func (c *Catalog) Replace(ctx context.Context, listings []listing.Listing) (uint64, error) {
	for i, l := range listings {
		if err := l.Validate(); err != nil {
			return 0, fmt.Errorf("listing %d: %w", i, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.index.ReplaceAll(ctx, vectorstore.Documents(listings)); err != nil {
		return 0, fmt.Errorf("failed to rebuild index: %w", err)
	}
	version := c.store.Replace(listings)

	c.logger.Info().Int("listings", len(listings)).Uint64("version", version).Msg("Catalog replaced")
	return version, nil
}

// Load reads a listings file and replaces the catalog with its valid records.
func (c *Catalog) Load(ctx context.Context, path string) (listing.LoadReport, error) {
	listings, report, err := listing.LoadFile(path, c.logger)
	if err != nil {
		return report, err
	}
	if _, err := c.Replace(ctx, listings); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Catalog) Save(path string) error {
	listings := c.store.All()
	if err := listing.SaveFile(path, listings); err != nil {
		return err
	}
	c.logger.Info().Str("file", path).Int("listings", len(listings)).Msg("Catalog saved")
	return nil
}

// Regenerate asks gen for n listings and, when at least one was produced,
// replaces the catalog with them.
func (c *Catalog) Regenerate(ctx context.Context, gen Generator, n int) (*generation.Batch, error) {
	batch, err := gen.Generate(ctx, n)
	if err != nil {
		return batch, err
	}
	if _, err := c.Replace(ctx, batch.Listings); err != nil {
		return batch, err
	}
	return batch, nil
}

func (c *Catalog) Listings() []listing.Listing {
	return c.store.All()
}

func (c *Catalog) Len() int {
	return c.store.Len()
}

func (c *Catalog) Version() uint64 {
	return c.store.Version()
}

func (c *Catalog) Fingerprint() string {
	return c.store.Fingerprint()
}
