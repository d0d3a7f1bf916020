package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidCount = errors.New("listing count must be at least 1")
	ErrNoListings   = errors.New("generation produced no listings")
)

const DefaultMaxConsecutiveFailures = 5

// capacityHint bounds the up-front allocation for a batch; larger batches
// grow as listings arrive.
const capacityHint = 64

// ListingGenerator produces one listing for the given attributes.
type ListingGenerator interface {
	GenerateOne(ctx context.Context, number int, attrs Attributes) (listing.Listing, error)
}

// Batch is the outcome of one Generate call.
type Batch struct {
	Listings  []listing.Listing `json:"listings"`
	Requested int               `json:"requested"`
	Failures  int               `json:"failures"`
	// Aborted is set when the consecutive failure budget ran out.
	Aborted bool `json:"aborted"`
}

// Orchestrator runs one Generate at a time because the Picker it owns keeps
// per-batch state.
type Orchestrator struct {
	mu          sync.Mutex
	picker      *Picker
	generator   ListingGenerator
	maxFailures int
	logger      *zerolog.Logger
}

func NewOrchestrator(picker *Picker, generator ListingGenerator, maxConsecutiveFailures int, logger *zerolog.Logger) *Orchestrator {
	if maxConsecutiveFailures < 1 {
		maxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}
	return &Orchestrator{
		picker:      picker,
		generator:   generator,
		maxFailures: maxConsecutiveFailures,
		logger:      logger,
	}
}

// Generate makes one attempt per listing number 1..n. It stops early after
// maxFailures consecutive failures; a success resets the count. A batch with
// at least one listing is a success.
func (o *Orchestrator) Generate(ctx context.Context, n int) (*Batch, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.picker.Reset()
	batch := &Batch{Requested: n, Listings: make([]listing.Listing, 0, min(n, capacityHint))}
	consecutive := 0

	o.logger.Info().Int("count", n).Msg("Generating listings")

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled after %d listings: %w", len(batch.Listings), err)
		}

		attrs, err := o.picker.Pick()
		if err == nil {
			var l listing.Listing
			l, err = o.generator.GenerateOne(ctx, i, attrs)
			if err == nil {
				batch.Listings = append(batch.Listings, l)
				consecutive = 0
				o.logger.Debug().Int("listing", i).Str("neighborhood", l.Neighborhood).Msg("Listing generated")
				continue
			}
		}

		batch.Failures++
		consecutive++
		o.logger.Warn().Err(err).Int("listing", i).Int("consecutive_failures", consecutive).Msg("Generation failed")

		if consecutive >= o.maxFailures {
			batch.Aborted = true
			o.logger.Error().Int("max_failures", o.maxFailures).Msg("Too many consecutive failures, stopping generation")
			break
		}
	}

	o.logger.Info().
		Int("generated", len(batch.Listings)).
		Int("requested", n).
		Float64("success_rate", float64(len(batch.Listings))/float64(n)*100).
		Msg("Generation finished")

	if len(batch.Listings) == 0 {
		return batch, ErrNoListings
	}

	logDiversity(o.logger, batch.Listings)
	return batch, nil
}

func logDiversity(logger *zerolog.Logger, ls []listing.Listing) {
	report := diversity.Analyze(ls)

	event := logger.Info().
		Int("unique_neighborhoods", report.UniqueNeighborhoods).
		Int("unique_prices", report.UniquePrices).
		Int("bedroom_configurations", report.UniqueBedrooms).
		Int("total", report.TotalListings)
	if len(report.Duplicates.Neighborhoods) > 0 {
		event = event.Interface("duplicate_neighborhoods", report.Duplicates.Neighborhoods)
	}
	event.Msg("Diversity analysis")
}
