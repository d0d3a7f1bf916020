package mcpadapter

import (
	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
)

// Tool outputs use plain fields so that the inferred output schema matches
// the JSON the tools actually emit.

type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text buyer preferences, e.g. 3 bedroom family home under $800k"`
	Count int    `json:"count,omitempty" jsonschema:"maximum listings to return (default from config)"`
}

type ConstraintsInput struct {
	Query string `json:"query" jsonschema:"free-text buyer preferences"`
}

type DiversityInput struct{}

type PersonalizeInput struct {
	Preferences string `json:"preferences" jsonschema:"buyer preferences used both to find and to tailor listings"`
	Count       int    `json:"count,omitempty" jsonschema:"listings to personalize (default from config)"`
}

type ListingOutput struct {
	Neighborhood            string `json:"neighborhood"`
	Price                   string `json:"price"`
	Bedrooms                int    `json:"bedrooms"`
	Bathrooms               int    `json:"bathrooms"`
	HouseSize               string `json:"house_size"`
	Description             string `json:"description"`
	NeighborhoodDescription string `json:"neighborhood_description"`
}

type ConstraintsOutput struct {
	Budget      *int64 `json:"budget,omitempty" jsonschema:"maximum price in currency units"`
	MinBedrooms *int   `json:"min_bedrooms,omitempty" jsonschema:"minimum number of bedrooms"`
	Summary     string `json:"summary"`
}

type SearchOutput struct {
	Query          string            `json:"query"`
	RewrittenQuery string            `json:"rewritten_query,omitempty"`
	Constraints    ConstraintsOutput `json:"constraints"`
	Matched        int               `json:"matched" jsonschema:"listings satisfying the constraints before truncation"`
	Listings       []ListingOutput   `json:"listings"`
	Cached         bool              `json:"cached"`
}

type PersonalizedListing struct {
	Listing      ListingOutput `json:"listing"`
	Description  string        `json:"personalized_description"`
	Personalized bool          `json:"personalized"`

	// QualityVerdict is empty when no quality checks ran.
	QualityVerdict string `json:"quality_verdict,omitempty"`
}

type PersonalizeOutput struct {
	Preferences string                `json:"preferences"`
	Results     []PersonalizedListing `json:"results"`
}

func toListingOutput(l listing.Listing) ListingOutput {
	return ListingOutput{
		Neighborhood:            l.Neighborhood,
		Price:                   l.Price.String(),
		Bedrooms:                l.Bedrooms,
		Bathrooms:               l.Bathrooms,
		HouseSize:               l.HouseSize,
		Description:             l.Description,
		NeighborhoodDescription: l.NeighborhoodDescription,
	}
}

func toConstraintsOutput(set constraints.Set) ConstraintsOutput {
	return ConstraintsOutput{
		Budget:      set.Budget,
		MinBedrooms: set.MinBedrooms,
		Summary:     set.String(),
	}
}

func toSearchOutput(r *search.Result) SearchOutput {
	out := SearchOutput{
		Query:          r.Query,
		RewrittenQuery: r.RewrittenQuery,
		Constraints:    toConstraintsOutput(r.Constraints),
		Matched:        r.Matched,
		Listings:       make([]ListingOutput, 0, len(r.Listings)),
		Cached:         r.Cached,
	}
	for _, l := range r.Listings {
		out.Listings = append(out.Listings, toListingOutput(l))
	}
	return out
}

func toPersonalizedListing(r personalize.Result) PersonalizedListing {
	out := PersonalizedListing{
		Listing:      toListingOutput(r.Listing),
		Description:  r.Description,
		Personalized: r.Personalized,
	}
	if r.Review != nil {
		out.QualityVerdict = string(r.Review.Verdict)
	}
	return out
}
