package api

import (
	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/generation"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
)

type HealthResponse struct {
	Status   string `json:"status" description:"Service status"`
	Version  string `json:"version" description:"API version"`
	Listings int    `json:"listings" description:"Listings in the current catalog"`
}

type SearchRequest struct {
	Query string `json:"query" description:"Free-text buyer preferences"`
	Count int    `json:"count,omitempty" description:"Maximum listings to return"`
}

type ConstraintsRequest struct {
	Query string `json:"query" description:"Free-text buyer preferences"`
}

type ConstraintsResponse struct {
	Query       string          `json:"query"`
	Constraints constraints.Set `json:"constraints"`
	Summary     string          `json:"summary"`
}

type ListingsResponse struct {
	Version  uint64            `json:"version"`
	Count    int               `json:"count"`
	Listings []listing.Listing `json:"listings"`
}

type ReplaceResponse struct {
	Version uint64 `json:"version"`
	Count   int    `json:"count"`
}

type GenerateRequest struct {
	Count int `json:"count,omitempty" description:"Listings to generate"`
}

type GenerateResponse struct {
	Version uint64            `json:"version"`
	Batch   *generation.Batch `json:"batch"`
}

// PersonalizeRequest tailors Listings to Preferences. When Listings is empty
// the listings are found by searching for Preferences.
type PersonalizeRequest struct {
	Preferences string            `json:"preferences" description:"Buyer preferences"`
	Count       int               `json:"count,omitempty" description:"Listings to personalize when searching"`
	Listings    []listing.Listing `json:"listings,omitempty" description:"Listings to personalize"`
}

type PersonalizeResponse struct {
	Preferences string               `json:"preferences"`
	Results     []personalize.Result `json:"results"`
}
