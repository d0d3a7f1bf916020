package constraints

import (
	"fmt"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

// Set holds the structured constraints extracted from a query. A nil field
// means no restriction.
type Set struct {
	Budget      *int64 `json:"budget,omitempty" jsonschema:"maximum price in currency units"`
	MinBedrooms *int   `json:"min_bedrooms,omitempty" jsonschema:"minimum number of bedrooms"`
}

func (s Set) IsEmpty() bool {
	return s.Budget == nil && s.MinBedrooms == nil
}

// Allows reports whether a listing satisfies every constraint in the set.
// A listing whose price did not parse never satisfies a non-empty set.
func (s Set) Allows(l listing.Listing) bool {
	if s.IsEmpty() {
		return true
	}

	price, ok := l.Price.Amount()
	if !ok {
		return false
	}
	if s.Budget != nil && price > *s.Budget {
		return false
	}
	if s.MinBedrooms != nil && l.Bedrooms < *s.MinBedrooms {
		return false
	}
	return true
}

func (s Set) String() string {
	budget := "none"
	if s.Budget != nil {
		budget = listing.FormatAmount(*s.Budget)
	}
	bedrooms := "none"
	if s.MinBedrooms != nil {
		bedrooms = fmt.Sprintf("%d", *s.MinBedrooms)
	}
	return fmt.Sprintf("budget=%s min_bedrooms=%s", budget, bedrooms)
}

// Filter returns the listings allowed by set, in their original order.
func Filter(listings []listing.Listing, set Set) []listing.Listing {
	filtered := make([]listing.Listing, 0, len(listings))
	for _, l := range listings {
		if set.Allows(l) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
