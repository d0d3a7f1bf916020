package quality

import (
	"fmt"
	"regexp"
	"time"

	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

var dollarAmount = regexp.MustCompile(`(?i)\$\s*[\d,]+(?:\.\d+)?\s*[km]?\b`)

// FactChecker fails a rewrite that states a price or bedroom count different
// from the listing's.
type FactChecker struct {
}

func NewFactChecker() *FactChecker {
	return &FactChecker{}
}

func (c *FactChecker) Check(subject Subject) (result Result) {
	result = Result{Name: "fact-checker"}
	now := time.Now()
	defer func() { result.Duration = time.Since(now) }()

	if price, ok := subject.Listing.Price.Amount(); ok {
		for _, mention := range dollarAmount.FindAllString(subject.Rewritten, -1) {
			amount := constraints.ExtractBudget(mention)
			if amount != nil && *amount != price {
				result.Reason = fmt.Sprintf("Mentions %s but the listing price is %s", listing.FormatAmount(*amount), subject.Listing.Price)
				return result
			}
		}
	}

	if bedrooms := constraints.ExtractBedrooms(subject.Rewritten); bedrooms != nil && *bedrooms != subject.Listing.Bedrooms {
		result.Reason = fmt.Sprintf("Mentions %d bedrooms but the listing has %d", *bedrooms, subject.Listing.Bedrooms)
		return result
	}

	result.Score = 1.0
	result.Reason = "Facts are consistent with the listing"
	return result
}
