package quality

import (
	"time"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

// Subject is a rewritten listing description under review.
type Subject struct {
	Listing   listing.Listing
	Rewritten string
}

type Result struct {
	Name     string        `json:"name"`
	Score    float64       `json:"score"`
	Reason   string        `json:"reason"`
	Duration time.Duration `json:"duration"`
}

type Checker interface {
	Check(subject Subject) Result
}
