package quality

import (
	"fmt"
	"time"
)

type LengthChecker struct {
	MinRatio float64
	MaxRatio float64
}

func NewLengthChecker() *LengthChecker {
	return &LengthChecker{MinRatio: 0.5, MaxRatio: 5.0}
}

// Check compares the rewritten description's length with the original one.
// A rewrite shorter than MinRatio times the original scores 0, one longer
// than MaxRatio times scores 0.5.
func (c *LengthChecker) Check(subject Subject) (result Result) {
	result = Result{Name: "length-checker"}
	now := time.Now()
	defer func() { result.Duration = time.Since(now) }()

	originalLength := len(subject.Listing.Description)
	if originalLength == 0 {
		result.Score = 1.0
		result.Reason = "No original description to compare"
		return result
	}

	ratio := float64(len(subject.Rewritten)) / float64(originalLength)
	switch {
	case ratio < c.MinRatio:
		result.Reason = fmt.Sprintf("Rewrite is too short: %.1fx the original", ratio)
	case ratio > c.MaxRatio:
		result.Score = 0.5
		result.Reason = fmt.Sprintf("Rewrite is too long: %.1fx the original", ratio)
	default:
		result.Score = 1.0
		result.Reason = "Length is acceptable"
	}
	return result
}
