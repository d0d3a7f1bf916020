package quality

import (
	"fmt"
	"strings"
	"time"
)

type OverlapChecker struct {
	MinOverlapThreshold float64
}

func NewOverlapChecker() *OverlapChecker {
	return &OverlapChecker{MinOverlapThreshold: 0.1}
}

// Check scores the share of the listing's own vocabulary (description,
// neighborhood and neighborhood description) that the rewrite keeps. A rewrite
// that drifts away from the property scores below the threshold.
func (c *OverlapChecker) Check(subject Subject) (result Result) {
	result = Result{Name: "overlap-checker"}
	now := time.Now()
	defer func() { result.Duration = time.Since(now) }()

	l := subject.Listing
	source := extractUniqueTokens(tokenize(l.Neighborhood + " " + l.Description + " " + l.NeighborhoodDescription))
	if len(source) == 0 {
		result.Score = 1.0
		result.Reason = "No listing text to compare"
		return result
	}

	rewritten := extractUniqueTokens(tokenize(subject.Rewritten))
	if len(rewritten) == 0 {
		result.Reason = "Empty description"
		return result
	}

	count := 0
	for token := range rewritten {
		if source[token] {
			count++
		}
	}

	// relative to the smaller vocabulary so a short rewrite is not penalized
	denominator := min(len(source), len(rewritten))
	result.Score = float64(count) / float64(denominator)
	if result.Score < c.MinOverlapThreshold {
		result.Reason = fmt.Sprintf("Low keyword overlap: %.0f%% of terms shared with the listing", result.Score*100)
	} else {
		result.Reason = "There is a good overlap"
	}
	return result
}

func extractUniqueTokens(tokens []string) map[string]bool {
	unique := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		unique[t] = true
	}
	return unique
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"and": true, "or": true, "this": true, "that": true, "it": true,
	"its": true, "your": true, "you": true, "our": true, "we": true,
	"of": true, "at": true, "by": true, "for": true, "with": true,
	"to": true, "from": true, "in": true, "on": true,
}

func tokenize(s string) []string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:()[]{}\"'", r) {
			return -1
		}
		return r
	}, s)

	tokens := []string{}
	for word := range strings.FieldsSeq(s) {
		if !stopWords[word] && len(word) > 1 {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
