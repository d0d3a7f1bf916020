package diversity

import (
	"math"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

const emptyMessage = "no listings to analyze"

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Duplicates maps a value to its occurrence count, for values seen more
// than once.
type Duplicates struct {
	Neighborhoods map[string]int `json:"neighborhoods"`
	Prices        map[string]int `json:"prices"`
}

// Report summarizes how varied a set of listings is.
type Report struct {
	TotalListings       int        `json:"total_listings"`
	UniqueNeighborhoods int        `json:"unique_neighborhoods"`
	UniquePrices        int        `json:"unique_prices"`
	UniqueBedrooms      int        `json:"unique_bedrooms"`
	BedroomRange        Range      `json:"bedroom_range"`
	BathroomRange       Range      `json:"bathroom_range"`
	Duplicates          Duplicates `json:"duplicates"`
	Score               float64    `json:"diversity_score"`
	Grade               string     `json:"quality_grade"`
	Message             string     `json:"message,omitempty"`
}

// Empty reports whether there was nothing to analyze.
func (r Report) Empty() bool {
	return r.TotalListings == 0
}

// Analyze scores listings as
//
//	40*uniqueNeighborhoods/total + 40*uniquePrices/total + 20*min(uniqueBedrooms, 4)/min(total, 4)
//
// rounded to one decimal. The grade comes from the unrounded score. The
// bedroom term is normalized by what the batch size allows, so a single
// listing scores 100.
func Analyze(listings []listing.Listing) Report {
	if len(listings) == 0 {
		return Report{Message: emptyMessage}
	}

	neighborhoods := make(map[string]int)
	prices := make(map[string]int)
	bedrooms := make(map[int]struct{})

	first := listings[0]
	report := Report{
		TotalListings: len(listings),
		BedroomRange:  Range{Min: first.Bedrooms, Max: first.Bedrooms},
		BathroomRange: Range{Min: first.Bathrooms, Max: first.Bathrooms},
	}

	for _, l := range listings {
		neighborhoods[l.Neighborhood]++
		prices[l.Price.String()]++
		bedrooms[l.Bedrooms] = struct{}{}

		report.BedroomRange.Min = min(report.BedroomRange.Min, l.Bedrooms)
		report.BedroomRange.Max = max(report.BedroomRange.Max, l.Bedrooms)
		report.BathroomRange.Min = min(report.BathroomRange.Min, l.Bathrooms)
		report.BathroomRange.Max = max(report.BathroomRange.Max, l.Bathrooms)
	}

	report.UniqueNeighborhoods = len(neighborhoods)
	report.UniquePrices = len(prices)
	report.UniqueBedrooms = len(bedrooms)
	report.Duplicates = Duplicates{
		Neighborhoods: repeated(neighborhoods),
		Prices:        repeated(prices),
	}

	total := float64(len(listings))
	score := 40*float64(report.UniqueNeighborhoods)/total +
		40*float64(report.UniquePrices)/total +
		20*float64(min(report.UniqueBedrooms, 4))/float64(min(len(listings), 4))

	report.Score = math.Round(score*10) / 10
	report.Grade = Grade(score)
	return report
}

// Grade maps a score to A (>= 90), B (>= 75), C (>= 60) or D.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

func repeated(counts map[string]int) map[string]int {
	out := make(map[string]int)
	for k, v := range counts {
		if v > 1 {
			out[k] = v
		}
	}
	return out
}
