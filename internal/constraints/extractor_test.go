package constraints

import (
	"strconv"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int64
		found bool
	}{
		{name: "dollar grouped", query: "a house under $650,000 please", want: 650000, found: true},
		{name: "dollar plain", query: "$1800000", want: 1800000, found: true},
		{name: "dollar large grouped", query: "My budget is $1,800,000", want: 1800000, found: true},
		{name: "dollar k suffix", query: "around $500k", want: 500000, found: true},
		{name: "dollar decimal millions", query: "$1.8M tops", want: 1800000, found: true},
		{name: "dollar exact decimal", query: "$1.15m", want: 1150000, found: true},
		{name: "dollar trailing comma", query: "up to $650,000, with a yard", want: 650000, found: true},
		{name: "dollar without digits", query: "$, nothing else 500k", found: false},
		{name: "grouped without sign", query: "spend 1,800,000 at most", want: 1800000, found: true},
		{name: "bare k", query: "500k", want: 500000, found: true},
		{name: "bare millions", query: "1.8M", want: 1800000, found: true},
		{name: "cue short", query: "under 500", want: 500000, found: true},
		{name: "cue literal", query: "under 650000", want: 650000, found: true},
		{name: "cue max", query: "max 750 and a garden", want: 750000, found: true},
		{name: "cue less than literal", query: "less than 8000", want: 8000, found: true},
		{name: "standalone short", query: "something near 900 would be nice", want: 900000, found: true},
		{name: "standalone literal", query: "about 6000", want: 6000, found: true},
		{name: "no number", query: "a quiet home near a park", found: false},
		{name: "empty", query: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBudget(tt.query)
			if !tt.found {
				if got != nil {
					t.Errorf("ExtractBudget(%q): got %d, want none", tt.query, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractBudget(%q): got none, want %d", tt.query, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ExtractBudget(%q): got %d, want %d", tt.query, *got, tt.want)
			}
		})
	}
}

func TestExtractBudget_DollarIntegers(t *testing.T) {
	for _, amount := range []int64{100, 999, 45000, 650000, 1250000, 99999999} {
		for _, query := range []string{
			"$" + formatPlain(amount),
			"$" + formatGrouped(amount),
		} {
			got := ExtractBudget("looking for something at " + query)
			if got == nil || *got != amount {
				t.Errorf("query %q: got %v, want %d", query, got, amount)
			}
		}
	}
}

func TestExtractBudget_FirstRuleWins(t *testing.T) {
	// The dollar rule matches before the bedroom-looking standalone number.
	got := ExtractBudget("4 bedroom home, 2400 sqft, $900k")
	if got == nil || *got != 900000 {
		t.Errorf("got %v, want 900000", got)
	}

	// Ambiguous ranges keep the first match; this documents the heuristic,
	// it does not assert the reading is what the buyer meant.
	got = ExtractBudget("$500-600k")
	if got == nil || *got != 500 {
		t.Errorf("range: got %v, want 500 (first match)", got)
	}
}

func TestExtractBedrooms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
		found bool
	}{
		{name: "bedroom", query: "looking for a 4 bedroom house", want: 4, found: true},
		{name: "bedrooms", query: "at least 3 bedrooms", want: 3, found: true},
		{name: "hyphenated", query: "a 2-bedroom condo", want: 2, found: true},
		{name: "bed", query: "5 bed, 3 bath", want: 5, found: true},
		{name: "beds uppercase", query: "6 BEDS", want: 6, found: true},
		{name: "first match", query: "3 bedrooms or maybe 4 bedrooms", want: 3, found: true},
		{name: "range reads second number", query: "3-4 bedrooms", want: 4, found: true},
		{name: "no count", query: "no bedroom count here", found: false},
		{name: "bedside is not bed", query: "2 bedside tables", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBedrooms(tt.query)
			if !tt.found {
				if got != nil {
					t.Errorf("ExtractBedrooms(%q): got %d, want none", tt.query, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("ExtractBedrooms(%q): got %v, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	set := Extract("I want a family home with 4 bedrooms and a backyard under $800,000")
	if set.Budget == nil || *set.Budget != 800000 {
		t.Errorf("budget: got %v, want 800000", set.Budget)
	}
	if set.MinBedrooms == nil || *set.MinBedrooms != 4 {
		t.Errorf("bedrooms: got %v, want 4", set.MinBedrooms)
	}

	if !Extract("somewhere quiet").IsEmpty() {
		t.Error("expected empty set")
	}
}

func formatPlain(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatGrouped(n int64) string {
	return strings.TrimPrefix(listing.FormatAmount(n), "$")
}
