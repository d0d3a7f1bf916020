package quality

import (
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/rs/zerolog"
)

func testListing() listing.Listing {
	return listing.Listing{
		Neighborhood:            "Harbor View",
		Price:                   listing.NewPrice(1250000),
		Bedrooms:                3,
		Bathrooms:               2,
		HouseSize:               "1,900 sqft",
		Description:             "Bright waterfront condo with floor-to-ceiling windows and a private balcony.",
		NeighborhoodDescription: "Walkable marina district with seafood restaurants.",
	}
}

func TestLengthChecker(t *testing.T) {
	checker := NewLengthChecker()

	tests := []struct {
		name       string
		rewritten  string
		wantScore  float64
		wantReason string
	}{
		{name: "too short", rewritten: "Nice condo.", wantScore: 0, wantReason: "too short"},
		{name: "too long", rewritten: strings.Repeat("waterfront ", 60), wantScore: 0.5, wantReason: "too long"},
		{name: "acceptable", rewritten: "A bright waterfront condo with big windows and a balcony facing the marina.", wantScore: 1.0, wantReason: "acceptable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Check(Subject{Listing: testListing(), Rewritten: tt.rewritten})
			if got.Score != tt.wantScore {
				t.Errorf("Score: %v, want %v", got.Score, tt.wantScore)
			}
			if !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("Reason: %q, want substring %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestFormatChecker(t *testing.T) {
	checker := NewFormatChecker()

	tests := []struct {
		name      string
		rewritten string
		wantScore float64
	}{
		{name: "empty", rewritten: "   ", wantScore: 0},
		{name: "few words", rewritten: "Great condo!", wantScore: 0},
		{name: "code block", rewritten: "```json {\"description\": \"condo\"} ``` and more words here", wantScore: 0},
		{name: "preamble", rewritten: "Here is the rewritten description of the waterfront condo.", wantScore: 0.5},
		{name: "repeated punctuation", rewritten: "What a view!!!! The condo sits right on the water.", wantScore: 0.5},
		{name: "valid", rewritten: "Wake up to harbor views from this bright waterfront condo.", wantScore: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Check(Subject{Listing: testListing(), Rewritten: tt.rewritten})
			if got.Score != tt.wantScore {
				t.Errorf("Score: %v, want %v (%s)", got.Score, tt.wantScore, got.Reason)
			}
		})
	}
}

func TestFactChecker(t *testing.T) {
	checker := NewFactChecker()

	tests := []struct {
		name       string
		rewritten  string
		wantScore  float64
		wantReason string
	}{
		{name: "no facts mentioned", rewritten: "A bright condo on the water.", wantScore: 1.0},
		{name: "same price", rewritten: "Listed at $1,250,000 with harbor views.", wantScore: 1.0},
		{name: "same price with suffix", rewritten: "Yours for $1.25m.", wantScore: 1.0},
		{name: "different price", rewritten: "A steal at $950,000!", wantScore: 0, wantReason: "$950,000"},
		{name: "same bedrooms", rewritten: "All 3 bedrooms face the harbor.", wantScore: 1.0},
		{name: "different bedrooms", rewritten: "A roomy 4-bedroom retreat.", wantScore: 0, wantReason: "4 bedrooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Check(Subject{Listing: testListing(), Rewritten: tt.rewritten})
			if got.Score != tt.wantScore {
				t.Errorf("Score: %v, want %v (%s)", got.Score, tt.wantScore, got.Reason)
			}
			if tt.wantReason != "" && !strings.Contains(got.Reason, tt.wantReason) {
				t.Errorf("Reason: %q, want substring %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestOverlapChecker(t *testing.T) {
	checker := NewOverlapChecker()

	relevant := checker.Check(Subject{Listing: testListing(), Rewritten: "A bright waterfront condo near the marina with a private balcony."})
	if relevant.Score < checker.MinOverlapThreshold {
		t.Errorf("expected good overlap, got %v (%s)", relevant.Score, relevant.Reason)
	}

	unrelated := checker.Check(Subject{Listing: testListing(), Rewritten: "Rustic cabin deep in pine forest, ideal for hunting trips."})
	if unrelated.Score >= checker.MinOverlapThreshold {
		t.Errorf("expected low overlap, got %v", unrelated.Score)
	}

	empty := checker.Check(Subject{Listing: testListing(), Rewritten: ""})
	if empty.Score != 0 {
		t.Errorf("expected 0 for empty rewrite, got %v", empty.Score)
	}
}

func TestGate_Review(t *testing.T) {
	logger := zerolog.Nop()
	gate := NewGate(DefaultRunner(), &logger)

	tests := []struct {
		name         string
		rewritten    string
		wantVerdict  Verdict
		wantAccepted bool
	}{
		{
			name:         "faithful rewrite",
			rewritten:    "Bright waterfront condo in Harbor View with floor-to-ceiling windows, a private balcony and 3 bedrooms near the marina.",
			wantVerdict:  VerdictPass,
			wantAccepted: true,
		},
		{
			name:         "preamble lowers confidence",
			rewritten:    "Here is a version for you: bright waterfront condo with floor-to-ceiling windows and a private balcony... by the marina!!!!",
			wantVerdict:  VerdictPass,
			wantAccepted: true,
		},
		{
			name:        "wrong price fails despite good text",
			rewritten:   "Bright waterfront condo with floor-to-ceiling windows and a private balcony, priced at $800,000.",
			wantVerdict: VerdictFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := gate.Review(Subject{Listing: testListing(), Rewritten: tt.rewritten})
			if report.Verdict != tt.wantVerdict {
				t.Errorf("Verdict = %s, want %s (confidence %.2f, %+v)", report.Verdict, tt.wantVerdict, report.Confidence, report.Checks)
			}
			if report.Accepted() != tt.wantAccepted {
				t.Errorf("Accepted = %v, want %v", report.Accepted(), tt.wantAccepted)
			}
			if len(report.Checks) != 4 {
				t.Errorf("expected 4 check results, got %d", len(report.Checks))
			}
		})
	}
}

func TestRunner_PreservesOrder(t *testing.T) {
	results := DefaultRunner().Run(Subject{Listing: testListing(), Rewritten: "Bright waterfront condo."})
	want := []string{"length-checker", "format-checker", "fact-checker", "overlap-checker"}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("results[%d] = %s, want %s", i, results[i].Name, name)
		}
	}
}
