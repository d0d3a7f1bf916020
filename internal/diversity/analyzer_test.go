package diversity

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

func home(neighborhood string, price int64, bedrooms, bathrooms int) listing.Listing {
	return listing.Listing{
		Neighborhood: neighborhood,
		Price:        listing.NewPrice(price),
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
	}
}

func TestAnalyze_Empty(t *testing.T) {
	report := Analyze(nil)

	if !report.Empty() {
		t.Error("Expected empty report")
	}
	if report.Message != "no listings to analyze" {
		t.Errorf("message: got %q", report.Message)
	}
	if report.Grade != "" || report.Score != 0 {
		t.Errorf("expected no score or grade, got %v %q", report.Score, report.Grade)
	}
}

func TestAnalyze_SingleListingIsGradeA(t *testing.T) {
	report := Analyze([]listing.Listing{home("Seaside", 500000, 3, 2)})

	if report.Score != 100 {
		t.Errorf("score: got %v, want 100", report.Score)
	}
	if report.Grade != "A" {
		t.Errorf("grade: got %q, want A", report.Grade)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		listings  []listing.Listing
		wantScore float64
		wantGrade string
	}{
		{
			name: "fully diverse",
			listings: []listing.Listing{
				home("A", 100000, 1, 1), home("B", 200000, 2, 1), home("C", 300000, 3, 2), home("D", 400000, 4, 3), home("E", 500000, 5, 3),
			},
			wantScore: 100,
			wantGrade: "A",
		},
		{
			name: "all identical",
			listings: []listing.Listing{
				home("A", 100000, 3, 2), home("A", 100000, 3, 2), home("A", 100000, 3, 2), home("A", 100000, 3, 2),
			},
			// 40/4 + 40/4 + 20*1/4
			wantScore: 25,
			wantGrade: "D",
		},
		{
			name: "duplicate neighborhood",
			listings: []listing.Listing{
				home("A", 100000, 2, 1), home("A", 200000, 3, 1), home("B", 300000, 4, 2),
			},
			// 40*2/3 + 40 + 20*3/3 = 86.67
			wantScore: 86.7,
			wantGrade: "B",
		},
		{
			name: "two listings same bedrooms",
			listings: []listing.Listing{
				home("A", 100000, 3, 1), home("B", 100000, 3, 1),
			},
			// 40 + 20 + 20*1/2
			wantScore: 70,
			wantGrade: "C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Analyze(tt.listings)
			if report.Score != tt.wantScore {
				t.Errorf("score: got %v, want %v", report.Score, tt.wantScore)
			}
			if report.Grade != tt.wantGrade {
				t.Errorf("grade: got %q, want %q", report.Grade, tt.wantGrade)
			}
		})
	}
}

func TestAnalyze_GradesUnroundedScore(t *testing.T) {
	// 40 + 40*749/1000 + 20 = 89.96, shown as 90.0.
	var ls []listing.Listing
	for i := 0; i < 1000; i++ {
		ls = append(ls, home(fmt.Sprintf("Area %d", i), int64(300000+(i%749)*1000), 1+i%4, 2))
	}

	report := Analyze(ls)
	if report.Score != 90 {
		t.Errorf("score: got %v, want 90", report.Score)
	}
	if report.Grade != "B" {
		t.Errorf("grade: got %q, want B", report.Grade)
	}
}

func TestAnalyze_RangesAndDuplicates(t *testing.T) {
	report := Analyze([]listing.Listing{
		home("A", 100000, 4, 2), home("A", 100000, 2, 3), home("B", 250000, 6, 1),
	})

	if report.BedroomRange != (Range{Min: 2, Max: 6}) {
		t.Errorf("bedroom range: got %+v", report.BedroomRange)
	}
	if report.BathroomRange != (Range{Min: 1, Max: 3}) {
		t.Errorf("bathroom range: got %+v", report.BathroomRange)
	}
	if report.Duplicates.Neighborhoods["A"] != 2 || len(report.Duplicates.Neighborhoods) != 1 {
		t.Errorf("duplicate neighborhoods: got %v", report.Duplicates.Neighborhoods)
	}
	if report.Duplicates.Prices["$100,000"] != 2 || len(report.Duplicates.Prices) != 1 {
		t.Errorf("duplicate prices: got %v", report.Duplicates.Prices)
	}
}

func TestAnalyze_ScoreAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		n := 1 + rng.IntN(30)
		ls := make([]listing.Listing, n)
		for i := range ls {
			ls[i] = home(fmt.Sprintf("N%d", rng.IntN(5)), int64(rng.IntN(4))*100000, rng.IntN(7), rng.IntN(4))
		}

		report := Analyze(ls)
		if report.Score < 0 || report.Score > 100 {
			t.Fatalf("round %d: score %v out of range", round, report.Score)
		}
		if report.Grade != Grade(report.Score) {
			t.Fatalf("round %d: grade %q does not match score %v", round, report.Grade, report.Score)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "A"}, {90, "A"}, {89.9, "B"}, {75, "B"}, {74.9, "C"}, {60, "C"}, {59.9, "D"}, {0, "D"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			if got := Grade(tt.score); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
