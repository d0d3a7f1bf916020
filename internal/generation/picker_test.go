package generation

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/povarna/generative-ai-agents/homematch/internal/config"
)

func testPicker(t *testing.T, mutate func(*config.GenerationConfig)) *Picker {
	t.Helper()
	cfg := config.Default().Generation
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := NewPicker(cfg, rand.New(rand.NewPCG(42, 7)))
	if err != nil {
		t.Fatalf("NewPicker() failed: %v", err)
	}
	return p
}

func TestPick_RespectsPools(t *testing.T) {
	cfg := config.Default().Generation
	p := testPicker(t, nil)

	inTier := func(price int64) bool {
		for _, tier := range cfg.PriceTiers {
			if price >= tier.Min-cfg.PriceJitter && price <= tier.Max+cfg.PriceJitter {
				return true
			}
		}
		return false
	}

	for i := 0; i < 500; i++ {
		a, err := p.Pick()
		if err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}

		if !inTier(a.Price) || a.Price < cfg.PriceFloor {
			t.Errorf("price %d outside of every tier", a.Price)
		}
		if a.Bedrooms < 2 || a.Bedrooms > 6 {
			t.Errorf("bedrooms %d outside of choices", a.Bedrooms)
		}
		if a.Bathrooms < 1 || a.Bathrooms > 4 {
			t.Errorf("bathrooms %d outside of choices", a.Bathrooms)
		}

		lo := max(800, 400*a.Bedrooms)
		hi := max(lo, min(4500, 800*a.Bedrooms))
		if a.Size < lo || a.Size > hi {
			t.Errorf("size %d outside [%d, %d] for %d bedrooms", a.Size, lo, hi, a.Bedrooms)
		}
		if strings.Contains(a.Opener, "{{") || !strings.Contains(a.Opener, a.Style) {
			t.Errorf("opener not rendered: %q", a.Opener)
		}
	}
}

func TestPick_PrefersUnusedNeighborhoods(t *testing.T) {
	p := testPicker(t, func(c *config.GenerationConfig) {
		c.Neighborhoods = []string{"A", "B", "C", "D"}
	})

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		a, err := p.Pick()
		if err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}
		if seen[a.Neighborhood] {
			t.Errorf("neighborhood %s repeated before the pool was exhausted", a.Neighborhood)
		}
		seen[a.Neighborhood] = true
	}
}

func TestPick_ResetsWhenCombinationsExhausted(t *testing.T) {
	p := testPicker(t, func(c *config.GenerationConfig) {
		c.Neighborhoods = []string{"A", "B"}
		c.Styles = []string{"modern"}
	})

	for i := 0; i < 2; i++ {
		if _, err := p.Pick(); err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}
	}
	if p.Used() != 2 {
		t.Fatalf("used: got %d, want 2", p.Used())
	}

	if _, err := p.Pick(); err != nil {
		t.Fatalf("Pick() failed: %v", err)
	}
	if p.Used() != 1 {
		t.Errorf("used after reset: got %d, want 1", p.Used())
	}
}

func TestPick_CollisionPerturbsPrice(t *testing.T) {
	p := testPicker(t, func(c *config.GenerationConfig) {
		c.Neighborhoods = []string{"Only"}
		// two pool entries, one distinct style: the second pick always collides
		c.Styles = []string{"modern", "modern"}
		c.PriceTiers = []config.PriceTier{{Name: "fixed", Min: 210000, Max: 210000}}
		c.BedroomChoices = []int{3}
		c.BathroomChoices = []int{2}
		c.Size = config.SizeRule{Floor: 1200, Ceiling: 1200, PerBedroomMin: 400, PerBedroomMax: 400}
	})

	for i := 0; i < 20; i++ {
		p.Reset()
		first, err := p.Pick()
		if err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}
		if first.Price != 210000 {
			t.Fatalf("first price: got %d, want 210000", first.Price)
		}

		second, err := p.Pick()
		if err != nil {
			t.Fatalf("Pick() failed: %v", err)
		}
		if second.Key() != first.Key() {
			t.Fatalf("expected a key collision, got %q and %q", first.Key(), second.Key())
		}
		if second.Price < 200000 || second.Price > 235000 {
			t.Errorf("perturbed price %d outside [200000, 235000]", second.Price)
		}
	}
}

func TestAttributes_Key(t *testing.T) {
	a := Attributes{Neighborhood: "Seaside", Style: "modern", Bedrooms: 3, Bathrooms: 2, Size: 1875}
	if got, want := a.Key(), "Seaside_modern_3_2_1800"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := (Attributes{Price: 1250000}).FormattedPrice(); got != "$1,250,000" {
		t.Errorf("formatted price: got %q", got)
	}
}

func TestNewPicker_Errors(t *testing.T) {
	cfg := config.Default().Generation
	cfg.Styles = nil
	if _, err := NewPicker(cfg, rand.New(rand.NewPCG(1, 1))); err == nil {
		t.Error("Expected error for empty style pool")
	}

	cfg = config.Default().Generation
	cfg.DescriptionOpeners = []string{"{{.Style"}
	if _, err := NewPicker(cfg, rand.New(rand.NewPCG(1, 1))); err == nil {
		t.Error("Expected error for invalid opener")
	}
}
