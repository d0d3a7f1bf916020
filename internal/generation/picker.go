package generation

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"text/template"

	"github.com/povarna/generative-ai-agents/homematch/internal/config"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
)

// Attributes are the facts a generated listing must carry.
type Attributes struct {
	Neighborhood string
	Price        int64
	Bedrooms     int
	Bathrooms    int
	Size         int
	Style        string
	Opener       string
}

// FormattedPrice renders Price the way listings display it.
func (a Attributes) FormattedPrice() string {
	return listing.FormatAmount(a.Price)
}

// Key is the used-combination key. Size is bucketed to hundreds.
func (a Attributes) Key() string {
	return fmt.Sprintf("%s_%s_%d_%d_%d", a.Neighborhood, a.Style, a.Bedrooms, a.Bathrooms, a.Size/100*100)
}

// Picker draws varied listing attributes and remembers the combinations it
// has handed out. It is not safe for concurrent use.
type Picker struct {
	cfg     config.GenerationConfig
	rng     *rand.Rand
	openers []*template.Template

	used              map[string]struct{}
	usedNeighborhoods map[string]struct{}
}

func NewPicker(cfg config.GenerationConfig, rng *rand.Rand) (*Picker, error) {
	if len(cfg.Neighborhoods) == 0 || len(cfg.Styles) == 0 || len(cfg.PriceTiers) == 0 ||
		len(cfg.BedroomChoices) == 0 || len(cfg.BathroomChoices) == 0 || len(cfg.DescriptionOpeners) == 0 {
		return nil, fmt.Errorf("generation pools must not be empty")
	}

	openers := make([]*template.Template, len(cfg.DescriptionOpeners))
	for i, src := range cfg.DescriptionOpeners {
		tmpl, err := template.New(fmt.Sprintf("opener-%d", i)).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse description opener %d: %w", i, err)
		}
		openers[i] = tmpl
	}

	p := &Picker{cfg: cfg, rng: rng, openers: openers}
	p.Reset()
	return p, nil
}

// Reset forgets every used combination.
func (p *Picker) Reset() {
	p.used = make(map[string]struct{})
	p.usedNeighborhoods = make(map[string]struct{})
}

// Used returns the number of remembered combinations.
func (p *Picker) Used() int {
	return len(p.used)
}

func (p *Picker) Pick() (Attributes, error) {
	if len(p.used) >= len(p.cfg.Neighborhoods)*len(p.cfg.Styles) {
		p.Reset()
	}

	var a Attributes
	a.Neighborhood = p.pickNeighborhood()

	tier := p.cfg.PriceTiers[p.rng.IntN(len(p.cfg.PriceTiers))]
	a.Price = tier.Min + p.rng.Int64N(tier.Max-tier.Min+1)

	a.Bedrooms = p.cfg.BedroomChoices[p.rng.IntN(len(p.cfg.BedroomChoices))]
	a.Bathrooms = p.cfg.BathroomChoices[p.rng.IntN(len(p.cfg.BathroomChoices))]

	size := p.cfg.Size
	lo := max(size.Floor, size.PerBedroomMin*a.Bedrooms)
	hi := max(lo, min(size.Ceiling, size.PerBedroomMax*a.Bedrooms))
	a.Size = lo + p.rng.IntN(hi-lo+1)

	a.Style = p.cfg.Styles[p.rng.IntN(len(p.cfg.Styles))]

	opener, err := p.renderOpener(a)
	if err != nil {
		return Attributes{}, err
	}
	a.Opener = opener

	key := a.Key()
	if _, seen := p.used[key]; seen {
		jitter := p.cfg.PriceJitter
		a.Price = max(p.cfg.PriceFloor, a.Price+p.rng.Int64N(2*jitter+1)-jitter)
	}
	p.used[key] = struct{}{}
	p.usedNeighborhoods[a.Neighborhood] = struct{}{}

	return a, nil
}

// pickNeighborhood prefers neighborhoods not used since the last reset.
func (p *Picker) pickNeighborhood() string {
	available := make([]string, 0, len(p.cfg.Neighborhoods))
	for _, n := range p.cfg.Neighborhoods {
		if _, used := p.usedNeighborhoods[n]; !used {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		available = p.cfg.Neighborhoods
	}
	return available[p.rng.IntN(len(available))]
}

func (p *Picker) renderOpener(a Attributes) (string, error) {
	tmpl := p.openers[p.rng.IntN(len(p.openers))]
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, a); err != nil {
		return "", fmt.Errorf("failed to render description opener: %w", err)
	}
	return buf.String(), nil
}
