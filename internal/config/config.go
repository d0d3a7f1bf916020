package config

import (
	"errors"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const (
	PathEnv     = "HOMEMATCH_CONFIG_PATH"
	DefaultPath = "configs/homematch.yaml"
)

// LoadConfig reads the file named by HOMEMATCH_CONFIG_PATH, falling back to
// configs/homematch.yaml. When the variable is unset and the default file is
// absent the built-in defaults are returned.
func LoadConfig() (*Config, error) {
	path := os.Getenv(PathEnv)
	if path == "" {
		cfg, err := Load(DefaultPath)
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return cfg, err
	}
	return Load(path)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	prompts := map[string]string{
		"generation":      c.Prompts.Generation,
		"rewrite":         c.Prompts.Rewrite,
		"personalization": c.Prompts.Personalization,
	}
	for name, src := range prompts {
		if _, err := template.New(name).Parse(src); err != nil {
			return fmt.Errorf("invalid %s prompt template: %w", name, err)
		}
	}

	g := c.Generation
	if g.Count < 1 {
		return fmt.Errorf("generation.count must be positive, got %d", g.Count)
	}
	if g.MaxCount < g.Count {
		return fmt.Errorf("generation.max_count must be at least generation.count: count=%d max=%d", g.Count, g.MaxCount)
	}
	if g.MaxConsecutiveFailures < 1 {
		return fmt.Errorf("generation.max_consecutive_failures must be positive, got %d", g.MaxConsecutiveFailures)
	}
	for i, tier := range g.PriceTiers {
		if tier.Min < 0 || tier.Min > tier.Max {
			return fmt.Errorf("generation.price_tiers[%d] has invalid range [%d, %d]", i, tier.Min, tier.Max)
		}
	}
	for i, opener := range g.DescriptionOpeners {
		if _, err := template.New("opener").Parse(opener); err != nil {
			return fmt.Errorf("generation.description_openers[%d]: %w", i, err)
		}
	}
	for _, b := range g.BedroomChoices {
		if b < 1 {
			return fmt.Errorf("generation.bedroom_choices must be positive, got %d", b)
		}
	}
	for _, b := range g.BathroomChoices {
		if b < 1 {
			return fmt.Errorf("generation.bathroom_choices must be positive, got %d", b)
		}
	}
	if s := g.Size; s.Floor < 1 || s.Ceiling < s.Floor || s.PerBedroomMin < 1 || s.PerBedroomMax < s.PerBedroomMin {
		return fmt.Errorf("generation.size is inconsistent: %+v", s)
	}
	if g.PriceJitter < 0 || g.PriceFloor < 0 {
		return fmt.Errorf("generation.price_jitter and price_floor must not be negative")
	}

	if c.Search.DefaultCount < 1 || c.Search.MaxCount < c.Search.DefaultCount {
		return fmt.Errorf("search counts are inconsistent: default=%d max=%d", c.Search.DefaultCount, c.Search.MaxCount)
	}
	return nil
}
