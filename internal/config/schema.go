package config

import "github.com/povarna/generative-ai-agents/homematch/internal/llm"

// Config is the YAML application configuration: model settings per task,
// prompt templates, generation pools and search defaults.
type Config struct {
	Models     ModelsConfig     `yaml:"models"`
	Prompts    PromptsConfig    `yaml:"prompts"`
	Generation GenerationConfig `yaml:"generation"`
	Search     SearchConfig     `yaml:"search"`

	Personalization PersonalizationConfig `yaml:"personalization"`
}

type ModelsConfig struct {
	Generation      llm.Params `yaml:"generation"`
	Rewrite         llm.Params `yaml:"rewrite"`
	Personalization llm.Params `yaml:"personalization"`
}

// PromptsConfig holds text/template sources.
type PromptsConfig struct {
	Generation      string `yaml:"generation"`
	Rewrite         string `yaml:"rewrite"`
	Personalization string `yaml:"personalization"`
}

type PriceTier struct {
	Name string `yaml:"name"`
	Min  int64  `yaml:"min"`
	Max  int64  `yaml:"max"`
}

// SizeRule bounds the generated house size: the range is
// [max(Floor, PerBedroomMin*b), min(Ceiling, PerBedroomMax*b)] for b bedrooms.
type SizeRule struct {
	Floor         int `yaml:"floor"`
	Ceiling       int `yaml:"ceiling"`
	PerBedroomMin int `yaml:"per_bedroom_min"`
	PerBedroomMax int `yaml:"per_bedroom_max"`
}

type GenerationConfig struct {
	Count                  int         `yaml:"count"`
	MaxCount               int         `yaml:"max_count"`
	MaxConsecutiveFailures int         `yaml:"max_consecutive_failures"`
	Neighborhoods          []string    `yaml:"neighborhoods"`
	PriceTiers             []PriceTier `yaml:"price_tiers"`
	Styles                 []string    `yaml:"styles"`
	DescriptionOpeners     []string    `yaml:"description_openers"`
	// Repeated values weight the draw.
	BedroomChoices  []int    `yaml:"bedroom_choices"`
	BathroomChoices []int    `yaml:"bathroom_choices"`
	Size            SizeRule `yaml:"size"`
	PriceJitter     int64    `yaml:"price_jitter"`
	PriceFloor      int64    `yaml:"price_floor"`
}

type SearchConfig struct {
	Rewrite      bool `yaml:"rewrite"`
	DefaultCount int  `yaml:"default_count"`
	MaxCount     int  `yaml:"max_count"`
}

type PersonalizationConfig struct {
	// SkipQualityChecks accepts every rewrite without the length, format,
	// fact and overlap checks.
	SkipQualityChecks bool `yaml:"skip_quality_checks"`
}
