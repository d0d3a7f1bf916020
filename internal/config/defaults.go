package config

import "github.com/povarna/generative-ai-agents/homematch/internal/llm"

const DefaultGenerationPrompt = `Generate a detailed real estate listing #{{.Number}} with these EXACT specifications:

REQUIRED DETAILS:
- Neighborhood: {{.Neighborhood}}
- Price: {{.Price}}
- Bedrooms: {{.Bedrooms}}
- Bathrooms: {{.Bathrooms}}
- Size: {{.Size}} sqft
- Style: {{.Style}}

DESCRIPTION REQUIREMENTS:
- Start with: "{{.Opener}}"
- Make it 2-3 detailed paragraphs
- Include specific {{.Style}} features and amenities
- Mention outdoor spaces, kitchen details, master suite
- Be creative with unique features that fit the style and price range

NEIGHBORHOOD DESCRIPTION:
- Write 1-2 paragraphs about {{.Neighborhood}}
- Include amenities, schools, transportation, recreation
- Make it feel authentic and appealing
- Don't repeat the property description

Format as valid JSON with exact keys:
{
    "neighborhood": "{{.Neighborhood}}",
    "price": "{{.Price}}",
    "bedrooms": {{.Bedrooms}},
    "bathrooms": {{.Bathrooms}},
    "house_size": "{{.Size}} sqft",
    "description": "your detailed property description",
    "neighborhood_description": "your neighborhood description"
}`

const DefaultRewritePrompt = `Convert these user preferences into a well-structured search query for real estate:

User Input: "{{.Preferences}}"

Extract and emphasize key requirements like:
- Number of bedrooms/bathrooms
- Price range or budget constraints
- Location preferences (neighborhood type, proximity needs)
- Specific amenities (pool, garage, garden, etc.)
- Lifestyle preferences (family-friendly, urban, suburban)
- Transportation needs
- Special requirements (accessibility, pet-friendly, etc.)

Create a comprehensive search description that captures both explicit and implicit needs.
Focus on the most important criteria mentioned.

Format: "Search Query: [your optimized search text]"`

const DefaultPersonalizationPrompt = `Based on the user's preferences: "{{.Preferences}}"

Please enhance this real estate listing to appeal to the user while maintaining factual accuracy:

Neighborhood: {{.Listing.Neighborhood}}
Price: {{.Listing.Price}}
Bedrooms: {{.Listing.Bedrooms}}
Bathrooms: {{.Listing.Bathrooms}}
Size: {{.Listing.HouseSize}}

Original Description: {{.Listing.Description}}

Neighborhood Description: {{.Listing.NeighborhoodDescription}}

Create a personalized description that highlights aspects most relevant to the user's preferences.
Keep all factual information accurate and don't add features that aren't mentioned.
Make it compelling and tailored to their needs.
Write in an engaging, personalized tone that connects their preferences to this property.`

var defaultNeighborhoods = []string{
	"Downtown Lofts", "Riverside Gardens", "Oak Hill Estates", "Marina District",
	"Arts Quarter", "Historic Brownstone", "Coastal Heights", "Mountain View Villas",
	"Prairie Commons", "Tech Valley", "Suburban Oaks", "Garden District",
	"Millionaire Row", "University Heights", "Waterfront Plaza", "Sunset Ridge",
	"Heritage Square", "Innovation District", "Lakeside Commons", "Hillcrest Manor",
	"Pine Valley", "Royal Estates", "Skyline Towers", "Maple Grove",
	"Crystal Bay", "Cedar Park", "Emerald Hills", "Golden Gate Heights",
	"Silver Lake", "Copper Canyon", "Diamond District", "Platinum Shores",
}

var defaultPriceTiers = []PriceTier{
	{Name: "starter", Min: 250000, Max: 400000},
	{Name: "mid-range", Min: 400000, Max: 600000},
	{Name: "premium", Min: 600000, Max: 900000},
	{Name: "luxury", Min: 900000, Max: 1400000},
	{Name: "high-end", Min: 1400000, Max: 2200000},
	{Name: "ultra-luxury", Min: 2200000, Max: 3500000},
	{Name: "elite", Min: 3500000, Max: 5000000},
}

var defaultStyles = []string{
	"contemporary", "traditional", "modern", "colonial", "craftsman",
	"victorian", "mediterranean", "ranch", "tudor", "farmhouse",
	"industrial loft", "mid-century modern", "cape cod", "georgian",
	"spanish revival", "art deco", "minimalist", "rustic",
}

var defaultOpeners = []string{
	"Discover this exceptional {{.Style}} home in the heart of {{.Neighborhood}}",
	"Step into luxury with this stunning {{.Style}} residence located in {{.Neighborhood}}",
	"Experience the perfect blend of comfort and elegance in this {{.Style}} property",
	"This remarkable {{.Style}} home offers the ultimate in {{.Neighborhood}} living",
	"Nestled in the prestigious {{.Neighborhood}}, this {{.Style}} masterpiece awaits",
	"Immerse yourself in the charm of this beautifully crafted {{.Style}} home",
	"Welcome to your dream home, a spectacular {{.Style}} residence",
	"This architectural gem showcases {{.Style}} design in {{.Neighborhood}}",
	"Embrace refined living in this exquisite {{.Style}} estate",
	"Presenting a rare opportunity to own this magnificent {{.Style}} property",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{
		Search: SearchConfig{Rewrite: true},
		Models: ModelsConfig{
			Generation:      llm.Params{Temperature: 0.8, Retry: true},
			Rewrite:         llm.Params{Temperature: 0.2},
			Personalization: llm.Params{Temperature: 0.7},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Models.Generation.MaxTokens == 0 {
		cfg.Models.Generation.MaxTokens = 1200
	}
	if cfg.Models.Rewrite.MaxTokens == 0 {
		cfg.Models.Rewrite.MaxTokens = 200
	}
	if cfg.Models.Personalization.MaxTokens == 0 {
		cfg.Models.Personalization.MaxTokens = 600
	}

	if cfg.Prompts.Generation == "" {
		cfg.Prompts.Generation = DefaultGenerationPrompt
	}
	if cfg.Prompts.Rewrite == "" {
		cfg.Prompts.Rewrite = DefaultRewritePrompt
	}
	if cfg.Prompts.Personalization == "" {
		cfg.Prompts.Personalization = DefaultPersonalizationPrompt
	}

	g := &cfg.Generation
	if g.Count == 0 {
		g.Count = 10
	}
	if g.MaxCount == 0 {
		g.MaxCount = max(100, g.Count)
	}
	if g.MaxConsecutiveFailures == 0 {
		g.MaxConsecutiveFailures = 5
	}
	if len(g.Neighborhoods) == 0 {
		g.Neighborhoods = append([]string(nil), defaultNeighborhoods...)
	}
	if len(g.PriceTiers) == 0 {
		g.PriceTiers = append([]PriceTier(nil), defaultPriceTiers...)
	}
	if len(g.Styles) == 0 {
		g.Styles = append([]string(nil), defaultStyles...)
	}
	if len(g.DescriptionOpeners) == 0 {
		g.DescriptionOpeners = append([]string(nil), defaultOpeners...)
	}
	if len(g.BedroomChoices) == 0 {
		g.BedroomChoices = []int{2, 3, 3, 4, 4, 4, 5, 5, 6}
	}
	if len(g.BathroomChoices) == 0 {
		g.BathroomChoices = []int{1, 2, 2, 3, 3, 4}
	}
	if g.Size == (SizeRule{}) {
		g.Size = SizeRule{Floor: 800, Ceiling: 4500, PerBedroomMin: 400, PerBedroomMax: 800}
	}
	if g.PriceJitter == 0 {
		g.PriceJitter = 25000
	}
	if g.PriceFloor == 0 {
		g.PriceFloor = 200000
	}

	if cfg.Search.DefaultCount == 0 {
		cfg.Search.DefaultCount = 3
	}
	if cfg.Search.MaxCount == 0 {
		cfg.Search.MaxCount = 50
	}
}
