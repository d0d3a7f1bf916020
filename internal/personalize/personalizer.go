package personalize

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
	"github.com/povarna/generative-ai-agents/homematch/internal/quality"
	"github.com/rs/zerolog"
)

type promptData struct {
	Preferences string
	Listing     listing.Listing
}

// Result is a listing with its description tailored to a buyer.
type Result struct {
	Listing     listing.Listing `json:"listing"`
	Description string          `json:"personalized_description"`
	// Personalized is false when the original description was returned.
	Personalized bool `json:"personalized"`
	// Review is set when a quality gate checked the rewrite.
	Review *quality.Report `json:"review,omitempty"`
}

type Personalizer struct {
	client   llm.LLMClient
	params   llm.Params
	template *template.Template
	gate     *quality.Gate
	logger   *zerolog.Logger
}

type Option func(*Personalizer)

// WithQualityGate rejects rewrites that fail gate, keeping the original
// description instead.
func WithQualityGate(gate *quality.Gate) Option {
	return func(p *Personalizer) {
		p.gate = gate
	}
}

func NewPersonalizer(client llm.LLMClient, params llm.Params, prompt string, logger *zerolog.Logger, opts ...Option) (*Personalizer, error) {
	tmpl, err := template.New("personalization").Parse(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse personalization prompt: %w", err)
	}
	p := &Personalizer{
		client:   client,
		params:   params,
		template: tmpl,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Personalize rewrites the listing description for preferences. Facts in the
// listing are passed to the model verbatim; on any failure the original
// description is returned.
func (p *Personalizer) Personalize(ctx context.Context, l listing.Listing, preferences string) Result {
	result := Result{Listing: l, Description: l.Description}

	var buf bytes.Buffer
	if err := p.template.Execute(&buf, promptData{Preferences: preferences, Listing: l}); err != nil {
		p.logger.Error().Err(err).Msg("Failed to build personalization prompt")
		return result
	}

	content, err := llm.Complete(ctx, p.client, p.params, buf.String())
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("neighborhood", l.Neighborhood).
			Msg("Failed to personalize description")
		return result
	}

	if p.gate != nil {
		report := p.gate.Review(quality.Subject{Listing: l, Rewritten: content})
		result.Review = &report
		if !report.Accepted() {
			p.logger.Warn().
				Str("neighborhood", l.Neighborhood).
				Float64("confidence", report.Confidence).
				Msg("Personalized description rejected, keeping the original")
			return result
		}
	}

	result.Description = content
	result.Personalized = true

	p.logger.Debug().
		Str("neighborhood", l.Neighborhood).
		Int("length", len(content)).
		Msg("Description personalized")
	return result
}

// PersonalizeAll personalizes each listing in order.
func (p *Personalizer) PersonalizeAll(ctx context.Context, ls []listing.Listing, preferences string) []Result {
	results := make([]Result, 0, len(ls))
	for _, l := range ls {
		if ctx.Err() != nil {
			results = append(results, Result{Listing: l, Description: l.Description})
			continue
		}
		results = append(results, p.Personalize(ctx, l, preferences))
	}
	return results
}
