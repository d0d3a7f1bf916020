package generation

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
	"github.com/rs/zerolog"
)

type promptData struct {
	Number       int
	Neighborhood string
	Price        string
	Bedrooms     int
	Bathrooms    int
	Size         int
	Style        string
	Opener       string
}

// Generator asks the model for one listing at a time.
type Generator struct {
	client   llm.LLMClient
	params   llm.Params
	template *template.Template
	logger   *zerolog.Logger
}

func NewGenerator(client llm.LLMClient, params llm.Params, prompt string, logger *zerolog.Logger) (*Generator, error) {
	tmpl, err := template.New("generation").Parse(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generation prompt: %w", err)
	}
	return &Generator{
		client:   client,
		params:   params,
		template: tmpl,
		logger:   logger,
	}, nil
}

// GenerateOne returns a complete, valid listing or an error. Model failures,
// malformed JSON and missing fields are all errors.
func (g *Generator) GenerateOne(ctx context.Context, number int, attrs Attributes) (listing.Listing, error) {
	var buf bytes.Buffer
	err := g.template.Execute(&buf, promptData{
		Number:       number,
		Neighborhood: attrs.Neighborhood,
		Price:        attrs.FormattedPrice(),
		Bedrooms:     attrs.Bedrooms,
		Bathrooms:    attrs.Bathrooms,
		Size:         attrs.Size,
		Style:        attrs.Style,
		Opener:       attrs.Opener,
	})
	if err != nil {
		return listing.Listing{}, fmt.Errorf("template execution failed: %w", err)
	}

	content, err := llm.Complete(ctx, g.client, g.params, buf.String())
	if err != nil {
		return listing.Listing{}, fmt.Errorf("listing %d: %w", number, err)
	}

	l, err := listing.Decode([]byte(llm.StripMarkdownCodeBlock(content)))
	if err != nil {
		g.logger.Debug().Int("listing", number).Str("content", content).Msg("Unusable listing content")
		return listing.Listing{}, fmt.Errorf("listing %d: %w", number, err)
	}
	return l, nil
}
