package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
	"github.com/rs/zerolog"
)

var searchQueryPrefix = regexp.MustCompile(`(?i)^\s*search query\s*:\s*`)

type promptData struct {
	Preferences string
}

// Rewriter turns free-text buyer preferences into a query tuned for
// semantic retrieval.
type Rewriter struct {
	client   llm.LLMClient
	params   llm.Params
	template *template.Template
	logger   *zerolog.Logger
}

func NewRewriter(client llm.LLMClient, params llm.Params, prompt string, logger *zerolog.Logger) (*Rewriter, error) {
	tmpl, err := template.New("rewrite").Parse(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rewrite prompt: %w", err)
	}
	return &Rewriter{
		client:   client,
		params:   params,
		template: tmpl,
		logger:   logger,
	}, nil
}

// Rewrite returns the rewritten query, or the original one when the model
// fails or answers with nothing usable.
func (r *Rewriter) Rewrite(ctx context.Context, query string) string {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, promptData{Preferences: query}); err != nil {
		r.logger.Error().Err(err).Msg("Failed to build rewrite prompt")
		return query
	}

	content, err := llm.Complete(ctx, r.client, r.params, buf.String())
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to rewrite query")
		return query
	}

	rewritten := cleanRewrite(content)
	if rewritten == "" {
		r.logger.Warn().Str("content", content).Msg("Rewrite produced an empty query")
		return query
	}

	r.logger.Info().
		Str("original", query).
		Str("rewritten", rewritten).
		Msg("Query rewrite")

	return rewritten
}

// cleanRewrite drops the "Search Query:" label and surrounding quotes or
// brackets the prompt format invites.
func cleanRewrite(content string) string {
	line := strings.Trim(strings.TrimSpace(content), `"`)
	line = searchQueryPrefix.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)
	line = strings.Trim(line, `"[]`)
	return strings.TrimSpace(line)
}
