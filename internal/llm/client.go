package llm

import (
	"context"
	"errors"
	"strings"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// LLMClient is a text completion capability. Implementations talk to Bedrock
// or OpenAI; tests use the generated mock.
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
}

var ErrEmptyCompletion = errors.New("model returned an empty completion")

// Complete sends prompt with the given parameters and returns the trimmed
// completion text.
func Complete(ctx context.Context, client LLMClient, params Params, prompt string) (string, error) {
	request := LLMRequest{
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}

	var (
		resp *LLMResponse
		err  error
	)
	if params.Retry {
		resp, err = client.InvokeModelWithRetry(ctx, request)
	} else {
		resp, err = client.InvokeModel(ctx, request)
	}
	if err != nil {
		return "", err
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}

// StripMarkdownCodeBlock removes a surrounding ``` or ```json fence.
func StripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return strings.Trim(content, "`")
	}

	closing := strings.LastIndex(content, "```")
	if closing <= firstNewline {
		return strings.TrimSpace(content[firstNewline+1:])
	}

	return strings.TrimSpace(content[firstNewline+1 : closing])
}
