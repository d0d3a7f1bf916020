package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
)

const retryAttempts = 3

func (c *Client) newParams(request llm.LLMRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		Temperature: openai.Float(request.Temperature),
		Model:       shared.ChatModel(c.ModelID),
	}
	if request.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(request.MaxTokens))
	}
	return params
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return c.invoke(ctx, request)
}

// InvokeModelWithRetry lets the SDK retry 429 and 5xx responses with its own
// exponential backoff.
func (c *Client) InvokeModelWithRetry(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	return c.invoke(ctx, request, option.WithMaxRetries(retryAttempts))
}

func (c *Client) invoke(ctx context.Context, request llm.LLMRequest, opts ...option.RequestOption) (*llm.LLMResponse, error) {
	output, err := c.Client.Chat.Completions.New(ctx, c.newParams(request), opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := output.Choices[0]
	return &llm.LLMResponse{
		Content:    choice.Message.Content,
		StopReason: string(choice.FinishReason),
	}, nil
}
