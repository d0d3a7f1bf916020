package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
)

const (
	DefaultModel     = "text-embedding-3-small"
	DefaultDimension = 1536

	// maxBatchSize is the per-request input limit enforced by the API.
	maxBatchSize = 100
)

type Embedder struct {
	client    openai.Client
	model     string
	dimension int
}

var _ embedding.Embedder = (*Embedder)(nil)

type embedderOptions struct {
	model     string
	dimension int
	baseURL   string
}

type Option func(*embedderOptions)

func WithModel(model string) Option {
	return func(o *embedderOptions) {
		if model != "" {
			o.model = model
		}
	}
}

func WithDimension(dimension int) Option {
	return func(o *embedderOptions) {
		if dimension > 0 {
			o.dimension = dimension
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *embedderOptions) {
		o.baseURL = baseURL
	}
}

func NewEmbedder(apiKey string, opts ...Option) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	options := embedderOptions{
		model:     DefaultModel,
		dimension: DefaultDimension,
	}
	for _, opt := range opts {
		opt(&options)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if options.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(options.baseURL))
	}

	return &Embedder{
		client:    openai.NewClient(reqOpts...),
		model:     options.model,
		dimension: options.dimension,
	}, nil
}

func (e *Embedder) Name() string { return "openai" }

func (e *Embedder) Model() string { return e.model }

func (e *Embedder) Dimension() int { return e.dimension }

// Embed splits texts into batches of at most 100 inputs.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))
		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	}
	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	embeddings := make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		if data.Index < 0 || int(data.Index) >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		embeddings[data.Index] = vector
	}
	return embeddings, nil
}
