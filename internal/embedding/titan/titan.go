package titan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
)

const (
	DefaultModelID   = "amazon.titan-embed-text-v2:0"
	DefaultDimension = 1024
)

// ModelInvoker is the subset of *bedrockruntime.Client the embedder uses.
type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type embeddingRequest struct {
	InputText  string `json:"inputText"`
	Dimensions int    `json:"dimensions"`
	Normalize  bool   `json:"normalize"`
}

type embeddingResponse struct {
	Embedding           []float32 `json:"embedding"`
	InputTextTokenCount int       `json:"inputTextTokenCount"`
}

// Embedder calls Titan Text Embeddings on Bedrock, one request per text.
type Embedder struct {
	client    ModelInvoker
	modelID   string
	dimension int
}

var _ embedding.Embedder = (*Embedder)(nil)

func NewEmbedder(ctx context.Context, region, modelID string, dimension int) (*Embedder, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return NewWithClient(bedrockruntime.NewFromConfig(cfg), modelID, dimension), nil
}

func NewWithClient(client ModelInvoker, modelID string, dimension int) *Embedder {
	if modelID == "" {
		modelID = DefaultModelID
	}
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Embedder{client: client, modelID: modelID, dimension: dimension}
}

func (e *Embedder) Name() string { return "titan" }

func (e *Embedder) Dimension() int { return e.dimension }

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d: %w", i, err)
		}
		out = append(out, vec)
	}
	return out, nil
}

func (e *Embedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{
		InputText:  text,
		Dimensions: e.dimension,
		Normalize:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to serialize titan request: %w", err)
	}

	output, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.modelID),
		Body:        body,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to invoke titan model: %w", err)
	}

	var response embeddingResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal titan response: %w", err)
	}
	if len(response.Embedding) != e.dimension {
		return nil, fmt.Errorf("titan returned %d dimensions, expected %d", len(response.Embedding), e.dimension)
	}
	return response.Embedding, nil
}
