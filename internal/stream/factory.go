package stream

import (
	"context"
	"fmt"

	red "github.com/povarna/generative-ai-agents/homematch/internal/redis"
	"github.com/povarna/generative-ai-agents/homematch/internal/stream/redis"
	"github.com/rs/zerolog"
)

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	searcher redis.Searcher,
	logger *zerolog.Logger,
) (StreamConsumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := red.Connect(ctx, red.Options{
			Addr:     cfg.RedisConfig.RedisAddr,
			Password: cfg.RedisConfig.RedisPassword,
			Attempts: 5,
		}, logger)
		if err != nil {
			return nil, err
		}

		return redis.NewConsumer(client, cfg.RedisConfig, searcher, logger), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", provider)
	}
}
