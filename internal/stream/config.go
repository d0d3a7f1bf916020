package stream

import "github.com/povarna/generative-ai-agents/homematch/internal/stream/redis"

const (
	DefaultRequestStream  = "homematch-search"
	DefaultResultStream   = "homematch-results"
	DefaultConsumerGroup  = "homematch-group"
	DefaultConsumerPrefix = "homematch-worker"
)

type StreamConfig struct {
	Provider    string // only "redis" for now
	RedisConfig *redis.RedisStreamConfig
}
