package redis

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	// Stream carries SearchRequest messages; ResultStream receives the
	// SearchResponse for each of them.
	Stream       string
	ResultStream string
	Group        string
	ConsumerName string
	DefaultCount int
}

func NewRedisStreamConfig(redisAddr, redisPassword, stream, resultStream, group, consumerName string, defaultCount int) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		Stream:        stream,
		ResultStream:  resultStream,
		Group:         group,
		ConsumerName:  consumerName,
		DefaultCount:  defaultCount,
	}
}
