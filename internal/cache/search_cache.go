package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	KeyPrefix  = "homematch:search:"
	DefaultTTL = 10 * time.Minute
)

// SearchCache keeps search results in Redis. Failures never reach the
// caller: a read error is a miss and a write error is logged.
type SearchCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewSearchCache(client redis.Cmdable, ttl time.Duration, logger *zerolog.Logger) *SearchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SearchCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Key hashes the corpus fingerprint, count, rewrite flag and raw query. A
// different corpus makes every older entry unreachable.
func Key(k search.Key) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%t|%s", k.Corpus, k.Count, k.Rewrite, k.Query))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

func (c *SearchCache) Get(ctx context.Context, key search.Key) (*search.Result, bool) {
	data, err := c.client.Get(ctx, Key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("query", key.Query).Msg("Search cache read failed")
		}
		return nil, false
	}

	var result search.Result
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn().Err(err).Str("query", key.Query).Msg("Discarding undecodable cache entry")
		return nil, false
	}
	return &result, true
}

func (c *SearchCache) Set(ctx context.Context, key search.Key, result *search.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to encode search result for cache")
		return
	}
	if err := c.client.Set(ctx, Key(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("query", key.Query).Msg("Search cache write failed")
	}
}
