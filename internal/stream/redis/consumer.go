package redis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/povarna/generative-ai-agents/homematch/internal/models"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const payloadField = "payload"

type Searcher interface {
	Search(ctx context.Context, rawQuery string, desiredCount int) (*search.Result, error)
}

// Consumer reads SearchRequest messages through a consumer group, runs the
// search and publishes a SearchResponse. Every message is ACKed, including
// the ones that fail to decode.
type Consumer struct {
	client       redis.Cmdable
	stream       string
	resultStream string
	groupID      string
	consumerName string
	defaultCount int
	searcher     Searcher
	logger       *zerolog.Logger
}

func NewConsumer(client redis.Cmdable, cfg *RedisStreamConfig, searcher Searcher, logger *zerolog.Logger) *Consumer {
	defaultCount := cfg.DefaultCount
	if defaultCount < 1 {
		defaultCount = 3
	}
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		defaultCount: defaultCount,
		searcher:     searcher,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("result_stream", c.resultStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

// Stop closes the underlying connection when the consumer owns one.
func (c *Consumer) Stop() error {
	if closer, ok := c.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	resp := c.handle(ctx, msg)
	c.publish(ctx, resp)
	c.ack(ctx, msg.ID)
}

// handle turns one stream message into a response. It never fails: bad
// payloads and search errors become error responses.
func (c *Consumer) handle(ctx context.Context, msg redis.XMessage) models.SearchResponse {
	resp := models.SearchResponse{RequestID: msg.ID}

	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		return c.failed(resp, "missing payload field")
	}

	var req models.SearchRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		return c.failed(resp, "invalid payload: "+err.Error())
	}

	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	resp.RequestID = req.RequestID
	if req.Count == 0 {
		req.Count = c.defaultCount
	}

	result, err := c.searcher.Search(ctx, req.Query, req.Count)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", req.RequestID).Msg("Search failed")
		return c.failed(resp, err.Error())
	}

	c.logger.Info().
		Str("request_id", req.RequestID).
		Int("returned", len(result.Listings)).
		Bool("cached", result.Cached).
		Msg("Search complete")

	resp.Status = models.StatusOK
	resp.Result = result
	resp.CompletedAt = time.Now().UTC()
	return resp
}

func (c *Consumer) failed(resp models.SearchResponse, reason string) models.SearchResponse {
	resp.Status = models.StatusError
	resp.Error = reason
	resp.CompletedAt = time.Now().UTC()
	return resp
}

func (c *Consumer) publish(ctx context.Context, resp models.SearchResponse) {
	if c.resultStream == "" {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", resp.RequestID).Msg("Failed to encode response")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{payloadField: string(data)},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", resp.RequestID).Msg("Failed to publish response")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
