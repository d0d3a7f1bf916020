package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/homematch/internal/models"
	red "github.com/povarna/generative-ai-agents/homematch/internal/redis"
	"github.com/povarna/generative-ai-agents/homematch/internal/stream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	query := flag.String("q", "", "Free-text buyer preferences")
	count := flag.Int("count", 0, "Number of listings to return (0 uses the worker default)")
	requestID := flag.String("id", "", "Request ID (generated when empty)")
	streamName := flag.String("stream", stream.DefaultRequestStream, "Stream name")
	flag.Parse()

	if *query == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -q '<preferences>' [-count N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	req := models.SearchRequest{RequestID: *requestID, Query: *query, Count: *count}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	if err := run(req, *streamName); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(req models.SearchRequest, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client, err := red.Connect(ctx, red.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), Attempts: 3}, &log.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": string(payload)},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("request_id", req.RequestID).Msg("Published successfully!")
	return nil
}
