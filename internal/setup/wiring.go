package setup

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/povarna/generative-ai-agents/homematch/internal/cache"
	"github.com/povarna/generative-ai-agents/homematch/internal/catalog"
	"github.com/povarna/generative-ai-agents/homematch/internal/config"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding/openai"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding/tfidf"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding/titan"
	"github.com/povarna/generative-ai-agents/homematch/internal/generation"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm/gpt"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
	"github.com/povarna/generative-ai-agents/homematch/internal/quality"
	"github.com/povarna/generative-ai-agents/homematch/internal/redis"
	"github.com/povarna/generative-ai-agents/homematch/internal/retrieval"
	"github.com/povarna/generative-ai-agents/homematch/internal/rewrite"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore/memory"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore/pgvector"
)

// Config is the environment-level configuration. Model prompts, generation
// pools and search defaults live in the YAML file loaded by internal/config.
type Config struct {
	LogLevel string
	APIPort  string

	LLMProvider   string
	AWSRegion     string
	ClaudeModelID string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModelID string

	EmbeddingProvider  string
	EmbeddingModelID   string
	EmbeddingDimension int

	IndexBackend string
	Postgres     pgvector.Config

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	ListingsPath string
	// RewriteQueries overrides search.rewrite from the YAML file when set.
	RewriteQueries *bool
}

type Dependencies struct {
	AppConfig    *config.Config
	LLM          llm.LLMClient
	Catalog      *catalog.Catalog
	Search       *search.Orchestrator
	Generator    *generation.Orchestrator
	Personalizer *personalize.Personalizer
	Redis        *goredis.Client
	Logger       *zerolog.Logger

	closers []func()
}

// Close releases connections opened by Wire.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func LoadConfig() *Config {
	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIPort:  getEnv("API_PORT", "8080"),

		LLMProvider:   getEnv("LLM_PROVIDER", "bedrock"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModelID: getEnv("OPENAI_MODEL_ID", "gpt-4o-mini"),

		EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "tfidf"),
		EmbeddingModelID:   getEnv("EMBEDDING_MODEL_ID", ""),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 0),

		IndexBackend: getEnv("INDEX_BACKEND", "memory"),
		Postgres: pgvector.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "homematch"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Table:    getEnv("DB_TABLE", pgvector.DefaultTable),
		},

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", cache.DefaultTTL),

		ListingsPath: getEnv("LISTINGS_PATH", "listings.json"),
	}
	if _, ok := os.LookupEnv("SEARCH_REWRITE"); ok {
		rewrite := getEnvBool("SEARCH_REWRITE", false)
		cfg.RewriteQueries = &rewrite
	}
	return cfg
}

// Wire builds every component from cfg. Listings found at cfg.ListingsPath
// are loaded into the catalog; a missing file starts an empty corpus.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	appCfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load application config: %w", err)
	}

	deps := &Dependencies{AppConfig: appCfg, Logger: logger}

	llmClient, err := createLLMClient(ctx, cfg.LLMProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}
	deps.LLM = llmClient

	embedder, err := createEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	index, err := createIndex(ctx, cfg, embedder, deps, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}

	store := listing.NewStore()
	deps.Catalog = catalog.New(store, index, logger)

	if cfg.ListingsPath != "" {
		if _, err := deps.Catalog.Load(ctx, cfg.ListingsPath); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				deps.Close()
				return nil, fmt.Errorf("failed to load listings: %w", err)
			}
			logger.Warn().Str("file", cfg.ListingsPath).Msg("No listings file found, starting with an empty catalog")
		}
	}

	searchOpts, err := searchOptions(ctx, cfg, appCfg, llmClient, deps, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}
	engine := retrieval.NewEngine(deps.Catalog, index, logger)
	deps.Search = search.NewOrchestrator(engine, deps.Catalog, logger, searchOpts...)

	picker, err := generation.NewPicker(appCfg.Generation, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to create attribute picker: %w", err)
	}
	generator, err := generation.NewGenerator(llmClient, appCfg.Models.Generation, appCfg.Prompts.Generation, logger)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Generator = generation.NewOrchestrator(picker, generator, appCfg.Generation.MaxConsecutiveFailures, logger)

	var personalizeOpts []personalize.Option
	if !appCfg.Personalization.SkipQualityChecks {
		personalizeOpts = append(personalizeOpts, personalize.WithQualityGate(quality.NewGate(quality.DefaultRunner(), logger)))
	}
	deps.Personalizer, err = personalize.NewPersonalizer(llmClient, appCfg.Models.Personalization, appCfg.Prompts.Personalization, logger, personalizeOpts...)
	if err != nil {
		deps.Close()
		return nil, err
	}

	logger.Info().
		Str("llm_provider", cfg.LLMProvider).
		Str("embedder", embedder.Name()).
		Str("index", cfg.IndexBackend).
		Bool("cache", deps.Redis != nil).
		Int("listings", deps.Catalog.Len()).
		Msg("Components wired")

	return deps, nil
}

func searchOptions(ctx context.Context, cfg *Config, appCfg *config.Config, client llm.LLMClient, deps *Dependencies, logger *zerolog.Logger) ([]search.Option, error) {
	var opts []search.Option

	rewriteQueries := appCfg.Search.Rewrite
	if cfg.RewriteQueries != nil {
		rewriteQueries = *cfg.RewriteQueries
	}
	if rewriteQueries {
		rewriter, err := rewrite.NewRewriter(client, appCfg.Models.Rewrite, appCfg.Prompts.Rewrite, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, search.WithRewriter(rewriter))
	}

	if cfg.RedisAddr != "" {
		rdb, err := redis.Connect(ctx, redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, Attempts: 3}, logger)
		if err != nil {
			return nil, err
		}
		deps.Redis = rdb
		deps.closers = append(deps.closers, func() { rdb.Close() })
		opts = append(opts, search.WithCache(cache.NewSearchCache(rdb, cfg.CacheTTL, logger)))
	}

	return opts, nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock", "":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModelID)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func createEmbedder(ctx context.Context, cfg *Config) (embedding.Embedder, error) {
	switch cfg.EmbeddingProvider {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "titan":
		return titan.NewEmbedder(ctx, cfg.AWSRegion, cfg.EmbeddingModelID, cfg.EmbeddingDimension)
	case "openai":
		return openai.NewEmbedder(cfg.OpenAIKey,
			openai.WithModel(cfg.EmbeddingModelID),
			openai.WithDimension(cfg.EmbeddingDimension),
			openai.WithBaseURL(cfg.OpenAIBaseURL),
		)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbeddingProvider)
	}
}

func createIndex(ctx context.Context, cfg *Config, embedder embedding.Embedder, deps *Dependencies, logger *zerolog.Logger) (vectorstore.Index, error) {
	switch cfg.IndexBackend {
	case "memory", "":
		return memory.NewIndex(embedder, logger), nil
	case "pgvector":
		index, err := pgvector.Connect(ctx, cfg.Postgres, embedder, logger)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, index.Close)
		if err := index.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return index, nil
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", cfg.IndexBackend)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
