// Package pgvector stores listing documents in PostgreSQL with the pgvector
// extension and ranks them by cosine distance.
package pgvector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore"
	"github.com/rs/zerolog"
)

const DefaultTable = "listing_documents"

var ErrCorpusFittedEmbedder = errors.New("pgvector index needs a fixed-dimension embedder")

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Table    string
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

type Index struct {
	pool     *pgxpool.Pool
	embedder embedding.Embedder
	table    string
	logger   *zerolog.Logger
}

var _ vectorstore.Index = (*Index)(nil)

// Connect opens a pool, verifies it with a ping and returns an Index over
// cfg.Table. Call EnsureSchema before the first ReplaceAll.
func Connect(ctx context.Context, cfg Config, embedder embedding.Embedder, logger *zerolog.Logger) (*Index, error) {
	if _, ok := embedder.(embedding.Fitter); ok {
		return nil, fmt.Errorf("%w: %s", ErrCorpusFittedEmbedder, embedder.Name())
	}

	pool, err := pgxpool.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	logger.Info().Str("host", cfg.Host).Str("database", cfg.Database).Str("table", table).Msg("Connected to Postgres")
	return &Index{pool: pool, embedder: embedder, table: table, logger: logger}, nil
}

func (i *Index) Close() {
	i.pool.Close()
}

// EnsureSchema creates the vector extension and the documents table.
func (i *Index) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(i.table, i.embedder.Dimension()) {
		if _, err := i.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(table string, dimension int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
	  id TEXT PRIMARY KEY,
	  position INT NOT NULL,
	  content TEXT NOT NULL,
	  metadata JSONB NOT NULL,
	  embedding vector(%d) NOT NULL
	)`, table, dimension),
	}
}

// ReplaceAll embeds docs first and then swaps the table contents in one
// transaction, so readers see either the old or the new corpus.
func (i *Index) ReplaceAll(ctx context.Context, docs []vectorstore.Document) error {
	var vectors [][]float32
	if len(docs) > 0 {
		texts := make([]string, len(docs))
		for n, d := range docs {
			texts[n] = d.Text
		}

		var err error
		vectors, err = i.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed documents: %w", err)
		}
		if len(vectors) != len(docs) {
			return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(docs))
		}
	}

	tx, err := i.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, i.table)); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	insert := fmt.Sprintf(`
	INSERT INTO %s (id, position, content, metadata, embedding)
	VALUES ($1, $2, $3, $4, $5)`, i.table)

	for n, d := range docs {
		metadata, err := json.Marshal(d.Listing)
		if err != nil {
			return fmt.Errorf("failed to marshal listing %s: %w", d.ID, err)
		}
		if _, err := tx.Exec(ctx, insert, d.ID, n, d.Text, metadata, pgvector.NewVector(vectors[n])); err != nil {
			return fmt.Errorf("failed to insert document %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	i.logger.Info().Int("documents", len(docs)).Str("table", i.table).Msg("Index replaced")
	return nil
}

func (i *Index) Query(ctx context.Context, text string, k int) ([]vectorstore.Match, error) {
	if k <= 0 {
		return nil, nil
	}

	vecs, err := i.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for the query", len(vecs))
	}

	query := fmt.Sprintf(`
	SELECT
	  id,
	  metadata,
	  embedding <=> $1 AS distance
	FROM %s
	ORDER BY distance ASC, position ASC
	LIMIT $2`, i.table)

	rows, err := i.pool.Query(ctx, query, pgvector.NewVector(vecs[0]), k)
	if err != nil {
		return nil, fmt.Errorf("unable to query the database: %w", err)
	}
	defer rows.Close()

	var matches []vectorstore.Match
	for rows.Next() {
		var (
			id       string
			metadata []byte
			distance float64
		)
		if err := rows.Scan(&id, &metadata, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var l listing.Listing
		if err := json.Unmarshal(metadata, &l); err != nil {
			return nil, fmt.Errorf("failed to decode metadata of %s: %w", id, err)
		}
		matches = append(matches, vectorstore.Match{ID: id, Score: 1 - distance, Listing: l})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return matches, nil
}
