package batch

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/povarna/generative-ai-agents/homematch/internal/models"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/rs/zerolog"
)

type Searcher interface {
	Search(ctx context.Context, rawQuery string, desiredCount int) (*search.Result, error)
}

// Processor runs searches for input records on a fixed pool of workers.
// Results arrive in completion order.
type Processor struct {
	searcher     Searcher
	workers      int
	defaultCount int
	logger       *zerolog.Logger
}

func NewProcessor(searcher Searcher, workers int, defaultCount int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	if defaultCount < 1 {
		defaultCount = 3
	}
	return &Processor{
		searcher:     searcher,
		workers:      workers,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.SearchResponse {
	jobs := make(chan InputRecord)
	results := make(chan models.SearchResponse)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				select {
				case results <- p.run(ctx, record):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) run(ctx context.Context, record InputRecord) models.SearchResponse {
	id := record.Request.RequestID
	if id == "" {
		id = "line-" + strconv.Itoa(record.LineNumber)
	}
	resp := models.SearchResponse{RequestID: id}

	if record.Error != nil {
		resp.Status = models.StatusError
		resp.Error = record.Error.Error()
		resp.CompletedAt = time.Now().UTC()
		return resp
	}

	count := record.Request.Count
	if count == 0 {
		count = p.defaultCount
	}

	result, err := p.searcher.Search(ctx, record.Request.Query, count)
	resp.CompletedAt = time.Now().UTC()
	if err != nil {
		p.logger.Warn().Err(err).Str("request_id", id).Msg("Search failed")
		resp.Status = models.StatusError
		resp.Error = err.Error()
		return resp
	}

	resp.Status = models.StatusOK
	resp.Result = result
	return resp
}
