package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/homematch/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/homematch/internal/catalog"
	"github.com/povarna/generative-ai-agents/homematch/internal/config"
	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/generation"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/rs/zerolog"
)

const apiVersion = "1.0.0"

type Searcher interface {
	Search(ctx context.Context, rawQuery string, desiredCount int) (*search.Result, error)
}

type Catalog interface {
	Listings() []listing.Listing
	Version() uint64
	Len() int
	Replace(ctx context.Context, listings []listing.Listing) (uint64, error)
	Regenerate(ctx context.Context, gen catalog.Generator, n int) (*generation.Batch, error)
}

type Personalizer interface {
	PersonalizeAll(ctx context.Context, ls []listing.Listing, preferences string) []personalize.Result
}

// Limits bounds request counts.
type Limits struct {
	DefaultSearchCount int
	MaxSearchCount     int
	GenerationCount    int
	MaxGenerationCount int
}

func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		DefaultSearchCount: cfg.Search.DefaultCount,
		MaxSearchCount:     cfg.Search.MaxCount,
		GenerationCount:    cfg.Generation.Count,
		MaxGenerationCount: cfg.Generation.MaxCount,
	}
}

type Handler struct {
	searcher     Searcher
	catalog      Catalog
	generator    catalog.Generator
	personalizer Personalizer
	limits       Limits
	logger       *zerolog.Logger
}

func NewHandler(searcher Searcher, cat Catalog, generator catalog.Generator, personalizer Personalizer, limits Limits, logger *zerolog.Logger) *Handler {
	return &Handler{
		searcher:     searcher,
		catalog:      cat,
		generator:    generator,
		personalizer: personalizer,
		limits:       limits,
		logger:       logger,
	}
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  apiVersion,
		Listings: h.catalog.Len(),
	})
}

// POST /api/v1/search
// Body: SearchRequest
// Returns: search.Result
func (h *Handler) Search(req *restful.Request, resp *restful.Response) {
	var searchRequest SearchRequest
	if err := req.ReadEntity(&searchRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	count, err := h.searchCount(searchRequest.Count)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", req.HeaderParameter(middleware.RequestIDHeader)).
		Str("query", searchRequest.Query).
		Int("count", count).
		Msg("Start search")

	result, err := h.searcher.Search(req.Request.Context(), searchRequest.Query, count)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/constraints
func (h *Handler) Constraints(req *restful.Request, resp *restful.Response) {
	var constraintsRequest ConstraintsRequest
	if err := req.ReadEntity(&constraintsRequest); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	set := constraints.Extract(constraintsRequest.Query)
	resp.WriteHeaderAndEntity(http.StatusOK, ConstraintsResponse{
		Query:       constraintsRequest.Query,
		Constraints: set,
		Summary:     set.String(),
	})
}

// GET /api/v1/listings
func (h *Handler) ListListings(req *restful.Request, resp *restful.Response) {
	listings := h.catalog.Listings()
	resp.WriteHeaderAndEntity(http.StatusOK, ListingsResponse{
		Version:  h.catalog.Version(),
		Count:    len(listings),
		Listings: listings,
	})
}

// PUT /api/v1/listings
// Body: JSON array of listings. The whole array is rejected when any record
// is invalid.
func (h *Handler) ReplaceListings(req *restful.Request, resp *restful.Response) {
	var raw []json.RawMessage
	if err := req.ReadEntity(&raw); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	listings := make([]listing.Listing, 0, len(raw))
	for i, item := range raw {
		l, err := listing.Decode(item)
		if err != nil {
			middleware.HandleError(resp, fmt.Errorf("listing %d: %w", i, err), http.StatusBadRequest)
			return
		}
		listings = append(listings, l)
	}

	version, err := h.catalog.Replace(req.Request.Context(), listings)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	h.logger.Info().Int("listings", len(listings)).Uint64("version", version).Msg("Listings replaced")
	resp.WriteHeaderAndEntity(http.StatusOK, ReplaceResponse{Version: version, Count: len(listings)})
}

// POST /api/v1/listings/generate
func (h *Handler) GenerateListings(req *restful.Request, resp *restful.Response) {
	var generateRequest GenerateRequest
	if req.Request.ContentLength != 0 {
		if err := req.ReadEntity(&generateRequest); err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
	}

	count, err := h.generationCount(generateRequest.Count)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	batch, err := h.catalog.Regenerate(req.Request.Context(), h.generator, count)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, GenerateResponse{Version: h.catalog.Version(), Batch: batch})
}

// GET /api/v1/diversity
func (h *Handler) Diversity(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, diversity.Analyze(h.catalog.Listings()))
}

// POST /api/v1/personalize
func (h *Handler) Personalize(req *restful.Request, resp *restful.Response) {
	var personalizeRequest PersonalizeRequest
	if err := req.ReadEntity(&personalizeRequest); err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(personalizeRequest.Preferences) == "" {
		middleware.HandleError(resp, errors.New("preferences must not be empty"), http.StatusBadRequest)
		return
	}

	ctx := req.Request.Context()
	listings := personalizeRequest.Listings
	if len(listings) == 0 {
		count, err := h.searchCount(personalizeRequest.Count)
		if err != nil {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		result, err := h.searcher.Search(ctx, personalizeRequest.Preferences, count)
		if err != nil {
			middleware.HandleError(resp, err, statusFor(err))
			return
		}
		listings = result.Listings
	}

	resp.WriteHeaderAndEntity(http.StatusOK, PersonalizeResponse{
		Preferences: personalizeRequest.Preferences,
		Results:     h.personalizer.PersonalizeAll(ctx, listings, personalizeRequest.Preferences),
	})
}

func (h *Handler) searchCount(requested int) (int, error) {
	if requested == 0 {
		requested = h.limits.DefaultSearchCount
	}
	if requested < 1 {
		return 0, search.ErrInvalidCount
	}
	if h.limits.MaxSearchCount > 0 && requested > h.limits.MaxSearchCount {
		return 0, fmt.Errorf("count must be at most %d", h.limits.MaxSearchCount)
	}
	return requested, nil
}

func (h *Handler) generationCount(requested int) (int, error) {
	if requested == 0 {
		requested = h.limits.GenerationCount
	}
	if requested < 1 {
		return 0, generation.ErrInvalidCount
	}
	if h.limits.MaxGenerationCount > 0 && requested > h.limits.MaxGenerationCount {
		return 0, fmt.Errorf("count must be at most %d", h.limits.MaxGenerationCount)
	}
	return requested, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, search.ErrInvalidCount),
		errors.Is(err, generation.ErrInvalidCount),
		errors.Is(err, listing.ErrInvalidListing):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrNoListings):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
