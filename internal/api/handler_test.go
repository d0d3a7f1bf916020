package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/homematch/internal/api"
	"github.com/povarna/generative-ai-agents/homematch/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/homematch/internal/catalog"
	"github.com/povarna/generative-ai-agents/homematch/internal/config"
	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/embedding/tfidf"
	"github.com/povarna/generative-ai-agents/homematch/internal/generation"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm"
	"github.com/povarna/generative-ai-agents/homematch/internal/llm/mocks"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
	"github.com/povarna/generative-ai-agents/homematch/internal/retrieval"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/povarna/generative-ai-agents/homematch/internal/vectorstore/memory"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

type stubGenerator struct {
	listings []listing.Listing
	err      error
}

func (s stubGenerator) Generate(_ context.Context, n int) (*generation.Batch, error) {
	if n < 1 {
		return nil, generation.ErrInvalidCount
	}
	if s.err != nil {
		return &generation.Batch{Requested: n, Failures: n}, s.err
	}
	return &generation.Batch{Requested: n, Listings: s.listings}, nil
}

func sampleListings() []listing.Listing {
	return []listing.Listing{
		{Neighborhood: "Green Oaks", Price: listing.NewPrice(650000), Bedrooms: 4, Bathrooms: 3, HouseSize: "2400 sqft",
			Description: "Family home with a big backyard", NeighborhoodDescription: "Quiet suburb with top schools"},
		{Neighborhood: "Downtown", Price: listing.NewPrice(900000), Bedrooms: 2, Bathrooms: 2, HouseSize: "1200 sqft",
			Description: "Modern loft with city views", NeighborhoodDescription: "Nightlife and restaurants"},
		{Neighborhood: "Seaside", Price: listing.NewPrice(1200000), Bedrooms: 3, Bathrooms: 2, HouseSize: "1800 sqft",
			Description: "Beach cottage with ocean views", NeighborhoodDescription: "Walkable beach town"},
	}
}

type testAPI struct {
	container *restful.Container
	catalog   *catalog.Catalog
	llm       *mocks.MockLLMClient
}

func setupAPI(t *testing.T, gen catalog.Generator) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockLLMClient(ctrl)
	logger := zerolog.Nop()

	index := memory.NewIndex(tfidf.NewEmbedder(), &logger)
	cat := catalog.New(listing.NewStore(), index, &logger)
	if _, err := cat.Replace(context.Background(), sampleListings()); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	searcher := search.NewOrchestrator(retrieval.NewEngine(cat, index, &logger), cat, &logger)
	personalizer, err := personalize.NewPersonalizer(client, llm.Params{MaxTokens: 500}, config.DefaultPersonalizationPrompt, &logger)
	if err != nil {
		t.Fatalf("NewPersonalizer() failed: %v", err)
	}

	if gen == nil {
		gen = stubGenerator{listings: sampleListings()[:1]}
	}
	handler := api.NewHandler(searcher, cat, gen, personalizer, api.LimitsFromConfig(config.Default()), &logger)

	container := restful.NewContainer()
	container.Filter(middleware.RequestID)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)
	api.RegisterOpenAPI(container)

	return &testAPI{container: container, catalog: cat, llm: client}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	a.container.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(recorder.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to parse response: %v. Body: %s", err, recorder.Body.String())
	}
	return v
}

func TestAPI_Health(t *testing.T) {
	a := setupAPI(t, nil)

	recorder := a.do(t, http.MethodGet, "/api/v1/health", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	response := decode[api.HealthResponse](t, recorder)
	if response.Status != "ok" || response.Listings != 3 {
		t.Errorf("unexpected health response: %+v", response)
	}
}

func TestAPI_Search(t *testing.T) {
	tests := []struct {
		name       string
		body       api.SearchRequest
		wantStatus int
		check      func(t *testing.T, result search.Result)
	}{
		{
			name:       "budget and bedrooms from the raw query",
			body:       api.SearchRequest{Query: "family home with 3 bedrooms under $1M", Count: 5},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, result search.Result) {
				for _, l := range result.Listings {
					amount, _ := l.Price.Amount()
					if amount > 1000000 || l.Bedrooms < 3 {
						t.Errorf("listing violates constraints: %+v", l)
					}
				}
				if len(result.Listings) != 1 || result.Listings[0].Neighborhood != "Green Oaks" {
					t.Errorf("unexpected listings: %+v", result.Listings)
				}
			},
		},
		{
			name:       "count bound",
			body:       api.SearchRequest{Query: "home", Count: 2},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, result search.Result) {
				if len(result.Listings) > 2 {
					t.Errorf("got %d listings, want at most 2", len(result.Listings))
				}
			},
		},
		{
			name:       "default count",
			body:       api.SearchRequest{Query: "ocean views"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "empty query",
			body:       api.SearchRequest{Query: "  ", Count: 2},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "count above maximum",
			body:       api.SearchRequest{Query: "home", Count: 1000},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative count",
			body:       api.SearchRequest{Query: "home", Count: -1},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := setupAPI(t, nil)
			recorder := a.do(t, http.MethodPost, "/api/v1/search", tt.body)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.wantStatus, recorder.Code, recorder.Body.String())
			}
			if tt.check != nil {
				tt.check(t, decode[search.Result](t, recorder))
			}
		})
	}
}

func TestAPI_Constraints(t *testing.T) {
	a := setupAPI(t, nil)

	recorder := a.do(t, http.MethodPost, "/api/v1/constraints", api.ConstraintsRequest{Query: "4 bedrooms, budget 650k"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	response := decode[api.ConstraintsResponse](t, recorder)
	if response.Constraints.Budget == nil || *response.Constraints.Budget != 650000 {
		t.Errorf("budget: got %v, want 650000", response.Constraints.Budget)
	}
	if response.Constraints.MinBedrooms == nil || *response.Constraints.MinBedrooms != 4 {
		t.Errorf("bedrooms: got %v, want 4", response.Constraints.MinBedrooms)
	}
}

func TestAPI_ReplaceListings(t *testing.T) {
	valid := `[{"neighborhood":"A","price":"$300,000","bedrooms":2,"bathrooms":1,"house_size":"900 sqft","description":"d","neighborhood_description":"n"}]`
	invalid := `[{"neighborhood":"A","price":"$300,000"}]`

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLen    int
	}{
		{name: "valid array", body: valid, wantStatus: http.StatusOK, wantLen: 1},
		{name: "invalid record rejects the whole array", body: invalid, wantStatus: http.StatusBadRequest, wantLen: 3},
		{name: "not an array", body: `{"neighborhood":"A"}`, wantStatus: http.StatusBadRequest, wantLen: 3},
		{name: "empty array clears", body: `[]`, wantStatus: http.StatusOK, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := setupAPI(t, nil)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/listings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			a.container.ServeHTTP(recorder, req)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.wantStatus, recorder.Code, recorder.Body.String())
			}
			if a.catalog.Len() != tt.wantLen {
				t.Errorf("catalog size: got %d, want %d", a.catalog.Len(), tt.wantLen)
			}

			list := decode[api.ListingsResponse](t, a.do(t, http.MethodGet, "/api/v1/listings", nil))
			if list.Count != tt.wantLen || len(list.Listings) != tt.wantLen {
				t.Errorf("listings response: got %d/%d, want %d", list.Count, len(list.Listings), tt.wantLen)
			}
		})
	}
}

func TestAPI_GenerateListings(t *testing.T) {
	tests := []struct {
		name       string
		gen        catalog.Generator
		body       any
		wantStatus int
		wantLen    int
	}{
		{name: "replaces catalog", gen: stubGenerator{listings: sampleListings()[:2]}, body: api.GenerateRequest{Count: 2}, wantStatus: http.StatusOK, wantLen: 2},
		{name: "default count without body", gen: stubGenerator{listings: sampleListings()[:1]}, wantStatus: http.StatusOK, wantLen: 1},
		{name: "nothing generated", gen: stubGenerator{err: generation.ErrNoListings}, body: api.GenerateRequest{Count: 2}, wantStatus: http.StatusBadGateway, wantLen: 3},
		{name: "invalid count", gen: stubGenerator{}, body: api.GenerateRequest{Count: -3}, wantStatus: http.StatusBadRequest, wantLen: 3},
		{name: "count above max", gen: stubGenerator{listings: sampleListings()[:1]}, body: api.GenerateRequest{Count: 1000000000}, wantStatus: http.StatusBadRequest, wantLen: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := setupAPI(t, tt.gen)
			recorder := a.do(t, http.MethodPost, "/api/v1/listings/generate", tt.body)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.wantStatus, recorder.Code, recorder.Body.String())
			}
			if a.catalog.Len() != tt.wantLen {
				t.Errorf("catalog size: got %d, want %d", a.catalog.Len(), tt.wantLen)
			}
		})
	}
}

func TestAPI_Diversity(t *testing.T) {
	a := setupAPI(t, nil)

	report := decode[diversity.Report](t, a.do(t, http.MethodGet, "/api/v1/diversity", nil))
	if report.TotalListings != 3 || report.UniqueNeighborhoods != 3 {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Score < 0 || report.Score > 100 {
		t.Errorf("score %v outside [0, 100]", report.Score)
	}
}

func TestAPI_Personalize(t *testing.T) {
	a := setupAPI(t, nil)

	a.llm.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(&llm.LLMResponse{Content: "A backyard made for your kids."}, nil)
	a.llm.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("throttled"))

	body := api.PersonalizeRequest{Preferences: "big backyard for the kids", Listings: sampleListings()[:2]}
	recorder := a.do(t, http.MethodPost, "/api/v1/personalize", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	response := decode[api.PersonalizeResponse](t, recorder)
	if len(response.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(response.Results))
	}
	if !response.Results[0].Personalized || response.Results[0].Description != "A backyard made for your kids." {
		t.Errorf("first result not personalized: %+v", response.Results[0])
	}
	if response.Results[1].Personalized || response.Results[1].Description != sampleListings()[1].Description {
		t.Errorf("second result should fall back to the original: %+v", response.Results[1])
	}
}

func TestAPI_Personalize_EmptyPreferences(t *testing.T) {
	a := setupAPI(t, nil)

	recorder := a.do(t, http.MethodPost, "/api/v1/personalize", api.PersonalizeRequest{})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", recorder.Code)
	}
}

func TestAPI_OpenAPI(t *testing.T) {
	a := setupAPI(t, nil)

	recorder := a.do(t, http.MethodGet, api.OpenAPIPath, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "/api/v1/search") {
		t.Error("OpenAPI document does not list the search route")
	}
}
