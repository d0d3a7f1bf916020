package mcpadapter

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/personalize"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
)

type Searcher interface {
	Search(ctx context.Context, rawQuery string, desiredCount int) (*search.Result, error)
}

type ListingSource interface {
	Listings() []listing.Listing
}

type Personalizer interface {
	PersonalizeAll(ctx context.Context, ls []listing.Listing, preferences string) []personalize.Result
}

// Tools holds the collaborators behind the MCP tools.
type Tools struct {
	Searcher     Searcher
	Listings     ListingSource
	Personalizer Personalizer
	DefaultCount int
}

// NewServer returns an MCP server exposing search_listings,
// extract_constraints, analyze_diversity and personalize_listing.
func NewServer(name, version string, tools Tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_listings",
		Description: "Find real estate listings matching free-text buyer preferences. Budget and bedroom constraints stated in the query are enforced.",
	}, tools.SearchListings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_constraints",
		Description: "Extract the budget ceiling and minimum bedroom count from a free-text query",
	}, tools.ExtractConstraints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_diversity",
		Description: "Diversity score and quality grade of the current listing catalog",
	}, tools.AnalyzeDiversity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "personalize_listing",
		Description: "Search listings for the buyer preferences and rewrite their descriptions for that buyer",
	}, tools.PersonalizeListing)

	return server
}

func (t Tools) SearchListings(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := t.Searcher.Search(ctx, input.Query, t.count(input.Count))
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, toSearchOutput(result), nil
}

func (t Tools) ExtractConstraints(_ context.Context, _ *mcp.CallToolRequest, input ConstraintsInput) (*mcp.CallToolResult, ConstraintsOutput, error) {
	return nil, toConstraintsOutput(constraints.Extract(input.Query)), nil
}

func (t Tools) AnalyzeDiversity(_ context.Context, _ *mcp.CallToolRequest, _ DiversityInput) (*mcp.CallToolResult, diversity.Report, error) {
	report := diversity.Analyze(t.Listings.Listings())
	if report.Duplicates.Neighborhoods == nil {
		report.Duplicates.Neighborhoods = map[string]int{}
	}
	if report.Duplicates.Prices == nil {
		report.Duplicates.Prices = map[string]int{}
	}
	return nil, report, nil
}

func (t Tools) PersonalizeListing(ctx context.Context, _ *mcp.CallToolRequest, input PersonalizeInput) (*mcp.CallToolResult, PersonalizeOutput, error) {
	if strings.TrimSpace(input.Preferences) == "" {
		return nil, PersonalizeOutput{}, errors.New("preferences must not be empty")
	}

	result, err := t.Searcher.Search(ctx, input.Preferences, t.count(input.Count))
	if err != nil {
		return nil, PersonalizeOutput{}, err
	}

	out := PersonalizeOutput{Preferences: input.Preferences, Results: []PersonalizedListing{}}
	for _, r := range t.Personalizer.PersonalizeAll(ctx, result.Listings, input.Preferences) {
		out.Results = append(out.Results, toPersonalizedListing(r))
	}
	return nil, out, nil
}

func (t Tools) count(requested int) int {
	if requested > 0 {
		return requested
	}
	if t.DefaultCount > 0 {
		return t.DefaultCount
	}
	return 3
}
