package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
	"github.com/urfave/cli/v3"
)

// SearchAction runs a search against the catalog loaded from the listings file.
func SearchAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	count := int(cmd.Int("count"))
	if count == 0 {
		count = appCtx.Deps.AppConfig.Search.DefaultCount
	}

	result, err := appCtx.Deps.Search.Search(ctx, cmd.String("query"), count)
	if err != nil {
		return err
	}

	w := output(cmd)
	if cmd.Bool("json") {
		return printJSON(w, result)
	}
	return renderSearchResult(w, result)
}

func renderSearchResult(w io.Writer, result *search.Result) error {
	fmt.Fprintf(w, "Query: %s\n", result.Query)
	if result.RewrittenQuery != "" && result.RewrittenQuery != result.Query {
		fmt.Fprintf(w, "Rewritten: %s\n", result.RewrittenQuery)
	}
	fmt.Fprintf(w, "Constraints: %s\n", result.Constraints.String())
	fmt.Fprintf(w, "Candidates: %d, matched: %d, returned: %d\n\n", result.Candidates, result.Matched, len(result.Listings))

	if len(result.Listings) == 0 {
		fmt.Fprintln(w, "No listings match these preferences.")
		return nil
	}
	return renderListings(w, result.Listings)
}

func renderListings(w io.Writer, listings []listing.Listing) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Neighborhood", "Price", "Beds", "Baths", "Size")
	for i, l := range listings {
		if err := table.Append(
			strconv.Itoa(i+1),
			l.Neighborhood,
			l.Price.String(),
			strconv.Itoa(l.Bedrooms),
			strconv.Itoa(l.Bathrooms),
			l.HouseSize,
		); err != nil {
			return err
		}
	}
	return table.Render()
}
