package commands

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// AnalyzeAction prints the diversity report for a listings file. It needs no
// model or index, so nothing is wired.
func AnalyzeAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("listings")
	listings, loadReport, err := listing.LoadFile(path, &log.Logger)
	if err != nil {
		return err
	}

	w := output(cmd)
	if loadReport.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d invalid records in %s\n", loadReport.Skipped, path)
	}

	if cmd.Bool("json") {
		return printJSON(w, diversity.Analyze(listings))
	}
	return renderReport(w, listings)
}

func renderReport(w io.Writer, listings []listing.Listing) error {
	report := diversity.Analyze(listings)
	if report.Empty() {
		fmt.Fprintln(w, report.Message)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Listings", strconv.Itoa(report.TotalListings)},
		{"Unique neighborhoods", strconv.Itoa(report.UniqueNeighborhoods)},
		{"Unique prices", strconv.Itoa(report.UniquePrices)},
		{"Unique bedroom counts", strconv.Itoa(report.UniqueBedrooms)},
		{"Bedrooms", fmt.Sprintf("%d-%d", report.BedroomRange.Min, report.BedroomRange.Max)},
		{"Bathrooms", fmt.Sprintf("%d-%d", report.BathroomRange.Min, report.BathroomRange.Max)},
		{"Diversity score", fmt.Sprintf("%.1f", report.Score)},
		{"Quality", report.Grade},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := renderDuplicates(w, "Repeated neighborhoods", report.Duplicates.Neighborhoods); err != nil {
		return err
	}
	return renderDuplicates(w, "Repeated prices", report.Duplicates.Prices)
}

func renderDuplicates(w io.Writer, title string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n%s\n", title)
	table := tablewriter.NewWriter(w)
	table.Header("Value", "Count")
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		if err := table.Append(key, strconv.Itoa(counts[key])); err != nil {
			return err
		}
	}
	return table.Render()
}
