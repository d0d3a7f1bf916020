package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// PersonalizeAction searches with the buyer's preferences and rewrites each
// match's description for them.
func PersonalizeAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	preferences := cmd.String("preferences")
	count := int(cmd.Int("count"))
	if count == 0 {
		count = appCtx.Deps.AppConfig.Search.DefaultCount
	}

	result, err := appCtx.Deps.Search.Search(ctx, preferences, count)
	if err != nil {
		return err
	}

	w := output(cmd)
	if len(result.Listings) == 0 {
		fmt.Fprintln(w, "No listings match these preferences.")
		return nil
	}

	for i, r := range appCtx.Deps.Personalizer.PersonalizeAll(ctx, result.Listings, preferences) {
		fmt.Fprintf(w, "%d. %s | %s | %d bd / %d ba | %s\n", i+1,
			r.Listing.Neighborhood, r.Listing.Price, r.Listing.Bedrooms, r.Listing.Bathrooms, r.Listing.HouseSize)
		if !r.Personalized {
			fmt.Fprintln(w, "   (original description)")
		}
		fmt.Fprintf(w, "   %s\n\n", r.Description)
	}
	return nil
}
