package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// GenerateAction regenerates the catalog and writes it to the listings file.
func GenerateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	count := int(cmd.Int("count"))
	if count == 0 {
		count = appCtx.Deps.AppConfig.Generation.Count
	}

	batch, err := appCtx.Deps.Catalog.Regenerate(ctx, appCtx.Deps.Generator, count)
	if err != nil {
		return fmt.Errorf("failed to generate listings: %w", err)
	}

	path := appCtx.Config.ListingsPath
	if err := appCtx.Deps.Catalog.Save(path); err != nil {
		return err
	}

	w := output(cmd)
	fmt.Fprintf(w, "Generated %d/%d listings (%d failures) into %s\n", len(batch.Listings), batch.Requested, batch.Failures, path)
	if batch.Aborted {
		fmt.Fprintln(w, "Generation stopped early after too many consecutive failures")
	}
	return renderReport(w, batch.Listings)
}
