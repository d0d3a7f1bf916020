package commands

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/homematch/internal/constraints"
	"github.com/urfave/cli/v3"
)

func ConstraintsAction(ctx context.Context, cmd *cli.Command) error {
	set := constraints.Extract(cmd.String("query"))

	w := output(cmd)
	if set.IsEmpty() {
		fmt.Fprintln(w, "No budget or bedroom constraints found")
		return nil
	}
	fmt.Fprintln(w, set.String())
	return nil
}
