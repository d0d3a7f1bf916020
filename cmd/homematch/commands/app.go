package commands

import "github.com/urfave/cli/v3"

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "environment file path",
		Value: ".env",
	}
}

func listingsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "listings",
		Usage: "listings JSON file (defaults to LISTINGS_PATH)",
	}
}

// App builds the homematch command tree.
func App() *cli.Command {
	return &cli.Command{
		Name:  "homematch",
		Usage: "generate real-estate listings and match them to buyer preferences",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a synthetic catalog with the language model and save it",
				Flags: []cli.Flag{
					envFlag(),
					listingsFlag(),
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of listings to generate (defaults to generation.count)",
					},
				},
				Action: GenerateAction,
			},
			{
				Name:  "search",
				Usage: "find listings matching free-text preferences",
				Flags: []cli.Flag{
					envFlag(),
					listingsFlag(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "buyer preferences",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of listings to return (defaults to search.default_count)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the full result as JSON",
					},
				},
				Action: SearchAction,
			},
			{
				Name:  "personalize",
				Usage: "search, then rewrite each match's description for the buyer",
				Flags: []cli.Flag{
					envFlag(),
					listingsFlag(),
					&cli.StringFlag{
						Name:     "preferences",
						Aliases:  []string{"p"},
						Usage:    "buyer preferences",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "count",
						Usage: "number of listings to personalize",
					},
				},
				Action: PersonalizeAction,
			},
			{
				Name:  "analyze",
				Usage: "report diversity and quality of a listings file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listings",
						Usage: "listings JSON file",
						Value: "listings.json",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the report as JSON",
					},
				},
				Action: AnalyzeAction,
			},
			{
				Name:  "constraints",
				Usage: "show the budget and bedroom constraints found in a query",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "buyer preferences",
						Required: true,
					},
				},
				Action: ConstraintsAction,
			},
		},
	}
}
