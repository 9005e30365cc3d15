// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags(pretty bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: pretty,
		},
	}
}

// uriCommand classifies resource URIs
func uriCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "uri",
		Usage: "Classify a resource URI and extract its ids",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "uri",
			},
		},
		Flags:  outputFlags(false),
		Action: r.InspectURI,
	}
}

// imagesCommand normalizes image lists
func imagesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "images",
		Usage: "Normalize an image list (file or stdin) into small, medium, large and huge URLs",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: append(outputFlags(true),
			&cli.BoolFlag{
				Name:  "digest",
				Usage: "Resolve local daemon /images/ paths against the configured mopidy host",
			},
		),
		Action: r.NormalizeImages,
	}
}

// formatCommand formats provider payloads
func formatCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "format",
		Usage: "Format a provider payload (file or stdin) into canonical records",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: append(outputFlags(true),
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Payload shape: tracks, albums, records or mpd",
				Value:   "tracks",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Export tracks as CSV",
			},
			&cli.BoolFlag{
				Name:  "text",
				Usage: "Export tracks as a numbered text list",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the CSV export to this file",
			},
		),
		Action: r.FormatPayload,
	}
}

// collectCommand runs collection operations over a payload
func collectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Merge, filter, sort or shuffle the records of a payload (file or stdin)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: append(outputFlags(true),
			&cli.StringFlag{
				Name:  "merge",
				Usage: "Merge records sharing this key",
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Field matched by --filter and --first",
				Value: "name",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Keep records whose field contains this text",
			},
			&cli.StringFlag{
				Name:  "first",
				Usage: "Return only the first record whose field contains this text",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort by this (dotted) property",
			},
			&cli.BoolFlag{
				Name:  "reverse",
				Usage: "Reverse the sort order",
			},
			&cli.StringSliceFlag{
				Name:  "sort-map",
				Usage: "Value order for --sort; values later in the list sort first",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Shuffle the records",
			},
			&cli.StringFlag{
				Name:  "pluck",
				Usage: "Output only this property of each record",
			},
		),
		Action: r.Collect,
	}
}

// rangeCommand finds runs of indexes
func rangeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "Find the first run of consecutive indexes",
		ArgsUsage: "<index>...",
		Flags:     outputFlags(false),
		Action:    r.CreateRange,
	}
}

// idCommand generates ids
func idCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "id",
		Usage: "Generate a unique id",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "numeric",
				Usage: "Generate a time-ordered numeric id instead of a uuid",
			},
		},
		Action: r.GenerateID,
	}
}
