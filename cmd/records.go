package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/mixdeck/internal/collection"
	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/services"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FormatPayload decodes a provider payload and prints canonical records, or a CSV or text export of them.
func (r *Runner) FormatPayload(ctx context.Context, cmd *cli.Command) error {
	kind, ok := tasks.ParseFormat(cmd.String("kind"))
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, cmd.String("kind"))
	}

	path := cmd.StringArg("file")
	in, err := r.openInput(path)
	if err != nil {
		return err
	}
	defer in.Close()

	records, err := kind.Decode(in)
	if err != nil {
		return fmt.Errorf("failed to format payload: %w", err)
	}
	r.logger.Debug("formatted payload", "kind", kind, "records", len(records))

	switch {
	case cmd.String("output") != "":
		written, err := formatter.WriteCSVExport(records, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("%s wrote %d records to %s\n", r.palette.OK("✓"), len(records), written)
	case cmd.Bool("csv"):
		data, err := formatter.ExportToCSV(records)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("text"):
		title := path
		if title == "" || title == "-" {
			title = "stdin"
		}
		data, err := formatter.ExportToText(title, records)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return r.writeJSON(records, cmd.Bool("pretty"))
	}
}

// Collect runs merge, filter, sort, shuffle and pluck over the records of a payload, in that order.
func (r *Runner) Collect(ctx context.Context, cmd *cli.Command) error {
	in, err := r.openInput(cmd.StringArg("file"))
	if err != nil {
		return err
	}
	defer in.Close()

	payload, err := services.Decode(in)
	if err != nil {
		return err
	}
	if err := services.CheckRPC(payload); err != nil {
		return err
	}
	items := services.Records(payload)

	if key := cmd.String("merge"); key != "" {
		items = collection.MergeDuplicates(items, key)
	}

	field := cmd.String("field")
	if value := cmd.String("first"); value != "" {
		record, ok := collection.FindFirst(field, value, items)
		if !ok {
			return fmt.Errorf("%w: no record with %s matching %q", shared.ErrRecordNotFound, field, value)
		}
		return r.writeJSON(record, cmd.Bool("pretty"))
	}

	if value := cmd.String("filter"); value != "" {
		items = collection.ApplyFilter(field, value, items)
	}
	if property := cmd.String("sort"); property != "" {
		items = collection.SortItems(items, property, cmd.Bool("reverse"), cmd.StringSlice("sort-map"))
	}
	if cmd.Bool("shuffle") {
		items = collection.Shuffle(items)
	}

	if property := cmd.String("pluck"); property != "" {
		return r.writeJSON(collection.ArrayOf(property, items), cmd.Bool("pretty"))
	}
	return r.writeJSON(items, cmd.Bool("pretty"))
}

// CreateRange parses the index arguments and prints their first consecutive run.
func (r *Runner) CreateRange(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one index is required", shared.ErrMissingArgument)
	}

	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %q is not an index", shared.ErrInvalidArgument, arg)
		}
		indexes = append(indexes, n)
	}
	indexes = collection.RemoveDuplicates(indexes)

	rng, ok := collection.CreateRange(indexes)
	if cmd.Bool("json") {
		if !ok {
			return r.writeJSON(nil, false)
		}
		return r.writeJSON(rng, cmd.Bool("pretty"))
	}
	if !ok {
		return r.writePlain("no range\n")
	}
	return r.writePlain("start %d, length %d\n", rng.Start, rng.Length)
}
