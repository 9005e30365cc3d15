package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// stateCommand reads and writes persisted key/value state
func stateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Read and write persisted state",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the JSON value stored under a key",
				Arguments: []cli.Argument{&cli.StringArg{Name: "key"}},
				Flags: append(outputFlags(true),
					&cli.StringFlag{
						Name:  "default",
						Usage: "JSON value printed when the key is missing",
						Value: "null",
					},
				),
				Action: r.StateGet,
			},
			{
				Name:  "set",
				Usage: "Store a JSON value under a key; objects merge into the stored object",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "key"},
					&cli.StringArg{Name: "value"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Replace the stored value instead of merging",
					},
				},
				Action: r.StateSet,
			},
			{
				Name:   "keys",
				Usage:  "List stored keys",
				Flags:  outputFlags(false),
				Action: r.StateKeys,
			},
			{
				Name:      "delete",
				Usage:     "Delete a key",
				Arguments: []cli.Argument{&cli.StringArg{Name: "key"}},
				Action:    r.StateDelete,
			},
		},
	}
}

// parseValue decodes raw as JSON, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// StateGet prints a stored value, or the default when it is missing.
func (r *Runner) StateGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key is required", shared.ErrMissingArgument)
	}

	value := r.stateStore().Get(ctx, key, parseValue(cmd.String("default")))
	return r.writeJSON(value, cmd.Bool("pretty"))
}

// StateSet stores a value. Without --replace an object value merges into a stored object.
func (r *Runner) StateSet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key is required", shared.ErrMissingArgument)
	}

	store := r.stateStore()
	if err := store.Set(ctx, key, parseValue(cmd.StringArg("value")), cmd.Bool("replace")); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if !store.Available() {
		return r.writePlain("%s %s not persisted, no database\n", r.palette.Warn("!"), key)
	}
	return r.writePlain("%s %s\n", r.palette.OK("✓"), key)
}

// StateKeys lists every stored key.
func (r *Runner) StateKeys(ctx context.Context, cmd *cli.Command) error {
	keys, err := r.stateStore().Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	if cmd.Bool("json") {
		return r.writeJSON(keys, cmd.Bool("pretty"))
	}
	for _, key := range keys {
		r.writePlain("%s\n", key)
	}
	return nil
}

// StateDelete removes a key.
func (r *Runner) StateDelete(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key is required", shared.ErrMissingArgument)
	}
	if err := r.stateStore().Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return r.writePlain("%s deleted %s\n", r.palette.OK("✓"), key)
}
