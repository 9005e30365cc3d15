package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/mixdeck/internal/library"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/repositories"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/tasks"
	"github.com/desertthunder/mixdeck/internal/uri"
	"github.com/urfave/cli/v3"
)

// libraryCommand shows the merged library
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "library",
		Usage: "Show the merged local and cloud library for one kind of resource",
		Flags: append(outputFlags(true),
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Resource kind: artist, album, track or playlist",
				Value:   string(uri.KindArtist),
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "all, local or spotify (default from config)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort property (default from config)",
			},
			&cli.BoolFlag{
				Name:  "reverse",
				Usage: "Reverse the sort order",
			},
			&cli.StringSliceFlag{
				Name:  "sort-map",
				Usage: "Value order for --sort; values later in the list sort first",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Show only names containing this text",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of items to show (default from config)",
			},
		),
		Action: r.Library,
	}
}

// libraryStateKey is the state key holding a source's library uris for one kind, e.g. local_library_artists.
func libraryStateKey(source string, kind uri.Kind) string {
	return fmt.Sprintf("%s_library_%ss", source, kind)
}

// libraryURIs returns the uri list stored for source and kind, falling back to every indexed record that matches.
func libraryURIs(
	ctx context.Context,
	state *repositories.StateStore,
	records *repositories.RecordRepository,
	source string,
	kind uri.Kind,
	index map[string]models.Record,
) ([]string, error) {
	if stored, ok := models.AsList(state.Get(ctx, libraryStateKey(source, kind), nil)); ok {
		uris := make([]string, 0, len(stored))
		for _, v := range stored {
			if s, ok := v.(string); ok && s != "" {
				uris = append(uris, s)
			}
		}
		return uris, nil
	}

	listed, err := records.ListBySource(ctx, source)
	if err != nil {
		return nil, err
	}

	var uris []string
	for _, record := range listed {
		resource := record.URI()
		if k, ok := uri.Type(resource); ok && k == kind {
			uris = append(uris, resource)
			index[resource] = record
		}
	}
	return uris, nil
}

// Library builds the library view from the record index and stored library lists.
func (r *Runner) Library(ctx context.Context, cmd *cli.Command) error {
	defaults := r.config.Library

	sourceName := defaults.Source
	if cmd.IsSet("source") {
		sourceName = cmd.String("source")
	}
	source, ok := library.ParseSource(sourceName)
	if !ok {
		return fmt.Errorf("%w: unknown source %q", shared.ErrInvalidFlag, sourceName)
	}

	kind := uri.Kind(cmd.String("kind"))
	switch kind {
	case uri.KindArtist, uri.KindAlbum, uri.KindTrack, uri.KindPlaylist:
	default:
		return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, kind)
	}

	records, err := r.recordRepository()
	if err != nil {
		return err
	}
	state := r.stateStore()

	index := map[string]models.Record{}
	localURIs, err := libraryURIs(ctx, state, records, uri.SourceLocal, kind, index)
	if err != nil {
		return fmt.Errorf("failed to load local library: %w", err)
	}
	cloudURIs, err := libraryURIs(ctx, state, records, uri.SourceSpotify, kind, index)
	if err != nil {
		return fmt.Errorf("failed to load cloud library: %w", err)
	}

	var missing []string
	for _, u := range slices.Concat(localURIs, cloudURIs) {
		if _, ok := index[u]; !ok {
			missing = append(missing, u)
		}
	}
	if len(missing) > 0 {
		found, err := records.GetMany(ctx, missing)
		if err != nil {
			return fmt.Errorf("failed to resolve library records: %w", err)
		}
		for u, record := range found {
			index[u] = record
		}
	}

	opts := library.Options{
		Source:      source,
		LocalURIs:   localURIs,
		CloudURIs:   cloudURIs,
		Index:       index,
		Sort:        defaults.Sort,
		Reverse:     defaults.Reverse,
		SortMap:     defaults.SortMap,
		Filter:      cmd.String("filter"),
		Limit:       defaults.Limit,
		Queue:       r.registry.Snapshot(),
		LoadingKeys: []string{tasks.LoadingPrefix},
	}
	if cmd.IsSet("sort") {
		opts.Sort = cmd.String("sort")
	}
	if cmd.IsSet("reverse") {
		opts.Reverse = cmd.Bool("reverse")
	}
	if cmd.IsSet("sort-map") {
		opts.SortMap = cmd.StringSlice("sort-map")
	}
	if cmd.IsSet("limit") {
		opts.Limit = int(cmd.Int("limit"))
	}

	view := library.Build(opts)
	r.logger.Debug("library view built", "kind", kind, "source", source, "state", view.State, "total", view.Total)

	if cmd.Bool("json") {
		return r.writeJSON(view, cmd.Bool("pretty"))
	}
	return r.writeLibrary(kind, view)
}

func (r *Runner) writeLibrary(kind uri.Kind, view library.View) error {
	title := fmt.Sprintf("%ss (%d)", kind, view.Total)

	switch view.State {
	case library.StateLoading:
		return r.writePlain("%s\n", r.palette.List(title, nil, "loading..."))
	case library.StateEmpty:
		return r.writePlain("%s\n", r.palette.List(title, nil, "nothing in your library yet"))
	}

	lines := make([]string, 0, len(view.Items)+1)
	for _, item := range view.Items {
		resource := item.URI()
		name, ok := item.String(models.FieldName)
		if !ok || name == "" {
			name = resource
		}
		lines = append(lines, r.palette.Source(resource, fmt.Sprintf("[%s] %s", uri.SourceIcon(resource), name)))
	}
	if view.More {
		lines = append(lines, r.palette.Help(fmt.Sprintf("... %d more", view.Total-len(view.Items))))
	}
	return r.writePlain("%s\n", r.palette.List(title, lines, ""))
}
