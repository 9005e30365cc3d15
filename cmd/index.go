package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// indexCommand indexes payload files into the record store
func indexCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Format provider payload files and save their records to the index",
		ArgsUsage: "<file>...",
		Flags: append(outputFlags(true),
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Payload shape: tracks, albums, records or mpd",
				Value:   "tracks",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent workers (max 10)",
				Value: 5,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Files queued per second",
				Value: 20,
			},
		),
		Action: r.Index,
	}
}

// Index saves the records of every payload file, printing progress as files complete.
func (r *Runner) Index(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file is required", shared.ErrMissingArgument)
	}

	format, ok := tasks.ParseFormat(cmd.String("kind"))
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", shared.ErrInvalidFlag, cmd.String("kind"))
	}

	records, err := r.recordRepository()
	if err != nil {
		return err
	}

	asJSON := cmd.Bool("json")
	progress := make(chan tasks.ProgressUpdate, len(paths)+1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if !asJSON {
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	indexer := tasks.NewIndexer(records, r.registry, r.logger)
	result, err := indexer.Index(ctx, progress, paths, tasks.IndexOpts{
		Format:     format,
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	wg.Wait()

	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(indexSummary(result), cmd.Bool("pretty"))
	}

	r.writePlainHeader("Index complete")
	r.writePlain("Files:   %d indexed, %d failed\n", result.IndexedFiles, result.FailedFiles)
	r.writePlain("Records: %d\n", result.Records)
	if result.FailedFiles > 0 {
		return r.writePlain("%s some files were not indexed\n", r.palette.Warn("!"))
	}
	return r.writePlain("%s done\n", r.palette.OK("✓"))
}

type fileSummary struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Skipped int    `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

type indexReport struct {
	Indexed int           `json:"indexed"`
	Failed  int           `json:"failed"`
	Records int           `json:"records"`
	Files   []fileSummary `json:"files"`
}

func indexSummary(result *tasks.IndexResult) indexReport {
	report := indexReport{
		Indexed: result.IndexedFiles,
		Failed:  result.FailedFiles,
		Records: result.Records,
		Files:   make([]fileSummary, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		summary := fileSummary{Path: res.Path, Records: res.Records, Skipped: res.Skipped}
		if res.Error != nil {
			summary.Error = res.Error.Error()
		}
		report.Files = append(report.Files, summary)
	}
	return report
}
