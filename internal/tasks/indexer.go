package tasks

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/mixdeck/internal/loading"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/services"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// Format names the payload shape of an indexed file.
type Format string

const (
	FormatTracks  Format = "tracks"  // provider tracks or playlist entries
	FormatAlbums  Format = "albums"  // provider albums
	FormatRecords Format = "records" // any entity, stored as decoded
	FormatMPD     Format = "mpd"     // JSON array of MPD song attributes
)

// Formats lists the accepted [Format] values.
var Formats = []Format{FormatTracks, FormatAlbums, FormatRecords, FormatMPD}

// ParseFormat validates s; an empty string selects [FormatTracks].
func ParseFormat(s string) (Format, bool) {
	if s == "" {
		return FormatTracks, true
	}
	f := Format(s)
	return f, slices.Contains(Formats, f)
}

func decodeRecords(r io.Reader) ([]models.Record, error) {
	payload, err := services.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := services.CheckRPC(payload); err != nil {
		return nil, err
	}
	return services.Records(payload), nil
}

// Decode reads r with the decoder for f.
func (f Format) Decode(r io.Reader) ([]models.Record, error) {
	switch f {
	case FormatAlbums:
		return services.Albums(r)
	case FormatRecords:
		return decodeRecords(r)
	case FormatMPD:
		return services.MPDTracks(r)
	default:
		return services.Tracks(r)
	}
}

// RecordStore persists canonical records. Satisfied by [repositories.RecordRepository].
type RecordStore interface {
	PutMany(ctx context.Context, records []models.Record) error
}

// IndexOpts contains configuration for an indexing run.
type IndexOpts struct {
	Format     Format  // Payload shape of every file (default: tracks)
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Files queued per second (default: 20)
}

// FileResult is the outcome of indexing one file.
type FileResult struct {
	Path    string
	Records int // Records saved
	Skipped int // Records dropped for lacking a uri
	Success bool
	Error   error
}

// IndexResult summarizes an indexing run.
type IndexResult struct {
	TotalFiles   int
	IndexedFiles int
	FailedFiles  int
	Records      int
	Results      []FileResult // Ordered by path
}

// Indexer decodes payload files and saves their records.
type Indexer struct {
	store    RecordStore
	registry *loading.Registry
	logger   *log.Logger
}

// NewIndexer creates an Indexer. A nil registry gets a private one.
func NewIndexer(store RecordStore, registry *loading.Registry, logger *log.Logger) *Indexer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if registry == nil {
		registry = loading.NewRegistry(logger)
	}
	return &Indexer{store: store, registry: registry, logger: shared.WithLogger(logger, "component", "indexer")}
}

// LoadingPrefix starts every operation key registered by an [Indexer].
const LoadingPrefix = "index_"

// LoadingKey is the operation key registered while path is indexed.
func LoadingKey(format Format, path string) string {
	return fmt.Sprintf("%s%s:%s", LoadingPrefix, format, path)
}

// Index indexes paths concurrently with rate limiting and progress tracking.
//
// Failed files are reported in the result without stopping the run. A cancelled context stops queueing;
// the partial result is returned with the context error.
func (i *Indexer) Index(ctx context.Context, prog chan<- ProgressUpdate, paths []string, opts IndexOpts) (*IndexResult, error) {
	if i.store == nil {
		return nil, fmt.Errorf("%w: record store not initialized", shared.ErrStoreUnavailable)
	}

	if opts.Format == "" {
		opts.Format = FormatTracks
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20.0
	}

	result := &IndexResult{
		TotalFiles: len(paths),
		Results:    make([]FileResult, 0, len(paths)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan string, len(paths))
	results := make(chan FileResult, len(paths))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go i.indexWorker(ctx, &wg, jobs, results, opts.Format)
	}

	go func() {
		defer close(jobs)
		sendProgress(prog, queueFilesUpdate(len(paths)))
		for _, path := range paths {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			jobs <- path
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.IndexedFiles++
			result.Records += res.Records
			sendProgress(prog, indexCompletedUpdate(completed, len(paths), res))
		} else {
			result.FailedFiles++
			i.logger.Warn("index failed", "path", res.Path, "error", res.Error)
			sendProgress(prog, indexFailedUpdate(completed, len(paths), res))
		}
	}

	slices.SortFunc(result.Results, func(a, b FileResult) int { return cmp.Compare(a.Path, b.Path) })

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("indexing interrupted: %w", err)
	}
	return result, nil
}

func (i *Indexer) indexWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan string,
	results chan<- FileResult,
	format Format,
) {
	defer wg.Done()

	for path := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- i.indexFile(ctx, path, format)
	}
}

func (i *Indexer) indexFile(ctx context.Context, path string, format Format) FileResult {
	slot := i.registry.Start(LoadingKey(format, path))
	defer i.registry.Finish(slot)

	result := FileResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		result.Error = fmt.Errorf("open failed: %w", err)
		return result
	}
	defer f.Close()

	records, err := format.Decode(f)
	if err != nil {
		result.Error = fmt.Errorf("decode failed: %w", err)
		return result
	}

	keep := make([]models.Record, 0, len(records))
	for _, record := range records {
		if record.URI() == "" {
			result.Skipped++
			continue
		}
		keep = append(keep, record)
	}

	if err := i.store.PutMany(ctx, keep); err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		return result
	}

	result.Records = len(keep)
	result.Success = true
	return result
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
