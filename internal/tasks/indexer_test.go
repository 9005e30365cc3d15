package tasks

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/mixdeck/internal/loading"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/repositories"
	"github.com/desertthunder/mixdeck/internal/shared"
	th "github.com/desertthunder/mixdeck/internal/testing"
)

func setupRepository(t *testing.T) *repositories.RecordRepository {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return repositories.NewRecordRepository(db)
}

// recordingStore captures saved records and tracks the registry while saving.
type recordingStore struct {
	mu       sync.Mutex
	saved    []models.Record
	registry *loading.Registry
	loading  bool
	err      error
}

func (s *recordingStore) PutMany(ctx context.Context, records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registry != nil && s.registry.IsLoading(LoadingPrefix) {
		s.loading = true
	}
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, records...)
	return nil
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		input string
		want  Format
		ok    bool
	}{
		{input: "", want: FormatTracks, ok: true},
		{input: "albums", want: FormatAlbums, ok: true},
		{input: "records", want: FormatRecords, ok: true},
		{input: "mpd", want: FormatMPD, ok: true},
		{input: "xml", ok: false},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseFormat(tt.input)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("ParseFormat(%q) = (%q, %v)", tt.input, got, ok)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(&bytes.Buffer{})

	tests := []struct {
		name        string
		format      Format
		files       map[string]string
		wantIndexed int
		wantFailed  int
		wantRecords int
		wantURIs    []string
	}{
		{
			name:        "spotify playlist page",
			format:      FormatTracks,
			files:       map[string]string{"page.json": th.SpotifyPlaylistPage},
			wantIndexed: 1,
			wantRecords: 1,
			wantURIs:    []string{"spotify:track:4uLU6hMCjMI75M1A2tKUQC"},
		},
		{
			name:        "mopidy lookup",
			format:      FormatTracks,
			files:       map[string]string{"lookup.json": th.MopidyLookupResult},
			wantIndexed: 1,
			wantRecords: 2,
			wantURIs:    []string{"local:track:a.flac", "local:track:b.flac"},
		},
		{
			name:        "mpd attributes",
			format:      FormatMPD,
			files:       map[string]string{"mpd.json": `[{"file": "x.flac", "Title": "X"}, {"file": "y.flac"}]`},
			wantIndexed: 1,
			wantRecords: 2,
			wantURIs:    []string{"local:track:x.flac", "local:track:y.flac"},
		},
		{
			name:   "partial failure",
			format: FormatTracks,
			files: map[string]string{
				"good.json": th.MopidyLookupResult,
				"bad.json":  "{not json",
				"rpc.json":  `{"jsonrpc": "2.0", "error": {"code": -32601, "message": "Method not found"}}`,
			},
			wantIndexed: 1,
			wantFailed:  2,
			wantRecords: 2,
			wantURIs:    []string{"local:track:a.flac"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			paths := make([]string, 0, len(tt.files))
			for name, content := range tt.files {
				paths = append(paths, th.MustWriteFile(t, dir, name, content))
			}

			repo := setupRepository(t)
			indexer := NewIndexer(repo, nil, logger)

			progressCh := make(chan ProgressUpdate, 100)
			result, err := indexer.Index(ctx, progressCh, paths, IndexOpts{Format: tt.format, NumWorkers: 2, RateLimit: 100})
			close(progressCh)

			if err != nil {
				t.Fatalf("Index() error = %v", err)
			}
			if result.TotalFiles != len(tt.files) {
				t.Errorf("TotalFiles = %d, want %d", result.TotalFiles, len(tt.files))
			}
			if result.IndexedFiles != tt.wantIndexed || result.FailedFiles != tt.wantFailed {
				t.Errorf("indexed/failed = %d/%d, want %d/%d",
					result.IndexedFiles, result.FailedFiles, tt.wantIndexed, tt.wantFailed)
			}
			if result.Records != tt.wantRecords {
				t.Errorf("Records = %d, want %d", result.Records, tt.wantRecords)
			}

			for _, u := range tt.wantURIs {
				record, err := repo.Get(ctx, u)
				if err != nil {
					t.Errorf("expected %s to be indexed: %v", u, err)
					continue
				}
				if record["source"] == nil {
					t.Errorf("expected source-tagged record, got %v", record)
				}
			}

			updates := 0
			for range progressCh {
				updates++
			}
			if updates != len(tt.files)+1 {
				t.Errorf("expected %d progress updates, got %d", len(tt.files)+1, updates)
			}
		})
	}
}

func TestIndexFormatsRecords(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := th.MustWriteFile(t, dir, "page.json", th.SpotifyPlaylistPage)

	repo := setupRepository(t)
	result, err := NewIndexer(repo, nil, shared.NewLogger(&bytes.Buffer{})).Index(ctx, nil, []string{path}, IndexOpts{})
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	if len(result.Results) != 1 || result.Results[0].Skipped != 1 {
		t.Fatalf("expected the uri-less entry to be skipped, got %+v", result.Results)
	}

	record, err := repo.Get(ctx, "spotify:track:4uLU6hMCjMI75M1A2tKUQC")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record["added_at"] != "2024-03-01T10:00:00Z" {
		t.Errorf("expected wrapper fields, got %v", record["added_at"])
	}
	if record["duration"] != float64(213573) || record["source"] != "spotify" {
		t.Errorf("expected canonical fields, got %v", record)
	}
	if _, ok := record["images"]; !ok {
		t.Error("expected album images copied onto the track")
	}
}

func TestIndexRegistersLoading(t *testing.T) {
	dir := t.TempDir()
	path := th.MustWriteFile(t, dir, "lookup.json", th.MopidyLookupResult)

	registry := loading.NewRegistry(shared.NewLogger(&bytes.Buffer{}))
	store := &recordingStore{registry: registry}

	result, err := NewIndexer(store, registry, nil).Index(context.Background(), nil, []string{path}, IndexOpts{})
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if result.IndexedFiles != 1 || len(store.saved) != 2 {
		t.Errorf("unexpected result %+v", result)
	}
	if !store.loading {
		t.Error("expected the file to be registered while saving")
	}
	if registry.Len() != 0 {
		t.Errorf("expected the registry to be drained, got %v", registry.Snapshot())
	}
}

func TestIndexErrors(t *testing.T) {
	t.Run("no store", func(t *testing.T) {
		_, err := NewIndexer(nil, nil, nil).Index(context.Background(), nil, []string{"x"}, IndexOpts{})
		if !errors.Is(err, shared.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		store := &recordingStore{}
		result, err := NewIndexer(store, nil, shared.NewLogger(&bytes.Buffer{})).Index(
			context.Background(), nil, []string{filepath.Join(t.TempDir(), "missing.json")}, IndexOpts{})
		if err != nil {
			t.Fatalf("Index() error = %v", err)
		}
		if result.FailedFiles != 1 || result.Results[0].Error == nil {
			t.Errorf("expected a failed file, got %+v", result)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		path := th.MustWriteFile(t, t.TempDir(), "lookup.json", th.MopidyLookupResult)
		store := &recordingStore{err: shared.ErrInvalidRecord}

		result, err := NewIndexer(store, nil, shared.NewLogger(&bytes.Buffer{})).Index(
			context.Background(), nil, []string{path}, IndexOpts{})
		if err != nil {
			t.Fatalf("Index() error = %v", err)
		}
		if !errors.Is(result.Results[0].Error, shared.ErrInvalidRecord) {
			t.Errorf("expected wrapped store error, got %v", result.Results[0].Error)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewIndexer(&recordingStore{}, nil, shared.NewLogger(&bytes.Buffer{})).Index(ctx, nil, []string{"a", "b"}, IndexOpts{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSendProgress(t *testing.T) {
	sendProgress(nil, queueFilesUpdate(1))

	ch := make(chan ProgressUpdate, 1)
	sendProgress(ch, queueFilesUpdate(1))
	sendProgress(ch, queueFilesUpdate(2))

	if got := <-ch; got.Total != 1 || got.Phase != QueueFiles {
		t.Errorf("unexpected update %+v", got)
	}
	if QueueFiles.String() != "queue_files" || IndexFile.String() != "index_file" || Phase(9).String() != "" {
		t.Error("unexpected phase names")
	}
}
