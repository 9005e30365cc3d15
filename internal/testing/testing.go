// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustWriteFile writes content to name inside dir and returns the full path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// SpotifyPlaylistPage is a paging object with two playlist entries, one of them a local file without a uri.
const SpotifyPlaylistPage = `{
	"href": "https://api.spotify.com/v1/playlists/p1/tracks",
	"items": [
		{
			"added_at": "2024-03-01T10:00:00Z",
			"track": {
				"uri": "spotify:track:4uLU6hMCjMI75M1A2tKUQC",
				"name": "Never Gonna Give You Up",
				"duration_ms": 213573,
				"track_number": 1,
				"artists": [{"name": "Rick Astley", "uri": "spotify:artist:0gxyHStUsqpMadRV0Di1Qt"}],
				"album": {
					"name": "Whenever You Need Somebody",
					"release_date": "1987-11-12",
					"images": [{"url": "https://i.scdn.co/image/640", "width": 640, "height": 640}]
				}
			}
		},
		{
			"added_at": "2024-03-02T10:00:00Z",
			"track": {"name": "bootleg.mp3", "duration_ms": 1000}
		}
	],
	"total": 2
}`

// MopidyLookupResult is a library.lookup JSON-RPC response for two local tracks.
const MopidyLookupResult = `{
	"jsonrpc": "2.0",
	"id": 1,
	"result": {
		"local:track:b.flac": [{"__model__": "Track", "uri": "local:track:b.flac", "name": "B", "length": 2000, "track_no": 2}],
		"local:track:a.flac": [{"__model__": "Track", "uri": "local:track:a.flac", "name": "A", "length": 1000, "track_no": 1}]
	}
}`
