package loading

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixdeck/internal/shared"
)

func TestIsLoading(t *testing.T) {
	tc := []struct {
		name  string
		queue Queue
		keys  []string
		want  bool
	}{
		{name: "exact key", queue: Queue{"slotA": {"spotify_albums/123"}}, keys: []string{"spotify_albums/123"}, want: true},
		{name: "substring key", queue: Queue{"slotA": {"spotify_albums/123"}}, keys: []string{"spotify_albums"}, want: true},
		{name: "any of several keys", queue: Queue{"a": {"mopidy_library"}, "b": {"lastfm_track"}}, keys: []string{"nope", "lastfm"}, want: true},
		{name: "key longer than entry", queue: Queue{"a": {"spotify"}}, keys: []string{"spotify_albums"}, want: false},
		{name: "empty queue", queue: Queue{}, keys: []string{"x"}, want: false},
		{name: "nil queue", queue: nil, keys: []string{"x"}, want: false},
		{name: "no keys", queue: Queue{"a": {"x"}}, keys: nil, want: false},
		{name: "empty slot", queue: Queue{"a": {}}, keys: []string{"x"}, want: false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLoading(tt.queue, tt.keys...); got != tt.want {
				t.Errorf("IsLoading() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	logger.SetLevel(log.DebugLevel)

	r := NewRegistry(logger)

	slot := r.Start("spotify_library_artists")
	if slot == "" {
		t.Fatal("expected a slot id")
	}
	if !r.IsLoading("spotify_library") {
		t.Error("expected operation to be loading")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	snapshot := r.Snapshot()
	snapshot[slot][0] = "mutated"
	if !r.IsLoading("spotify_library") {
		t.Error("mutating a snapshot should not affect the registry")
	}

	r.Finish(slot)
	if r.IsLoading("spotify_library") {
		t.Error("expected operation to be finished")
	}
	r.Finish(slot)

	if !strings.Contains(buf.String(), "operation started") || !strings.Contains(buf.String(), "operation finished") {
		t.Errorf("expected debug logs, got %q", buf.String())
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry(shared.NewLogger(&bytes.Buffer{}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot := r.Start("mopidy_lookup")
			_ = r.IsLoading("mopidy")
			_ = r.Snapshot()
			r.Finish(slot)
		}()
	}
	wg.Wait()

	if r.Len() != 0 {
		t.Errorf("expected no outstanding slots, got %v", r.Slots())
	}
}
