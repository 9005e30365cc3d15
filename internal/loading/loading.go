// package loading tracks named asynchronous operations that are still in flight
package loading

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mixdeck/internal/shared"
)

// Queue maps a slot id to the operation keys outstanding in that slot.
type Queue map[string][]string

// IsLoading reports whether any outstanding key in any slot contains one of keys as a substring.
//
// Callers rely on containment: "spotify_albums" matches "spotify_albums/123".
// An empty queue or an empty key list is never loading.
func IsLoading(queue Queue, keys ...string) bool {
	if len(queue) == 0 || len(keys) == 0 {
		return false
	}
	for _, outstanding := range queue {
		for _, entry := range outstanding {
			for _, key := range keys {
				if strings.Contains(entry, key) {
					return true
				}
			}
		}
	}
	return false
}

// Registry owns a [Queue] on behalf of the dispatch side.
// Operations are started and finished from any goroutine; readers get snapshots.
type Registry struct {
	mu     sync.RWMutex
	queue  Queue
	logger *log.Logger
}

// NewRegistry creates an empty [Registry]. A nil logger falls back to [shared.NewLogger] on stderr.
func NewRegistry(logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Registry{queue: make(Queue), logger: shared.WithLogger(logger, "component", "loading")}
}

// Start records keys as outstanding in a new slot and returns the slot id.
func (r *Registry) Start(keys ...string) string {
	slot := shared.GenerateID()

	r.mu.Lock()
	r.queue[slot] = slices.Clone(keys)
	r.mu.Unlock()

	r.logger.Debug("operation started", "slot", slot, "keys", keys)
	return slot
}

// Finish removes slot. Finishing an unknown slot is a no-op.
func (r *Registry) Finish(slot string) {
	r.mu.Lock()
	_, ok := r.queue[slot]
	delete(r.queue, slot)
	r.mu.Unlock()

	if ok {
		r.logger.Debug("operation finished", "slot", slot)
	}
}

// Snapshot returns a copy of the outstanding operations.
func (r *Registry) Snapshot() Queue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(Queue, len(r.queue))
	for slot, keys := range r.queue {
		snapshot[slot] = slices.Clone(keys)
	}
	return snapshot
}

// IsLoading is [IsLoading] over the registry's current queue.
func (r *Registry) IsLoading(keys ...string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return IsLoading(r.queue, keys...)
}

// Len returns the number of outstanding slots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queue)
}

// Slots returns the outstanding slot ids in sorted order.
func (r *Registry) Slots() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.queue))
}
