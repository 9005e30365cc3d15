package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// StateStore persists JSON values by key.
//
// A store created without a database keeps working: reads return the caller's default, writes are dropped,
// and both log a fallback warning at most once a minute per key.
type StateStore struct {
	db       *sql.DB
	logger   *log.Logger
	mu       sync.Mutex
	fallback map[string]*rate.Sometimes
}

// NewStateStore creates a new StateStore. db may be nil.
func NewStateStore(db *sql.DB, logger *log.Logger) *StateStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &StateStore{
		db:       db,
		logger:   shared.WithLogger(logger, "component", "state"),
		fallback: make(map[string]*rate.Sometimes),
	}
}

// Available reports whether writes are durable.
func (s *StateStore) Available() bool {
	return s.db != nil
}

func (s *StateStore) warnFallback(key string, err error) {
	s.mu.Lock()
	warn, ok := s.fallback[key]
	if !ok {
		warn = &rate.Sometimes{First: 1, Interval: time.Minute}
		s.fallback[key] = warn
	}
	s.mu.Unlock()

	warn.Do(func() {
		s.logger.Warn("state store unavailable, using fallback", "key", key, "err", err)
	})
}

// Get returns the value stored at key, or def when nothing is stored or the store cannot be read.
func (s *StateStore) Get(ctx context.Context, key string, def any) any {
	if s.db == nil {
		s.warnFallback(key, shared.ErrStoreUnavailable)
		return def
	}

	value, found, err := s.load(ctx, s.db.QueryRowContext, key)
	if err != nil {
		s.warnFallback(key, err)
		return def
	}
	if !found {
		return def
	}
	return value
}

type queryRowFunc func(ctx context.Context, query string, args ...any) *sql.Row

func (s *StateStore) load(ctx context.Context, queryRow queryRowFunc, key string) (any, bool, error) {
	var data string
	err := queryRow(ctx, "SELECT value FROM state WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read state %q: %w", key, err)
	}

	value, err := decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("state %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value at key.
//
// Unless replace is set, an object value is shallow-merged over an object already stored at key;
// any other combination overwrites. Without a database the write is dropped after a warning.
func (s *StateStore) Set(ctx context.Context, key string, value any, replace bool) error {
	if key == "" {
		return fmt.Errorf("%w: empty state key", shared.ErrMissingArgument)
	}
	if s.db == nil {
		s.warnFallback(key, shared.ErrStoreUnavailable)
		return nil
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if !replace {
			if incoming, ok := models.AsRecord(value); ok {
				existing, found, err := s.load(ctx, tx.QueryRowContext, key)
				if err != nil {
					return err
				}
				if stored, ok := models.AsRecord(existing); found && ok {
					merged := maps.Clone(map[string]any(stored))
					maps.Copy(merged, incoming)
					value = merged
				}
			}
		}

		data, err := encode(value)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query, key, data); err != nil {
			return fmt.Errorf("failed to write state %q: %w", key, err)
		}

		s.logger.Debug("state saved", "key", key, "replace", replace)
		return nil
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *StateStore) Delete(ctx context.Context, key string) error {
	if s.db == nil {
		s.warnFallback(key, shared.ErrStoreUnavailable)
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in ascending order.
func (s *StateStore) Keys(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, shared.ErrStoreUnavailable
	}

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM state ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list state keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan state key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
