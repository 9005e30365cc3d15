package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/uri"
)

// RecordRepository indexes canonical records by resource URI.
//
// Source and kind are classified from the URI on write so records can be listed per source.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository with the given database connection
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// execer is satisfied by both [sql.DB] and [sql.Tx].
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Put inserts or replaces record. The record must carry a uri.
func (r *RecordRepository) Put(ctx context.Context, record models.Record) error {
	return put(ctx, r.db, record)
}

// PutMany saves every record in one transaction.
func (r *RecordRepository) PutMany(ctx context.Context, records []models.Record) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, record := range records {
			if err := put(ctx, tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

func put(ctx context.Context, db execer, record models.Record) error {
	resource := record.URI()
	if resource == "" {
		return fmt.Errorf("%w: record has no uri", shared.ErrInvalidRecord)
	}

	source, _ := uri.Source(resource)
	kind, _ := uri.Type(resource)
	name, _ := record.String(models.FieldName)

	data, err := encode(record)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO records (uri, source, kind, name, data) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(uri) DO UPDATE SET
			source = excluded.source,
			kind = excluded.kind,
			name = excluded.name,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.ExecContext(ctx, query, resource, source, string(kind), name, data); err != nil {
		return fmt.Errorf("failed to save record %s: %w", resource, err)
	}
	return nil
}

// Get retrieves the record stored at resource.
func (r *RecordRepository) Get(ctx context.Context, resource string) (models.Record, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM records WHERE uri = ?", resource).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, resource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", resource, err)
	}
	return decodeRecord(data)
}

// GetMany returns the stored records for uris keyed by uri. Unknown uris are absent from the result.
func (r *RecordRepository) GetMany(ctx context.Context, uris []string) (map[string]models.Record, error) {
	index := make(map[string]models.Record, len(uris))
	if len(uris) == 0 {
		return index, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(uris)), ",")
	args := make([]any, len(uris))
	for i, u := range uris {
		args[i] = u
	}

	query := "SELECT uri, data FROM records WHERE uri IN (" + placeholders + ")"
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resource, data string
		if err := rows.Scan(&resource, &data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		index[resource] = record
	}
	return index, rows.Err()
}

// ListBySource returns records owned by source ordered by uri. An empty source lists everything.
func (r *RecordRepository) ListBySource(ctx context.Context, source string) ([]models.Record, error) {
	query := "SELECT data FROM records"
	var args []any
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY uri"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes the record at resource.
func (r *RecordRepository) Delete(ctx context.Context, resource string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE uri = ?", resource)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", resource, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrRecordNotFound, resource)
	}
	return nil
}

func decodeRecord(data string) (models.Record, error) {
	v, err := decode(data)
	if err != nil {
		return nil, err
	}
	record, ok := models.AsRecord(v)
	if !ok {
		return nil, fmt.Errorf("%w: stored value is not an object", shared.ErrInvalidRecord)
	}
	return record, nil
}
