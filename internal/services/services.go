// package services decodes raw provider payloads into canonical records
//
// Mopidy (JSON-RPC), Spotify (paging objects), Last.fm, MPD
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
)

// pagedFields hold nested paging objects in search and "several items" responses.
var pagedFields = []string{"tracks", "albums", "artists", "playlists"}

// metadataFields wrap a single Last.fm entity.
var metadataFields = []string{"track", "album", "artist"}

// Decode reads one JSON document from r.
func Decode(r io.Reader) (any, error) {
	var payload any
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty payload", shared.ErrInvalidPayload)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	return payload, nil
}

// CheckRPC returns an error when payload is a JSON-RPC error response.
func CheckRPC(payload any) error {
	obj, ok := models.AsRecord(payload)
	if !ok || !obj.Has("jsonrpc") {
		return nil
	}
	rpcErr, ok := models.AsRecord(obj["error"])
	if !ok {
		return nil
	}
	message, _ := rpcErr.String("message")
	code, _ := models.Int(rpcErr["code"])
	return fmt.Errorf("%w: rpc error %d: %s", shared.ErrInvalidPayload, code, message)
}

// Records unwraps the provider envelope around payload and returns the records inside.
//
// Recognized envelopes are JSON-RPC results, paging objects ({"items": [...]}), nested paging objects
// ({"tracks": {"items": [...]}}), lookup maps ({uri: [tracks]}) and single-entity metadata responses
// ({"track": {...}}). A bare object is one record; non-object list elements are dropped.
func Records(payload any) []models.Record {
	if list, ok := models.AsList(payload); ok {
		records := make([]models.Record, 0, len(list))
		for _, item := range list {
			if obj, ok := models.AsRecord(item); ok {
				records = append(records, obj)
			}
		}
		return records
	}

	obj, ok := models.AsRecord(payload)
	if !ok {
		return nil
	}

	if obj.Has("jsonrpc") {
		return Records(obj["result"])
	}

	if items, ok := models.AsList(obj["items"]); ok {
		return Records(items)
	}

	for _, field := range pagedFields {
		if paging, ok := models.AsRecord(obj[field]); ok && paging.Has("items") {
			return Records(paging)
		}
		if list, ok := models.AsList(obj[field]); ok && len(obj) == 1 {
			return Records(list)
		}
	}

	if len(obj) == 1 {
		for _, field := range metadataFields {
			if entity, ok := models.AsRecord(obj[field]); ok {
				return []models.Record{entity}
			}
		}
	}

	if isLookupMap(obj) {
		var records []models.Record
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			records = append(records, Records(obj[key])...)
		}
		return records
	}

	return []models.Record{obj}
}

// isLookupMap reports whether every value of obj is a list, as in a Mopidy library.lookup result.
func isLookupMap(obj models.Record) bool {
	if len(obj) == 0 || obj.Has(models.FieldURI) {
		return false
	}
	for _, v := range obj {
		if _, ok := models.AsList(v); !ok {
			return false
		}
	}
	return true
}

// Tracks decodes r and formats every record as a canonical track.
func Tracks(r io.Reader) ([]models.Record, error) {
	payload, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := CheckRPC(payload); err != nil {
		return nil, err
	}
	return formatter.FormatTracks(Records(payload)), nil
}

// Albums decodes r and formats every record as a canonical album.
func Albums(r io.Reader) ([]models.Record, error) {
	payload, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := CheckRPC(payload); err != nil {
		return nil, err
	}

	records := Records(payload)
	albums := make([]models.Record, len(records))
	for i, record := range records {
		albums[i] = formatter.FormatAlbum(record)
	}
	return albums, nil
}
