// package formatter converts provider track and album payloads into canonical records
package formatter

import (
	"github.com/desertthunder/mixdeck/internal/images"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/uri"
)

// renames maps a canonical field to the provider fields that feed it, in priority order.
var renames = []struct {
	canonical string
	sources   []string
}{
	{models.FieldDuration, []string{"duration_ms", "length"}},
	{models.FieldTrackNumber, []string{"track_no", "track_number"}},
	{models.FieldDiscNumber, []string{"disc_no"}},
	{models.FieldDate, []string{"release_date"}},
}

// wrapperFields are copied from a playlist or queue entry onto the track it wraps.
var wrapperFields = []string{models.FieldAddedBy, models.FieldAddedAt, models.FieldTLID}

// FormatAlbum returns a copy of album with release_date mirrored into date.
// The source field is kept; a nil album formats to nil.
func FormatAlbum(album models.Record) models.Record {
	if album == nil {
		return nil
	}
	formatted := album.Clone()
	if releaseDate, ok := album["release_date"]; ok {
		formatted[models.FieldDate] = releaseDate
	}
	return formatted
}

// FormatTrack converts one provider track, or an entry wrapping one, into a canonical record.
//
// The input and any nested track object are left untouched. A nil item formats to nil.
func FormatTrack(item models.Record) models.Record {
	if item == nil {
		return nil
	}

	var track models.Record
	if nested, ok := models.AsRecord(item[models.FieldTrack]); ok {
		track = nested.Clone()
		for _, field := range wrapperFields {
			if models.Truthy(item[field]) {
				track[field] = item[field]
			}
		}
	} else {
		track = item.Clone()
	}

	for _, rename := range renames {
		for _, source := range rename.sources {
			if models.Truthy(track[source]) {
				track[rename.canonical] = track[source]
				break
			}
		}
	}

	if albumImages, ok := albumImages(track); ok && !hasImages(track) {
		track[models.FieldImages] = albumImages
	}

	if !track.Has(models.FieldSource) {
		if source, ok := uri.Source(track.URI()); ok {
			track[models.FieldSource] = source
		}
	}

	return track
}

// FormatTracks formats every item, returning a slice of the same length. A nil slice formats to nil.
func FormatTracks(items []models.Record) []models.Record {
	if items == nil {
		return nil
	}
	formatted := make([]models.Record, len(items))
	for i, item := range items {
		formatted[i] = FormatTrack(item)
	}
	return formatted
}

func albumImages(track models.Record) (any, bool) {
	album, ok := models.AsRecord(track[models.FieldAlbum])
	if !ok {
		return nil, false
	}
	imgs, present := album[models.FieldImages]
	return imgs, present && imgs != nil
}

func hasImages(track models.Record) bool {
	imgs, present := track[models.FieldImages]
	if !present || imgs == nil {
		return false
	}
	if list, ok := models.AsList(imgs); ok {
		return len(list) > 0
	}
	return true
}

// Placeholder stands in for a library reference whose full record has not been fetched yet.
func Placeholder(resource string) models.Record {
	record := models.Record{models.FieldURI: resource}
	if source, ok := uri.Source(resource); ok {
		record[models.FieldSource] = source
	}
	return record
}

// TrackIcon returns the small image of an indexed track.
func TrackIcon(index map[string]models.Record, resource string) (string, bool) {
	if resource == "" {
		return "", false
	}
	track, ok := index[resource]
	if !ok || !track.Has(models.FieldImages) {
		return "", false
	}
	small := images.Normalize(track[models.FieldImages]).Small
	return small, small != ""
}
