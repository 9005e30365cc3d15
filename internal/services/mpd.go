package services

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fhs/gompd/v2/mpd"

	"github.com/desertthunder/mixdeck/internal/formatter"
	"github.com/desertthunder/mixdeck/internal/models"
	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/desertthunder/mixdeck/internal/uri"
)

// FromMPD converts one MPD song into the record shape the local daemon reports, ready for formatting.
//
// The file path becomes a local:track: uri, duration is converted to milliseconds and
// "n/total" track and disc numbers keep only n. Songs without a file yield nil.
func FromMPD(attrs mpd.Attrs) models.Record {
	file := attrs["file"]
	if file == "" {
		return nil
	}

	record := models.Record{
		models.FieldURI:    uri.SourceLocal + ":track:" + file,
		models.FieldSource: uri.SourceLocal,
	}

	name := attrs["Title"]
	if name == "" {
		name = file[strings.LastIndex(file, "/")+1:]
	}
	record[models.FieldName] = name

	if artists := mpdArtists(attrs["Artist"]); len(artists) > 0 {
		record["artists"] = artists
	}

	if album := attrs["Album"]; album != "" {
		albumRecord := map[string]any{models.FieldName: album}
		if albumArtists := mpdArtists(attrs["AlbumArtist"]); len(albumArtists) > 0 {
			albumRecord["artists"] = albumArtists
		}
		record[models.FieldAlbum] = albumRecord
	}

	if n, ok := leadingNumber(attrs["Track"]); ok {
		record["track_no"] = float64(n)
	}
	if n, ok := leadingNumber(attrs["Disc"]); ok {
		record["disc_no"] = float64(n)
	}
	if ms, ok := mpdLength(attrs); ok {
		record["length"] = float64(ms)
	}
	if date := attrs["Date"]; date != "" {
		record[models.FieldDate] = date
	}
	if mbid := attrs["MUSICBRAINZ_TRACKID"]; mbid != "" {
		record["musicbrainz_id"] = mbid
	}
	if genre := attrs["Genre"]; genre != "" {
		record["genre"] = genre
	}

	return record
}

// FromMPDList converts every song with a file, preserving order.
func FromMPDList(songs []mpd.Attrs) []models.Record {
	records := make([]models.Record, 0, len(songs))
	for _, attrs := range songs {
		if record := FromMPD(attrs); record != nil {
			records = append(records, record)
		}
	}
	return records
}

func mpdArtists(value string) []any {
	if value == "" {
		return nil
	}
	var artists []any
	for name := range strings.SplitSeq(value, ";") {
		if name = strings.TrimSpace(name); name != "" {
			artists = append(artists, map[string]any{models.FieldName: name})
		}
	}
	return artists
}

// mpdLength prefers the fractional "duration" attribute over the whole-second "Time".
func mpdLength(attrs mpd.Attrs) (int, bool) {
	for _, key := range []string{"duration", "Time"} {
		seconds, err := strconv.ParseFloat(attrs[key], 64)
		if err == nil && seconds >= 0 && !math.IsInf(seconds, 0) {
			return int(math.Round(seconds * 1000)), true
		}
	}
	return 0, false
}

func leadingNumber(value string) (int, bool) {
	n, _, _ := strings.Cut(value, "/")
	return models.Int(n)
}

// MPDTracks decodes r as a JSON array of MPD song attributes and formats each song as a canonical track.
func MPDTracks(r io.Reader) ([]models.Record, error) {
	var songs []mpd.Attrs
	if err := json.NewDecoder(r).Decode(&songs); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	return formatter.FormatTracks(FromMPDList(songs)), nil
}
