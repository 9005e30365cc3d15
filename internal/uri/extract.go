package uri

import "slices"

// Field names a positional id that can be pulled out of a URI.
type Field string

const (
	FieldMBID          Field = "mbid"
	FieldArtistID      Field = "artistid"
	FieldAlbumID       Field = "albumid"
	FieldPlaylistID    Field = "playlistid"
	FieldPlaylistOwner Field = "playlistowner"
	FieldTrackID       Field = "trackid"
	FieldUserID        Field = "userid"
	FieldGenreID       Field = "genreid"
	FieldSeeds         Field = "seeds"
	FieldSearchType    Field = "searchtype"
	FieldSearchTerm    Field = "searchterm"
)

// Fields lists every field understood by [Extract], in a stable order.
var Fields = []Field{
	FieldMBID, FieldArtistID, FieldAlbumID, FieldPlaylistID, FieldPlaylistOwner,
	FieldTrackID, FieldUserID, FieldGenreID, FieldSeeds, FieldSearchType, FieldSearchTerm,
}

// Extract returns the id stored at the position the URI grammar assigns to field.
//
// The mbid field is found by scanning for a literal "mbid" segment and taking the one after it,
// wherever it occurs. An empty segment counts as absent.
func Extract(field Field, uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	parts := split(uri)
	kind := parts.at(1)

	var value string
	switch field {
	case FieldMBID:
		if i := slices.Index(parts, "mbid"); i > -1 {
			value = parts.at(i + 1)
		}
	case FieldArtistID:
		if kind == string(KindArtist) {
			value = parts.at(2)
		}
	case FieldAlbumID:
		if kind == string(KindAlbum) {
			value = parts.at(2)
		}
	case FieldPlaylistID:
		if kind == string(KindPlaylist) {
			value = parts.at(2)
		} else if isUserPlaylist(parts) {
			value = parts.at(4)
		}
	case FieldPlaylistOwner:
		if isUserPlaylist(parts) {
			value = parts.at(2)
		}
	case FieldTrackID:
		if kind == string(KindTrack) {
			value = parts.at(2)
		}
	case FieldUserID:
		if kind == string(KindUser) {
			value = parts.at(2)
		}
	case FieldGenreID:
		if kind == string(KindGenre) {
			value = parts.at(2)
		}
	case FieldSeeds:
		if kind == string(KindDiscover) {
			value = parts.at(2)
		}
	case FieldSearchType:
		if parts.at(0) == SourceSearch {
			value = parts.at(1)
		}
	case FieldSearchTerm:
		if parts.at(0) == SourceSearch {
			value = parts.at(2)
		}
	}

	return value, value != ""
}

func isUserPlaylist(parts segments) bool {
	return parts.at(1) == string(KindUser) && parts.at(3) == string(KindPlaylist)
}
