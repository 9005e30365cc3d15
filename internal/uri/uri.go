// Package uri classifies colon-delimited resource identifiers issued by different music sources.
//
// A resource URI has the shape <source>:<type>:<id>[:...], with two irregular forms:
// the aggregator namespace ("iris:search:...") keeps its own sub-resource type in segment 2,
// and user playlists use <source>:user:<owner>:playlist:<id>.
//
// Every accessor returns a (value, ok) pair and never panics, whatever the input.
package uri

import (
	"slices"
	"strings"
)

// Well-known source namespaces.
const (
	SourceLocal      = "local"
	SourceM3U        = "m3u"
	SourceSpotify    = "spotify"
	SourceAggregator = "iris"
	SourceSearch     = "search"
	SourceGMusic     = "gmusic"
	SourceTuneIn     = "tunein"
	SourceSomaFM     = "somafm"
	SourceDirble     = "dirble"
)

const separator = ":"

// Kind is the logical entity type of a resource.
type Kind string

const (
	KindTrack    Kind = "track"
	KindArtist   Kind = "artist"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
	KindGenre    Kind = "genre"
	KindUser     Kind = "user"
	KindSearch   Kind = "search"
	KindDiscover Kind = "discover"
	KindBrowse   Kind = "browse"
)

var (
	entityKinds     = []Kind{KindTrack, KindArtist, KindAlbum, KindPlaylist, KindGenre}
	aggregatorKinds = []Kind{KindSearch, KindDiscover, KindBrowse}
)

// segments splits a URI; segment(i) on the result is safe for any index.
type segments []string

func split(uri string) segments {
	return strings.Split(uri, separator)
}

func (s segments) at(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// Source returns the namespace that owns the resource (the first segment).
func Source(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	source := split(uri).at(0)
	return source, source != ""
}

// Type returns the logical entity type of the resource.
func Type(uri string) (Kind, bool) {
	if uri == "" {
		return "", false
	}
	parts := split(uri)

	switch parts.at(0) {
	case SourceM3U:
		return KindPlaylist, true
	case SourceAggregator:
		kind := Kind(parts.at(1))
		if slices.Contains(aggregatorKinds, kind) {
			return kind, true
		}
		return "", false
	}

	kind := Kind(parts.at(1))
	if slices.Contains(entityKinds, kind) {
		return kind, true
	}
	if kind == KindUser {
		if len(parts) > 3 && parts[3] == string(KindPlaylist) {
			return KindPlaylist, true
		}
		return KindUser, true
	}
	return "", false
}

// uriUnescaped is the set of ASCII bytes encodeURI leaves as-is.
const uriUnescaped = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789;,/?:@&=+$-_.!~*'()#"

// IndexFriendly percent-escapes a URI the way encodeURI does, then escapes apostrophes as %27,
// so it can be used as a stable record-index key. Local playlist URIs often carry spaces and quotes.
//
// Every byte outside [uriUnescaped] is written as %XX, which covers multi-byte UTF-8 as well.
func IndexFriendly(uri string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(uri))
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		switch {
		case c == '\'':
			b.WriteString("%27")
		case strings.IndexByte(uriUnescaped, c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		}
	}
	return b.String()
}
