// Package services turns raw provider responses into canonical records.
//
// # Envelopes
//
// Providers wrap their entities differently. [Records] strips the known envelopes so the formatter
// only ever sees entity objects or playlist-entry wrappers:
//
//   - Mopidy JSON-RPC responses carry the payload in "result"; errors surface through [CheckRPC]
//   - Spotify paging objects carry entities in "items", nested under "tracks", "albums", ... for searches
//   - Mopidy library.lookup returns a map of uri to track list
//   - Last.fm wraps one entity in "track", "album" or "artist"
//
// # MPD
//
// [FromMPD] maps the tag attributes of an MPD song onto the record shape the Mopidy local backend reports,
// so MPD and Mopidy tracks format identically.
package services
