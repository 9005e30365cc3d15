// Package models defines the canonical data model shared by every normalization package.
//
// Provider payloads have no fixed schema, so the canonical record is a JSON-shaped map:
//   - [Record] : a track, album, artist or playlist with source-agnostic field names
//   - [Images] : the four-bucket small/medium/large/huge size ladder
//   - [Range] : a start/length pair describing a run of consecutive indexes
//
// The value helpers ([Truthy], [Stringify], [Int]) apply loose, JSON-style semantics to provider
// values so normalization rules behave the same whether a field arrived as a number, a string or
// not at all.
package models
