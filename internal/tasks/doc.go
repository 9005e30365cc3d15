// Package tasks indexes provider payload files into the record store with real-time progress reporting.
//
// # Indexing
//
// [Indexer.Index] runs a worker pool over payload files:
//   - files are queued at a configurable rate
//   - each worker decodes one file with the decoder for its [Format], formats the records
//     and saves them in a single transaction
//   - every file in flight is registered with a [loading.Registry], so library views built meanwhile
//     can report a loading state
//
// Records without a uri are skipped. A file that fails to decode or save is reported and the others continue.
//
// # Progress Reporting
//
// [ProgressUpdate] values are sent with select and default, so a slow or absent reader never blocks indexing.
package tasks
