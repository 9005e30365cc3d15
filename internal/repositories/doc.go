// Package repositories implements SQLite persistence for mixdeck.
//
// Key Implementations:
//   - [StateStore] : JSON key/value state with shallow-merge writes and a no-database fallback
//   - [RecordRepository] : canonical records indexed by resource URI with classified source and kind columns
//
// Both take a [context.Context] on every call and expect the schema from [shared.RunMigrations].
package repositories
