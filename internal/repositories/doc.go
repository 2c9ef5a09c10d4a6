// Package repositories implements the SQLite album catalog.
//
// [AlbumRepository] satisfies models.Catalog against an in-memory SQLite database, so it shares the
// process-only lifetime of the map-backed catalog while exercising the same schema and migration path.
//
// Insertion order comes from per-table sequence counters rather than timestamps or UUIDs.
// The [NextSequence] function atomically increments a counter in a dedicated sequence table.
package repositories
