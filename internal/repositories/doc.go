// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [AccountRepository] : Account persistence with spotify_id lookups
//   - [TokenStore] : OAuth token storage, one row per account, replaced on refresh
//   - [PlaylistRepository] : Playlist caching with snapshot ids and ordered track membership
//   - [TrackRepository] : Track caching with ISRC-based matching
//
// The cache adapters ([TrackCacheAdapter], [PlaylistCacheAdapter]) wrap repositories
// with the upsert semantics the task engine expects.
//
// Sequence numbers provide stable, human-readable ordering (e.g., account #1, playlist #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
