// Package tasks orchestrates the long-running library operations
// behind the CLI, with real-time progress reporting.
//
// # Core Operations
//
// [Engine] provides four operations:
//
//  1. [Engine.ExportPlaylist] : Full export of one playlist
//     - Resolves the argument as a playlist ID, then by name
//     - Pages through the complete track listing
//     - Optionally persists tracks and playlist rows to the cache
//
//  2. [Engine.BulkExport] : Export many playlists concurrently
//     - Worker pool with a request rate limiter
//     - Writes JSON, CSV, Markdown or plain text per playlist
//     - Finishes with a manifest summarizing every export
//
//  3. [Engine.Diff] : Compare two playlists
//     - Matches tracks via ISRC first, normalized title/artist second
//     - Reports matched count, missing tracks, and extra tracks
//
//  4. [Engine.DumpLibrary] : Snapshot the whole library
//     - Profile, playlists, saved tracks and albums, top listings,
//       recently played, followed artists
//     - Failed sections are recorded and the dump continues
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on a caller-owned channel.
// Sends use select with default so a slow or absent consumer never
// stalls the operation.
//
// # Caching
//
// The optional [TrackCacher] and [PlaylistCacher] interfaces persist
// rows during exports. Cache failures are swallowed so a broken local
// database cannot fail an export. repositories.TrackCacheAdapter and
// repositories.PlaylistCacheAdapter implement them.
package tasks
