// Package models defines domain entities and persistence interfaces for the spx library cache.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs used by exports and display
//   - [Playlist] : Basic playlist metadata
//   - [PlaylistExport] : Playlist with complete track listing
//   - [Track] : Song metadata with ISRC
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Account] : Authenticated accounts and their profile details
//   - [StoredToken] : OAuth tokens keyed to an account
//   - [CachedPlaylist] : Cached playlists with snapshot tracking
//   - [CachedTrack] : Cached tracks with ISRC for offline lookups
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
