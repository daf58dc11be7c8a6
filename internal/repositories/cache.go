package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spx/internal/models"
)

// TrackCacheAdapter implements tasks.TrackCacher using TrackRepository.
//
// Provides automatic track caching with deduplication on the spotify_id
// unique constraint. Caching an already known track returns its
// existing local id instead of an error.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a new TrackCacheAdapter with the given repository
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// CacheTrack caches a track and returns its local row id. Duplicates
// resolve to the existing row; only actual failures return errors.
func (a *TrackCacheAdapter) CacheTrack(track models.Track) (string, error) {
	existing, err := a.repo.GetBySpotifyID(track.ID)
	if err == nil && existing != nil {
		return existing.ID(), nil
	}

	cached := models.NewCachedTrack(0, track.ID, track)

	if err := a.repo.Create(cached); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			if existing, lookupErr := a.repo.GetBySpotifyID(track.ID); lookupErr == nil {
				return existing.ID(), nil
			}
		}
		return "", fmt.Errorf("failed to cache track: %w", err)
	}

	return cached.ID(), nil
}

// PlaylistCacheAdapter implements tasks.PlaylistCacher using PlaylistRepository.
//
// Caching a playlist upserts on its spotify_id so repeated syncs refresh
// the stored name, snapshot id, and counts in place.
type PlaylistCacheAdapter struct {
	repo *PlaylistRepository
}

// NewPlaylistCacheAdapter creates a new PlaylistCacheAdapter with the given repository
func NewPlaylistCacheAdapter(repo *PlaylistRepository) *PlaylistCacheAdapter {
	return &PlaylistCacheAdapter{repo: repo}
}

// CachePlaylist caches a playlist for an account and returns its local
// row id. Known playlists are refreshed rather than duplicated.
func (a *PlaylistCacheAdapter) CachePlaylist(accountID string, playlist models.Playlist) (string, error) {
	existing, err := a.repo.GetBySpotifyID(playlist.ID)
	if err == nil && existing != nil {
		existing.SetName(playlist.Name)
		existing.SetDescription(playlist.Description)
		existing.SetSnapshotID(playlist.SnapshotID)
		existing.SetTrackCount(playlist.TrackCount)
		existing.SetPublic(playlist.Public)
		if err := a.repo.Update(existing); err != nil {
			return "", fmt.Errorf("failed to refresh cached playlist: %w", err)
		}
		return existing.ID(), nil
	}

	cached := models.NewCachedPlaylist(0, playlist.ID, accountID, playlist)
	if err := a.repo.Create(cached); err != nil {
		return "", fmt.Errorf("failed to cache playlist: %w", err)
	}

	return cached.ID(), nil
}

// LinkTracks records the playlist's ordered membership using local
// track ids, replacing whatever was linked before.
func (a *PlaylistCacheAdapter) LinkTracks(playlistID string, trackIDs []string) error {
	return a.repo.ReplaceTracks(playlistID, trackIDs)
}
