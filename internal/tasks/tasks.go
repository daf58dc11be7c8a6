package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
)

// TrackCacher persists tracks discovered during exports.
type TrackCacher interface {
	CacheTrack(track models.Track) (string, error)
}

// PlaylistCacher persists playlists and their track membership.
type PlaylistCacher interface {
	CachePlaylist(accountID string, playlist models.Playlist) (string, error)
	LinkTracks(playlistID string, trackIDs []string) error
}

// Engine runs the long operations behind the CLI against one API
// client. Cachers are optional; without them exports skip persistence.
type Engine struct {
	client    *spotify.Client
	tracks    TrackCacher
	playlists PlaylistCacher
	accountID string
}

// NewEngine creates an engine around client.
func NewEngine(client *spotify.Client) *Engine {
	return &Engine{client: client}
}

// WithCache enables persistence of exported rows under accountID,
// returning e for chaining. Either cacher may be nil.
func (e *Engine) WithCache(accountID string, tracks TrackCacher, playlists PlaylistCacher) *Engine {
	e.accountID = accountID
	e.tracks = tracks
	e.playlists = playlists
	return e
}

// sendProgress delivers update without blocking. A full or absent
// channel drops the update rather than stalling the operation.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ExportPlaylist exports one playlist with its complete track listing.
// idOrName is tried as a playlist ID first, then matched by name
// against the account's playlists. When caching is enabled the playlist
// and its tracks are persisted as a side effect.
func (e *Engine) ExportPlaylist(ctx context.Context, progress chan<- ProgressUpdate, idOrName string) (*models.PlaylistExport, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: no API client configured", shared.ErrNotAuthenticated)
	}

	e.sendProgress(progress, fetchPlaylistUpdate(1, 1))

	playlist, err := e.resolvePlaylist(ctx, idOrName)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, foundPlaylistUpdate(1, 1, models.FullPlaylistFromSpotify(playlist)))

	export, err := e.drainTracks(ctx, progress, playlist)
	if err != nil {
		return nil, err
	}

	e.cacheExport(export)
	return export, nil
}

// resolvePlaylist tries idOrName as a playlist ID, then falls back to
// a case-insensitive name match over the account's playlists.
func (e *Engine) resolvePlaylist(ctx context.Context, idOrName string) (*spotify.Playlist, error) {
	playlist, err := e.client.Playlist(ctx, idOrName)
	if err == nil {
		return playlist, nil
	}
	if !errors.Is(err, spotify.ErrNotFound) && !errors.Is(err, spotify.ErrBadRequest) {
		return nil, err
	}

	first, listErr := e.client.MyPlaylists(ctx, 50, 0)
	if listErr != nil {
		return nil, fmt.Errorf("listing playlists: %w", listErr)
	}
	for candidate, pageErr := range spotify.Pages(ctx, e.client, first) {
		if pageErr != nil {
			return nil, fmt.Errorf("listing playlists: %w", pageErr)
		}
		if strings.EqualFold(candidate.Name, idOrName) {
			return e.client.Playlist(ctx, candidate.ID)
		}
	}
	return nil, fmt.Errorf("%w: no playlist named %q", shared.ErrPlaylistNotFound, idOrName)
}

// fetchExport fetches one playlist by exact ID with its full listing.
func (e *Engine) fetchExport(ctx context.Context, progress chan<- ProgressUpdate, id string) (*models.PlaylistExport, error) {
	playlist, err := e.client.Playlist(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.drainTracks(ctx, progress, playlist)
}

// drainTracks pages through the playlist's remaining track pages and
// assembles the export. The playlist record already carries page one.
func (e *Engine) drainTracks(ctx context.Context, progress chan<- ProgressUpdate, playlist *spotify.Playlist) (*models.PlaylistExport, error) {
	export := &models.PlaylistExport{Playlist: models.FullPlaylistFromSpotify(playlist)}
	total := playlist.Tracks.Total
	count := 0

	for item, err := range spotify.Pages(ctx, e.client, &playlist.Tracks) {
		if err != nil {
			return nil, fmt.Errorf("fetching playlist tracks: %w", err)
		}
		count++
		track := models.TrackFromSpotify(item.Track)
		track.AddedAt = item.AddedAt
		export.Tracks = append(export.Tracks, track)
		e.sendProgress(progress, fetchTracksUpdate(count, total, track))
	}
	return export, nil
}

// cacheExport persists the export through the configured cachers.
// Failures are dropped so a broken cache cannot fail an export. Tracks
// without an ID (local files) are skipped.
func (e *Engine) cacheExport(export *models.PlaylistExport) {
	var trackIDs []string
	if e.tracks != nil {
		for _, track := range export.Tracks {
			if track.ID == "" {
				continue
			}
			if id, err := e.tracks.CacheTrack(track); err == nil {
				trackIDs = append(trackIDs, id)
			}
		}
	}

	if e.playlists == nil {
		return
	}
	playlistID, err := e.playlists.CachePlaylist(e.accountID, export.Playlist)
	if err != nil {
		return
	}
	if len(trackIDs) > 0 {
		e.playlists.LinkTracks(playlistID, trackIDs)
	}
}
