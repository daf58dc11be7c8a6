package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
)

// LibraryDump is a point-in-time snapshot of the account's library.
// Sections that failed to fetch are listed in Failures and left empty.
type LibraryDump struct {
	Profile         *spotify.User         `json:"profile,omitempty"`
	Playlists       []models.Playlist     `json:"playlists,omitempty"`
	SavedTracks     []models.Track        `json:"saved_tracks,omitempty"`
	SavedAlbums     []models.Album        `json:"saved_albums,omitempty"`
	TopArtists      []spotify.Artist      `json:"top_artists,omitempty"`
	TopTracks       []models.Track        `json:"top_tracks,omitempty"`
	RecentlyPlayed  []spotify.PlayHistory `json:"recently_played,omitempty"`
	FollowedArtists []spotify.Artist      `json:"followed_artists,omitempty"`
	Failures        []DumpFailure         `json:"failures,omitempty"`
}

// DumpFailure records one library section that could not be fetched.
type DumpFailure struct {
	Section string `json:"section"`
	Reason  string `json:"reason"`
}

type dumpStep struct {
	section string
	phase   Phase
	message string
	run     func(context.Context) error
}

// DumpLibrary fetches every section of the account's library. A failed
// section is recorded and the dump continues; only context cancelation
// aborts the run.
func (e *Engine) DumpLibrary(ctx context.Context, progress chan<- ProgressUpdate) (*LibraryDump, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: no API client configured", shared.ErrNotAuthenticated)
	}

	dump := &LibraryDump{}
	steps := []dumpStep{
		{"profile", FetchProfile, "Fetching profile...", func(ctx context.Context) error {
			profile, err := e.client.Me(ctx)
			if err != nil {
				return err
			}
			dump.Profile = profile
			return nil
		}},
		{"playlists", FetchPlaylists, "Fetching playlists...", func(ctx context.Context) error {
			first, err := e.client.MyPlaylists(ctx, 50, 0)
			if err != nil {
				return err
			}
			for playlist, pageErr := range spotify.Pages(ctx, e.client, first) {
				if pageErr != nil {
					return pageErr
				}
				dump.Playlists = append(dump.Playlists, models.PlaylistFromSpotify(playlist))
			}
			return nil
		}},
		{"saved_tracks", FetchSaved, "Fetching saved tracks...", func(ctx context.Context) error {
			first, err := e.client.SavedTracks(ctx, 50, 0)
			if err != nil {
				return err
			}
			for saved, pageErr := range spotify.Pages(ctx, e.client, first) {
				if pageErr != nil {
					return pageErr
				}
				track := models.TrackFromSpotify(saved.Track)
				track.AddedAt = saved.AddedAt
				dump.SavedTracks = append(dump.SavedTracks, track)
			}
			return nil
		}},
		{"saved_albums", FetchAlbums, "Fetching saved albums...", func(ctx context.Context) error {
			first, err := e.client.SavedAlbums(ctx, 50, 0)
			if err != nil {
				return err
			}
			for saved, pageErr := range spotify.Pages(ctx, e.client, first) {
				if pageErr != nil {
					return pageErr
				}
				album := models.AlbumFromSpotify(saved.Album)
				album.AddedAt = saved.AddedAt
				dump.SavedAlbums = append(dump.SavedAlbums, album)
			}
			return nil
		}},
		{"top_artists", FetchTop, "Fetching top artists...", func(ctx context.Context) error {
			first, err := e.client.TopArtists(ctx, "medium_term", 50, 0)
			if err != nil {
				return err
			}
			artists, err := spotify.Collect(spotify.Pages(ctx, e.client, first))
			if err != nil {
				return err
			}
			dump.TopArtists = artists
			return nil
		}},
		{"top_tracks", FetchTop, "Fetching top tracks...", func(ctx context.Context) error {
			first, err := e.client.TopTracks(ctx, "medium_term", 50, 0)
			if err != nil {
				return err
			}
			for track, pageErr := range spotify.Pages(ctx, e.client, first) {
				if pageErr != nil {
					return pageErr
				}
				dump.TopTracks = append(dump.TopTracks, models.TrackFromSpotify(track))
			}
			return nil
		}},
		{"recently_played", FetchRecent, "Fetching recently played...", func(ctx context.Context) error {
			page, err := e.client.RecentlyPlayed(ctx, 50, "", "")
			if err != nil {
				return err
			}
			dump.RecentlyPlayed = page.Items
			return nil
		}},
		{"followed_artists", FetchFollowed, "Fetching followed artists...", func(ctx context.Context) error {
			first, err := e.client.FollowedArtists(ctx, "", 50)
			if err != nil {
				return err
			}
			artists, err := spotify.Collect(spotify.CursorPages(ctx, e.client, first))
			if err != nil {
				return err
			}
			dump.FollowedArtists = artists
			return nil
		}},
	}

	total := len(steps)
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return dump, err
		}
		e.sendProgress(progress, dumpStepUpdate(i+1, total, step.phase, step.message))
		if err := step.run(ctx); err != nil {
			dump.Failures = append(dump.Failures, DumpFailure{Section: step.section, Reason: err.Error()})
		}
	}
	return dump, nil
}
