package ui

import (
	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/spotify"
)

// One message struct per event. Commands on [Model] produce these and
// Update consumes them.

type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

type tracksFetchedMsg struct {
	export *models.PlaylistExport
	err    error
}

// playbackMsg carries a playback state poll. A nil state with a nil
// err means nothing is playing on any device.
type playbackMsg struct {
	state *spotify.PlaybackState
	err   error
}

// controlMsg reports the outcome of a player control call.
type controlMsg struct {
	err error
}

// pollMsg asks for the next playback poll while the player view is
// open.
type pollMsg struct{}
