package models

import (
	"strings"
	"time"

	"github.com/desertthunder/spx/spotify"
)

// Playlist is the playlist shape exports and listings work with.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
	SnapshotID  string `json:"snapshot_id,omitempty"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
}

// Track is the track shape exports and listings work with. Duration is
// in milliseconds.
type Track struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Artist   string    `json:"artist"`
	Album    string    `json:"album,omitempty"`
	Duration int       `json:"duration_ms"`
	ISRC     string    `json:"isrc,omitempty"`
	URI      string    `json:"uri,omitempty"`
	AddedAt  time.Time `json:"added_at,omitzero"`
}

// Album is the album shape listings and dumps work with.
type Album struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Artist      string    `json:"artist"`
	ReleaseDate string    `json:"release_date,omitempty"`
	TotalTracks int       `json:"total_tracks"`
	AddedAt     time.Time `json:"added_at,omitzero"`
}

// PlaylistExport bundles a playlist with its complete track listing.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
}

// PlaylistFromSpotify maps an API playlist into the export shape.
func PlaylistFromSpotify(p spotify.SimplePlaylist) Playlist {
	owner := p.Owner.DisplayName
	if owner == "" {
		owner = p.Owner.ID
	}
	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       owner,
		SnapshotID:  p.SnapshotID,
		TrackCount:  p.Tracks.Total,
		Public:      p.Public,
	}
}

// FullPlaylistFromSpotify maps a full playlist record, whose embedded
// track listing carries the count, into the export shape.
func FullPlaylistFromSpotify(p *spotify.Playlist) Playlist {
	owner := p.Owner.DisplayName
	if owner == "" {
		owner = p.Owner.ID
	}
	return Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       owner,
		SnapshotID:  p.SnapshotID,
		TrackCount:  p.Tracks.Total,
		Public:      p.Public,
	}
}

// AlbumFromSpotify maps an API album into the listing shape. The first
// artist stands in for the album artist.
func AlbumFromSpotify(a spotify.Album) Album {
	artist := ""
	if len(a.Artists) > 0 {
		artist = a.Artists[0].Name
	}
	return Album{
		ID:          a.ID,
		Name:        a.Name,
		Artist:      artist,
		ReleaseDate: a.ReleaseDate,
		TotalTracks: a.TotalTracks,
	}
}

// TrackFromSpotify maps an API track into the export shape.
func TrackFromSpotify(t spotify.Track) Track {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return Track{
		ID:       t.ID,
		Title:    t.Name,
		Artist:   strings.Join(names, ", "),
		Album:    t.Album.Name,
		Duration: t.DurationMS,
		ISRC:     t.ISRC(),
		URI:      t.URI,
	}
}
