package models

import (
	"fmt"
	"time"
)

// CachedTrack is a locally cached track. ISRC is kept so recordings can
// be matched across playlists and library snapshots.
type CachedTrack struct {
	id        string
	sequence  int
	spotifyID string
	title     string
	artist    string
	album     string
	duration  int
	isrc      string
	uri       string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedTrack creates a CachedTrack from a track DTO.
func NewCachedTrack(sequence int, spotifyID string, dto Track) *CachedTrack {
	now := time.Now()
	return &CachedTrack{
		sequence:  sequence,
		spotifyID: spotifyID,
		title:     dto.Title,
		artist:    dto.Artist,
		album:     dto.Album,
		duration:  dto.Duration,
		isrc:      dto.ISRC,
		uri:       dto.URI,
		createdAt: now,
		updatedAt: now,
	}
}

func (t *CachedTrack) ID() string            { return t.id }
func (t *CachedTrack) Sequence() int         { return t.sequence }
func (t *CachedTrack) SpotifyID() string     { return t.spotifyID }
func (t *CachedTrack) Title() string         { return t.title }
func (t *CachedTrack) Artist() string        { return t.artist }
func (t *CachedTrack) Album() string         { return t.album }
func (t *CachedTrack) Duration() int         { return t.duration }
func (t *CachedTrack) ISRC() string          { return t.isrc }
func (t *CachedTrack) URI() string           { return t.uri }
func (t *CachedTrack) CreatedAt() time.Time  { return t.createdAt }
func (t *CachedTrack) UpdatedAt() time.Time  { return t.updatedAt }
func (t *CachedTrack) DeletedAt() *time.Time { return t.deletedAt }

func (t *CachedTrack) SetID(id string)            { t.id = id }
func (t *CachedTrack) SetCreatedAt(at time.Time)  { t.createdAt = at }
func (t *CachedTrack) SetUpdatedAt(at time.Time)  { t.updatedAt = at }
func (t *CachedTrack) SetDeletedAt(at *time.Time) { t.deletedAt = at }

// DTO converts the cached row back into the export shape.
func (t *CachedTrack) DTO() Track {
	return Track{
		ID:       t.spotifyID,
		Title:    t.title,
		Artist:   t.artist,
		Album:    t.album,
		Duration: t.duration,
		ISRC:     t.isrc,
		URI:      t.uri,
	}
}

// Validate checks that the track carries the fields persistence
// depends on.
func (t *CachedTrack) Validate() error {
	if t.spotifyID == "" {
		return fmt.Errorf("cached track requires a spotify id")
	}
	if t.title == "" {
		return fmt.Errorf("cached track requires a title")
	}
	return nil
}
