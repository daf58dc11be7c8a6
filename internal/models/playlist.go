package models

import (
	"fmt"
	"time"
)

// CachedPlaylist is a locally cached playlist with its snapshot id, so
// refreshes can tell whether the remote listing changed.
type CachedPlaylist struct {
	id          string
	sequence    int
	spotifyID   string
	accountID   string
	name        string
	description string
	owner       string
	snapshotID  string
	trackCount  int
	public      bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewCachedPlaylist creates a CachedPlaylist owned by the given account
// from a playlist DTO.
func NewCachedPlaylist(sequence int, spotifyID, accountID string, dto Playlist) *CachedPlaylist {
	now := time.Now()
	return &CachedPlaylist{
		sequence:    sequence,
		spotifyID:   spotifyID,
		accountID:   accountID,
		name:        dto.Name,
		description: dto.Description,
		owner:       dto.Owner,
		snapshotID:  dto.SnapshotID,
		trackCount:  dto.TrackCount,
		public:      dto.Public,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (p *CachedPlaylist) ID() string            { return p.id }
func (p *CachedPlaylist) Sequence() int         { return p.sequence }
func (p *CachedPlaylist) SpotifyID() string     { return p.spotifyID }
func (p *CachedPlaylist) AccountID() string     { return p.accountID }
func (p *CachedPlaylist) Name() string          { return p.name }
func (p *CachedPlaylist) Description() string   { return p.description }
func (p *CachedPlaylist) Owner() string         { return p.owner }
func (p *CachedPlaylist) SnapshotID() string    { return p.snapshotID }
func (p *CachedPlaylist) TrackCount() int       { return p.trackCount }
func (p *CachedPlaylist) Public() bool          { return p.public }
func (p *CachedPlaylist) CreatedAt() time.Time  { return p.createdAt }
func (p *CachedPlaylist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *CachedPlaylist) DeletedAt() *time.Time { return p.deletedAt }

func (p *CachedPlaylist) SetID(id string)            { p.id = id }
func (p *CachedPlaylist) SetName(name string)        { p.name = name }
func (p *CachedPlaylist) SetDescription(desc string) { p.description = desc }
func (p *CachedPlaylist) SetSnapshotID(snap string)  { p.snapshotID = snap }
func (p *CachedPlaylist) SetTrackCount(n int)        { p.trackCount = n }
func (p *CachedPlaylist) SetPublic(public bool)      { p.public = public }
func (p *CachedPlaylist) SetCreatedAt(t time.Time)   { p.createdAt = t }
func (p *CachedPlaylist) SetUpdatedAt(t time.Time)   { p.updatedAt = t }
func (p *CachedPlaylist) SetDeletedAt(t *time.Time)  { p.deletedAt = t }

// DTO converts the cached row back into the export shape.
func (p *CachedPlaylist) DTO() Playlist {
	return Playlist{
		ID:          p.spotifyID,
		Name:        p.name,
		Description: p.description,
		Owner:       p.owner,
		SnapshotID:  p.snapshotID,
		TrackCount:  p.trackCount,
		Public:      p.public,
	}
}

// Validate checks that the playlist carries the fields persistence
// depends on.
func (p *CachedPlaylist) Validate() error {
	if p.spotifyID == "" {
		return fmt.Errorf("cached playlist requires a spotify id")
	}
	if p.name == "" {
		return fmt.Errorf("cached playlist requires a name")
	}
	return nil
}
