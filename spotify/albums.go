package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// Album fetches the full catalog record for one album.
func (c *Client) Album(ctx context.Context, id string) (*Album, error) {
	album := new(Album)
	if err := c.get(ctx, fmt.Sprintf("/albums/%s", id), nil, album); err != nil {
		return nil, err
	}
	return album, nil
}

// Albums fetches up to 20 albums in one request. Results keep the
// order of ids.
func (c *Client) Albums(ctx context.Context, ids []string) ([]Album, error) {
	joined, err := joinIDs(ids, 20)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Albums []Album `json:"albums"`
	}
	if err := c.get(ctx, "/albums", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.Albums, nil
}

// AlbumTracks lists an album's tracks.
func (c *Client) AlbumTracks(ctx context.Context, id string, limit, offset int) (*Page[SimpleTrack], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SimpleTrack])
	if err := c.get(ctx, fmt.Sprintf("/albums/%s/tracks", id), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SavedAlbums lists the albums in the account's library, most recently
// saved first. Requires [ScopeUserLibraryRead].
func (c *Client) SavedAlbums(ctx context.Context, limit, offset int) (*Page[SavedAlbum], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SavedAlbum])
	if err := c.get(ctx, "/me/albums", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SaveAlbums adds up to 50 albums to the account's library. Requires
// [ScopeUserLibraryModify].
func (c *Client) SaveAlbums(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.put(ctx, "/me/albums", url.Values{"ids": {joined}}, nil, nil)
}

// RemoveSavedAlbums removes up to 50 albums from the account's
// library. Requires [ScopeUserLibraryModify].
func (c *Client) RemoveSavedAlbums(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.delete(ctx, "/me/albums", url.Values{"ids": {joined}}, nil, nil)
}

// HasSavedAlbums reports, per id and in order, whether the album is in
// the account's library. Requires [ScopeUserLibraryRead].
func (c *Client) HasSavedAlbums(ctx context.Context, ids []string) ([]bool, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var saved []bool
	if err := c.get(ctx, "/me/albums/contains", url.Values{"ids": {joined}}, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// NewReleases lists newly released albums featured by the catalog.
func (c *Client) NewReleases(ctx context.Context, limit, offset int) (*Page[SimpleAlbum], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	var payload struct {
		Albums Page[SimpleAlbum] `json:"albums"`
	}
	if err := c.get(ctx, "/browse/new-releases", q, &payload); err != nil {
		return nil, err
	}
	return &payload.Albums, nil
}
