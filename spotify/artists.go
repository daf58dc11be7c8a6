package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Artist fetches the full catalog record for one artist.
func (c *Client) Artist(ctx context.Context, id string) (*Artist, error) {
	artist := new(Artist)
	if err := c.get(ctx, fmt.Sprintf("/artists/%s", id), nil, artist); err != nil {
		return nil, err
	}
	return artist, nil
}

// Artists fetches up to 50 artists in one request. Results keep the
// order of ids.
func (c *Client) Artists(ctx context.Context, ids []string) ([]Artist, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "/artists", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.Artists, nil
}

// ArtistAlbums lists an artist's albums. includeGroups narrows the
// listing to the named [IncludeGroupAlbum] style groups; empty means
// all of them.
func (c *Client) ArtistAlbums(ctx context.Context, id string, includeGroups []string, limit, offset int) (*Page[SimpleAlbum], error) {
	q := url.Values{}
	if len(includeGroups) > 0 {
		q.Set("include_groups", strings.Join(includeGroups, ","))
	}
	addPaging(q, limit, offset)
	page := new(Page[SimpleAlbum])
	if err := c.get(ctx, fmt.Sprintf("/artists/%s/albums", id), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// ArtistTopTracks fetches an artist's most popular tracks in the given
// market (an ISO 3166-1 alpha-2 country code).
func (c *Client) ArtistTopTracks(ctx context.Context, id, market string) ([]Track, error) {
	if market == "" {
		return nil, fmt.Errorf("%w: market is required", ErrInvalidInput)
	}
	var payload struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, fmt.Sprintf("/artists/%s/top-tracks", id), url.Values{"market": {market}}, &payload); err != nil {
		return nil, err
	}
	return payload.Tracks, nil
}

// RelatedArtists fetches artists similar to the given one, by listener
// behavior.
func (c *Client) RelatedArtists(ctx context.Context, id string) ([]Artist, error) {
	var payload struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, fmt.Sprintf("/artists/%s/related-artists", id), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Artists, nil
}
