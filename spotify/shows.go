package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// Show fetches the full record for one show, first episode page
// included.
func (c *Client) Show(ctx context.Context, id string) (*Show, error) {
	show := new(Show)
	if err := c.get(ctx, fmt.Sprintf("/shows/%s", id), nil, show); err != nil {
		return nil, err
	}
	return show, nil
}

// Shows fetches up to 50 shows in one request. Results keep the order
// of ids.
func (c *Client) Shows(ctx context.Context, ids []string) ([]SimpleShow, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Shows []SimpleShow `json:"shows"`
	}
	if err := c.get(ctx, "/shows", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.Shows, nil
}

// ShowEpisodes lists a show's episodes, newest first.
func (c *Client) ShowEpisodes(ctx context.Context, id string, limit, offset int) (*Page[SimpleEpisode], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SimpleEpisode])
	if err := c.get(ctx, fmt.Sprintf("/shows/%s/episodes", id), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SavedShows lists the shows in the account's library. Requires
// [ScopeUserLibraryRead].
func (c *Client) SavedShows(ctx context.Context, limit, offset int) (*Page[SavedShow], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SavedShow])
	if err := c.get(ctx, "/me/shows", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SaveShows adds up to 50 shows to the account's library. Requires
// [ScopeUserLibraryModify].
func (c *Client) SaveShows(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.put(ctx, "/me/shows", url.Values{"ids": {joined}}, nil, nil)
}

// RemoveSavedShows removes up to 50 shows from the account's library.
// Requires [ScopeUserLibraryModify].
func (c *Client) RemoveSavedShows(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.delete(ctx, "/me/shows", url.Values{"ids": {joined}}, nil, nil)
}

// HasSavedShows reports, per id and in order, whether the show is in
// the account's library. Requires [ScopeUserLibraryRead].
func (c *Client) HasSavedShows(ctx context.Context, ids []string) ([]bool, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var saved []bool
	if err := c.get(ctx, "/me/shows/contains", url.Values{"ids": {joined}}, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
