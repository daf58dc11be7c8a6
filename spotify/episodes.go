package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// Episode fetches the full record for one episode. Requires
// [ScopeUserReadPlaybackPosition] for the resume point.
func (c *Client) Episode(ctx context.Context, id string) (*Episode, error) {
	episode := new(Episode)
	if err := c.get(ctx, fmt.Sprintf("/episodes/%s", id), nil, episode); err != nil {
		return nil, err
	}
	return episode, nil
}

// Episodes fetches up to 50 episodes in one request. Results keep the
// order of ids.
func (c *Client) Episodes(ctx context.Context, ids []string) ([]Episode, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Episodes []Episode `json:"episodes"`
	}
	if err := c.get(ctx, "/episodes", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.Episodes, nil
}

// SavedEpisodes lists the episodes in the account's library. Requires
// [ScopeUserLibraryRead].
func (c *Client) SavedEpisodes(ctx context.Context, limit, offset int) (*Page[SavedEpisode], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SavedEpisode])
	if err := c.get(ctx, "/me/episodes", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SaveEpisodes adds up to 50 episodes to the account's library.
// Requires [ScopeUserLibraryModify].
func (c *Client) SaveEpisodes(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.put(ctx, "/me/episodes", url.Values{"ids": {joined}}, nil, nil)
}

// RemoveSavedEpisodes removes up to 50 episodes from the account's
// library. Requires [ScopeUserLibraryModify].
func (c *Client) RemoveSavedEpisodes(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.delete(ctx, "/me/episodes", url.Values{"ids": {joined}}, nil, nil)
}

// HasSavedEpisodes reports, per id and in order, whether the episode
// is in the account's library. Requires [ScopeUserLibraryRead].
func (c *Client) HasSavedEpisodes(ctx context.Context, ids []string) ([]bool, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var saved []bool
	if err := c.get(ctx, "/me/episodes/contains", url.Values{"ids": {joined}}, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
