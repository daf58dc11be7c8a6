package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// Me fetches the current user's profile. Email and country require
// [ScopeUserReadEmail] and [ScopeUserReadPrivate].
func (c *Client) Me(ctx context.Context) (*User, error) {
	user := new(User)
	if err := c.get(ctx, "/me", nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// User fetches another user's public profile.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	user := new(User)
	if err := c.get(ctx, fmt.Sprintf("/users/%s", url.PathEscape(id)), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TopArtists lists the account's most listened artists over timeRange,
// one of the TimeRange constants (empty means [TimeRangeMedium]).
// Requires [ScopeUserTopRead].
func (c *Client) TopArtists(ctx context.Context, timeRange string, limit, offset int) (*Page[Artist], error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("time_range", timeRange)
	}
	addPaging(q, limit, offset)
	page := new(Page[Artist])
	if err := c.get(ctx, "/me/top/artists", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// TopTracks lists the account's most listened tracks over timeRange.
// Requires [ScopeUserTopRead].
func (c *Client) TopTracks(ctx context.Context, timeRange string, limit, offset int) (*Page[Track], error) {
	q := url.Values{}
	if timeRange != "" {
		q.Set("time_range", timeRange)
	}
	addPaging(q, limit, offset)
	page := new(Page[Track])
	if err := c.get(ctx, "/me/top/tracks", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// FollowedArtists lists the artists the account follows. after is the
// last artist id of the previous page, empty for the first. Requires
// [ScopeUserFollowRead].
func (c *Client) FollowedArtists(ctx context.Context, after string, limit int) (*CursorPage[Artist], error) {
	q := url.Values{"type": {"artist"}}
	if after != "" {
		q.Set("after", after)
	}
	addPaging(q, limit, 0)
	var payload struct {
		Artists CursorPage[Artist] `json:"artists"`
	}
	if err := c.get(ctx, "/me/following", q, &payload); err != nil {
		return nil, err
	}
	return &payload.Artists, nil
}

// FollowArtists follows up to 50 artists. Requires
// [ScopeUserFollowModify].
func (c *Client) FollowArtists(ctx context.Context, ids []string) error {
	return c.modifyFollowing(ctx, "artist", ids, true)
}

// FollowUsers follows up to 50 users. Requires
// [ScopeUserFollowModify].
func (c *Client) FollowUsers(ctx context.Context, ids []string) error {
	return c.modifyFollowing(ctx, "user", ids, true)
}

// UnfollowArtists unfollows up to 50 artists. Requires
// [ScopeUserFollowModify].
func (c *Client) UnfollowArtists(ctx context.Context, ids []string) error {
	return c.modifyFollowing(ctx, "artist", ids, false)
}

// UnfollowUsers unfollows up to 50 users. Requires
// [ScopeUserFollowModify].
func (c *Client) UnfollowUsers(ctx context.Context, ids []string) error {
	return c.modifyFollowing(ctx, "user", ids, false)
}

func (c *Client) modifyFollowing(ctx context.Context, kind string, ids []string, follow bool) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	q := url.Values{"type": {kind}, "ids": {joined}}
	if follow {
		return c.put(ctx, "/me/following", q, nil, nil)
	}
	return c.delete(ctx, "/me/following", q, nil, nil)
}

// IsFollowingArtists reports, per id and in order, whether the account
// follows the artist. Requires [ScopeUserFollowRead].
func (c *Client) IsFollowingArtists(ctx context.Context, ids []string) ([]bool, error) {
	return c.checkFollowing(ctx, "artist", ids)
}

// IsFollowingUsers reports, per id and in order, whether the account
// follows the user. Requires [ScopeUserFollowRead].
func (c *Client) IsFollowingUsers(ctx context.Context, ids []string) ([]bool, error) {
	return c.checkFollowing(ctx, "user", ids)
}

func (c *Client) checkFollowing(ctx context.Context, kind string, ids []string) ([]bool, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	q := url.Values{"type": {kind}, "ids": {joined}}
	var follows []bool
	if err := c.get(ctx, "/me/following/contains", q, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}
