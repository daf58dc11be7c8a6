package spotify

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
)

// PlaylistDetails carries the editable attributes of a playlist.
// Nil and empty fields are left unchanged by edits and take service
// defaults on creation.
type PlaylistDetails struct {
	Name          string `json:"name,omitempty"`
	Public        *bool  `json:"public,omitempty"`
	Collaborative *bool  `json:"collaborative,omitempty"`
	Description   string `json:"description,omitempty"`
}

type snapshotReply struct {
	SnapshotID string `json:"snapshot_id"`
}

// Playlist fetches the full record for one playlist, first track page
// included.
func (c *Client) Playlist(ctx context.Context, id string) (*Playlist, error) {
	playlist := new(Playlist)
	if err := c.get(ctx, fmt.Sprintf("/playlists/%s", id), nil, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// PlaylistItems lists a playlist's tracks.
func (c *Client) PlaylistItems(ctx context.Context, id string, limit, offset int) (*Page[PlaylistTrack], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[PlaylistTrack])
	if err := c.get(ctx, fmt.Sprintf("/playlists/%s/tracks", id), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// MyPlaylists lists the playlists owned and followed by the current
// user. Requires [ScopePlaylistReadPrivate] to include private ones.
func (c *Client) MyPlaylists(ctx context.Context, limit, offset int) (*Page[SimplePlaylist], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SimplePlaylist])
	if err := c.get(ctx, "/me/playlists", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// UserPlaylists lists another user's public playlists.
func (c *Client) UserPlaylists(ctx context.Context, userID string, limit, offset int) (*Page[SimplePlaylist], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SimplePlaylist])
	if err := c.get(ctx, fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID)), q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// CreatePlaylist creates an empty playlist for the user. details.Name
// is required; a nil Public defaults to public. Requires
// [ScopePlaylistModifyPublic] or [ScopePlaylistModifyPrivate] to match
// the visibility.
func (c *Client) CreatePlaylist(ctx context.Context, userID string, details PlaylistDetails) (*Playlist, error) {
	if details.Name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", ErrInvalidInput)
	}
	playlist := new(Playlist)
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := c.post(ctx, endpoint, nil, details, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ChangePlaylistDetails edits a playlist's attributes. Only the fields
// set in details change.
func (c *Client) ChangePlaylistDetails(ctx context.Context, id string, details PlaylistDetails) error {
	return c.put(ctx, fmt.Sprintf("/playlists/%s", id), nil, details, nil)
}

// AddPlaylistItems appends up to 100 track or episode URIs to a
// playlist and returns the new snapshot id.
func (c *Client) AddPlaylistItems(ctx context.Context, id string, uris []string) (string, error) {
	if _, err := joinIDs(uris, 100); err != nil {
		return "", err
	}
	body := map[string]any{"uris": uris}
	var reply snapshotReply
	if err := c.post(ctx, fmt.Sprintf("/playlists/%s/tracks", id), nil, body, &reply); err != nil {
		return "", err
	}
	return reply.SnapshotID, nil
}

// RemovePlaylistItems removes all occurrences of up to 100 URIs from a
// playlist and returns the new snapshot id.
func (c *Client) RemovePlaylistItems(ctx context.Context, id string, uris []string) (string, error) {
	if _, err := joinIDs(uris, 100); err != nil {
		return "", err
	}
	tracks := make([]map[string]string, len(uris))
	for i, uri := range uris {
		tracks[i] = map[string]string{"uri": uri}
	}
	body := map[string]any{"tracks": tracks}
	var reply snapshotReply
	if err := c.delete(ctx, fmt.Sprintf("/playlists/%s/tracks", id), nil, body, &reply); err != nil {
		return "", err
	}
	return reply.SnapshotID, nil
}

// ReplacePlaylistItems overwrites a playlist's contents with up to 100
// URIs and returns the new snapshot id. An empty uris clears the
// playlist.
func (c *Client) ReplacePlaylistItems(ctx context.Context, id string, uris []string) (string, error) {
	if len(uris) > 100 {
		return "", fmt.Errorf("%w: %d uris given, endpoint accepts at most %d", ErrInvalidInput, len(uris), 100)
	}
	if uris == nil {
		uris = []string{}
	}
	body := map[string]any{"uris": uris}
	var reply snapshotReply
	if err := c.put(ctx, fmt.Sprintf("/playlists/%s/tracks", id), nil, body, &reply); err != nil {
		return "", err
	}
	return reply.SnapshotID, nil
}

// FollowPlaylist adds the playlist to the account's library. public
// controls whether it shows on the account profile.
func (c *Client) FollowPlaylist(ctx context.Context, id string, public bool) error {
	body := map[string]bool{"public": public}
	return c.put(ctx, fmt.Sprintf("/playlists/%s/followers", id), nil, body, nil)
}

// UnfollowPlaylist removes the playlist from the account's library.
func (c *Client) UnfollowPlaylist(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/playlists/%s/followers", id), nil, nil, nil)
}

// PlaylistIsFollowed reports, per user id and in order, whether the
// user follows the playlist. At most 5 ids per request.
func (c *Client) PlaylistIsFollowed(ctx context.Context, id string, userIDs []string) ([]bool, error) {
	joined, err := joinIDs(userIDs, 5)
	if err != nil {
		return nil, err
	}
	var follows []bool
	endpoint := fmt.Sprintf("/playlists/%s/followers/contains", id)
	if err := c.get(ctx, endpoint, url.Values{"ids": {joined}}, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

// PlaylistCoverImage fetches the playlist's current cover art.
func (c *Client) PlaylistCoverImage(ctx context.Context, id string) ([]Image, error) {
	var images []Image
	if err := c.get(ctx, fmt.Sprintf("/playlists/%s/images", id), nil, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// UploadPlaylistCover replaces the playlist's cover art with a JPEG.
// The service caps the image at 256 KB once base64 encoded. Requires
// [ScopeUGCImageUpload].
func (c *Client) UploadPlaylistCover(ctx context.Context, id string, jpeg []byte) error {
	if len(jpeg) == 0 {
		return fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(jpeg)))
	base64.StdEncoding.Encode(encoded, jpeg)
	u := c.baseURL + fmt.Sprintf("/playlists/%s/images", id)
	_, err := c.roundTrip(ctx, http.MethodPut, u, "image/jpeg", encoded, nil)
	return err
}

// FeaturedPlaylists lists the playlists featured on the service's
// browse page, with the tagline shown above them.
func (c *Client) FeaturedPlaylists(ctx context.Context, limit, offset int) (string, *Page[SimplePlaylist], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	var payload struct {
		Message   string               `json:"message"`
		Playlists Page[SimplePlaylist] `json:"playlists"`
	}
	if err := c.get(ctx, "/browse/featured-playlists", q, &payload); err != nil {
		return "", nil, err
	}
	return payload.Message, &payload.Playlists, nil
}
