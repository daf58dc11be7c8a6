package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// PlayOptions shape a [Client.Play] request. The zero value resumes
// whatever is paused on the active device.
type PlayOptions struct {
	// DeviceID targets a specific device; empty keeps the active one.
	DeviceID string

	// ContextURI starts playback of an album, artist, or playlist.
	ContextURI string

	// URIs plays the given tracks in order. Mutually exclusive with
	// ContextURI.
	URIs []string

	// OffsetPosition starts at this zero-based position within the
	// context.
	OffsetPosition *int

	// OffsetURI starts at this item within the context. Ignored when
	// OffsetPosition is set.
	OffsetURI string

	// Position seeks within the starting item.
	Position time.Duration
}

// PlaybackState reports the account's full playback status. A nil
// state with a nil error means nothing is playing on any device.
// Requires [ScopeUserReadPlaybackState].
func (c *Client) PlaybackState(ctx context.Context) (*PlaybackState, error) {
	state := new(PlaybackState)
	ok, err := c.getOptional(ctx, "/me/player", nil, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return state, nil
}

// CurrentlyPlaying reports the item playing right now. A nil result
// with a nil error means nothing is playing. Requires
// [ScopeUserReadCurrentlyPlaying].
func (c *Client) CurrentlyPlaying(ctx context.Context) (*CurrentlyPlaying, error) {
	playing := new(CurrentlyPlaying)
	ok, err := c.getOptional(ctx, "/me/player/currently-playing", nil, playing)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return playing, nil
}

// Devices lists the playback devices connected to the account.
// Requires [ScopeUserReadPlaybackState].
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var payload struct {
		Devices []Device `json:"devices"`
	}
	if err := c.get(ctx, "/me/player/devices", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Devices, nil
}

// TransferPlayback moves playback to another device. play false
// keeps the current play/pause state after the move. Requires
// [ScopeUserModifyPlaybackState], as do all the control calls below.
func (c *Client) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device id is required", ErrInvalidInput)
	}
	body := map[string]any{
		"device_ids": []string{deviceID},
		"play":       play,
	}
	return c.put(ctx, "/me/player", nil, body, nil)
}

// Play starts or resumes playback per opts.
func (c *Client) Play(ctx context.Context, opts PlayOptions) error {
	if opts.ContextURI != "" && len(opts.URIs) > 0 {
		return fmt.Errorf("%w: context uri and track uris are mutually exclusive", ErrInvalidInput)
	}
	q := url.Values{}
	if opts.DeviceID != "" {
		q.Set("device_id", opts.DeviceID)
	}
	fields := map[string]any{}
	if opts.ContextURI != "" {
		fields["context_uri"] = opts.ContextURI
	}
	if len(opts.URIs) > 0 {
		fields["uris"] = opts.URIs
	}
	if opts.OffsetPosition != nil {
		fields["offset"] = map[string]any{"position": *opts.OffsetPosition}
	} else if opts.OffsetURI != "" {
		fields["offset"] = map[string]any{"uri": opts.OffsetURI}
	}
	if opts.Position > 0 {
		fields["position_ms"] = int(opts.Position.Milliseconds())
	}
	var body any
	if len(fields) > 0 {
		body = fields
	}
	return c.put(ctx, "/me/player/play", q, body, nil)
}

// Pause pauses playback on the active device.
func (c *Client) Pause(ctx context.Context) error {
	return c.put(ctx, "/me/player/pause", nil, nil, nil)
}

// Next skips to the next item in the queue.
func (c *Client) Next(ctx context.Context) error {
	return c.post(ctx, "/me/player/next", nil, nil, nil)
}

// Previous skips back to the previous item.
func (c *Client) Previous(ctx context.Context) error {
	return c.post(ctx, "/me/player/previous", nil, nil, nil)
}

// Seek moves playback to the given position in the current item.
// Positions past the end skip to the next item.
func (c *Client) Seek(ctx context.Context, position time.Duration) error {
	if position < 0 {
		return fmt.Errorf("%w: negative position", ErrInvalidInput)
	}
	q := url.Values{"position_ms": {strconv.FormatInt(position.Milliseconds(), 10)}}
	return c.put(ctx, "/me/player/seek", q, nil, nil)
}

// SetRepeat sets the repeat mode, one of the Repeat constants.
func (c *Client) SetRepeat(ctx context.Context, mode string) error {
	switch mode {
	case RepeatOff, RepeatTrack, RepeatContext:
	default:
		return fmt.Errorf("%w: unknown repeat mode %q", ErrInvalidInput, mode)
	}
	return c.put(ctx, "/me/player/repeat", url.Values{"state": {mode}}, nil, nil)
}

// SetVolume sets the active device's volume, 0 to 100 percent.
func (c *Client) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d out of range 0 to 100", ErrInvalidInput, percent)
	}
	q := url.Values{"volume_percent": {strconv.Itoa(percent)}}
	return c.put(ctx, "/me/player/volume", q, nil, nil)
}

// SetShuffle toggles shuffle on the active device.
func (c *Client) SetShuffle(ctx context.Context, on bool) error {
	return c.put(ctx, "/me/player/shuffle", url.Values{"state": {strconv.FormatBool(on)}}, nil, nil)
}

// Queue reports the account's play queue. Requires
// [ScopeUserReadPlaybackState].
func (c *Client) Queue(ctx context.Context) (*Queue, error) {
	queue := new(Queue)
	if err := c.get(ctx, "/me/player/queue", nil, queue); err != nil {
		return nil, err
	}
	return queue, nil
}

// AddToQueue appends a track or episode URI to the play queue.
func (c *Client) AddToQueue(ctx context.Context, uri string) error {
	if uri == "" {
		return fmt.Errorf("%w: uri is required", ErrInvalidInput)
	}
	return c.post(ctx, "/me/player/queue", url.Values{"uri": {uri}}, nil, nil)
}

// RecentlyPlayed lists the account's play history, newest first. after
// and before are millisecond Unix timestamps bounding the listing, at
// most one of them set. Requires [ScopeUserReadRecentlyPlayed].
func (c *Client) RecentlyPlayed(ctx context.Context, limit int, after, before string) (*CursorPage[PlayHistory], error) {
	if after != "" && before != "" {
		return nil, fmt.Errorf("%w: after and before are mutually exclusive", ErrInvalidInput)
	}
	q := url.Values{}
	if after != "" {
		q.Set("after", after)
	}
	if before != "" {
		q.Set("before", before)
	}
	addPaging(q, limit, 0)
	page := new(CursorPage[PlayHistory])
	if err := c.get(ctx, "/me/player/recently-played", q, page); err != nil {
		return nil, err
	}
	return page, nil
}
