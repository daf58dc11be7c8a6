package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Track fetches the full catalog record for one track.
func (c *Client) Track(ctx context.Context, id string) (*Track, error) {
	track := new(Track)
	if err := c.get(ctx, fmt.Sprintf("/tracks/%s", id), nil, track); err != nil {
		return nil, err
	}
	return track, nil
}

// Tracks fetches up to 50 tracks in one request. Results keep the
// order of ids.
func (c *Client) Tracks(ctx context.Context, ids []string) ([]Track, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, "/tracks", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.Tracks, nil
}

// SavedTracks lists the tracks in the account's library, most recently
// saved first. Requires [ScopeUserLibraryRead].
func (c *Client) SavedTracks(ctx context.Context, limit, offset int) (*Page[SavedTrack], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	page := new(Page[SavedTrack])
	if err := c.get(ctx, "/me/tracks", q, page); err != nil {
		return nil, err
	}
	return page, nil
}

// SaveTracks adds up to 50 tracks to the account's library. Requires
// [ScopeUserLibraryModify].
func (c *Client) SaveTracks(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.put(ctx, "/me/tracks", url.Values{"ids": {joined}}, nil, nil)
}

// RemoveSavedTracks removes up to 50 tracks from the account's
// library. Requires [ScopeUserLibraryModify].
func (c *Client) RemoveSavedTracks(ctx context.Context, ids []string) error {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return err
	}
	return c.delete(ctx, "/me/tracks", url.Values{"ids": {joined}}, nil, nil)
}

// HasSavedTracks reports, per id and in order, whether the track is in
// the account's library. Requires [ScopeUserLibraryRead].
func (c *Client) HasSavedTracks(ctx context.Context, ids []string) ([]bool, error) {
	joined, err := joinIDs(ids, 50)
	if err != nil {
		return nil, err
	}
	var saved []bool
	if err := c.get(ctx, "/me/tracks/contains", url.Values{"ids": {joined}}, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// TrackAudioFeatures fetches the audio attributes computed for one
// track.
func (c *Client) TrackAudioFeatures(ctx context.Context, id string) (*AudioFeatures, error) {
	features := new(AudioFeatures)
	if err := c.get(ctx, fmt.Sprintf("/audio-features/%s", id), nil, features); err != nil {
		return nil, err
	}
	return features, nil
}

// TracksAudioFeatures fetches audio attributes for up to 100 tracks.
// Entries are nil for ids the catalog has no analysis for.
func (c *Client) TracksAudioFeatures(ctx context.Context, ids []string) ([]*AudioFeatures, error) {
	joined, err := joinIDs(ids, 100)
	if err != nil {
		return nil, err
	}
	var payload struct {
		AudioFeatures []*AudioFeatures `json:"audio_features"`
	}
	if err := c.get(ctx, "/audio-features", url.Values{"ids": {joined}}, &payload); err != nil {
		return nil, err
	}
	return payload.AudioFeatures, nil
}

// TrackAudioAnalysis fetches the low-level temporal analysis for one
// track.
func (c *Client) TrackAudioAnalysis(ctx context.Context, id string) (*AudioAnalysis, error) {
	analysis := new(AudioAnalysis)
	if err := c.get(ctx, fmt.Sprintf("/audio-analysis/%s", id), nil, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// Seeds pick the starting points for a recommendation request. The
// endpoint accepts one to five seeds across all three kinds combined.
type Seeds struct {
	Artists []string
	Genres  []string
	Tracks  []string
}

func (s Seeds) count() int {
	return len(s.Artists) + len(s.Genres) + len(s.Tracks)
}

// tunableAttributes are the audio attributes the recommendation
// endpoint accepts min_, max_, and target_ bounds for.
var tunableAttributes = map[string]bool{
	"acousticness":     true,
	"danceability":     true,
	"duration_ms":      true,
	"energy":           true,
	"instrumentalness": true,
	"key":              true,
	"liveness":         true,
	"loudness":         true,
	"mode":             true,
	"popularity":       true,
	"speechiness":      true,
	"tempo":            true,
	"time_signature":   true,
	"valence":          true,
}

func validTunable(name string) bool {
	for _, prefix := range []string{"min_", "max_", "target_"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return tunableAttributes[rest]
		}
	}
	return false
}

// Recommendations generates a track listing from the given seeds.
// tunables bound audio attributes with min_, max_, and target_ keys,
// e.g. {"min_energy": 0.4, "target_tempo": 120}; unknown keys are
// rejected rather than silently ignored.
func (c *Client) Recommendations(ctx context.Context, seeds Seeds, tunables map[string]float64, limit int) (*Recommendations, error) {
	if n := seeds.count(); n < 1 || n > 5 {
		return nil, fmt.Errorf("%w: %d seeds given, endpoint accepts 1 to 5", ErrInvalidInput, n)
	}
	q := url.Values{}
	if len(seeds.Artists) > 0 {
		q.Set("seed_artists", strings.Join(seeds.Artists, ","))
	}
	if len(seeds.Genres) > 0 {
		q.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}
	if len(seeds.Tracks) > 0 {
		q.Set("seed_tracks", strings.Join(seeds.Tracks, ","))
	}
	for name, value := range tunables {
		if !validTunable(name) {
			return nil, fmt.Errorf("%w: unknown tunable %q", ErrInvalidInput, name)
		}
		q.Set(name, strconv.FormatFloat(value, 'f', -1, 64))
	}
	addPaging(q, limit, 0)
	recs := new(Recommendations)
	if err := c.get(ctx, "/recommendations", q, recs); err != nil {
		return nil, err
	}
	return recs, nil
}
