package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func manyIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%d", i)
	}
	return ids
}

func TestBatchCaps(t *testing.T) {
	var hits atomic.Int32
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{}`)
	})

	cases := []struct {
		name string
		call func() error
	}{
		{"Albums Cap 20", func() error { _, err := c.Albums(context.Background(), manyIDs(21)); return err }},
		{"Artists Cap 50", func() error { _, err := c.Artists(context.Background(), manyIDs(51)); return err }},
		{"Tracks Cap 50", func() error { _, err := c.Tracks(context.Background(), manyIDs(51)); return err }},
		{"Shows Cap 50", func() error { _, err := c.Shows(context.Background(), manyIDs(51)); return err }},
		{"Episodes Cap 50", func() error { _, err := c.Episodes(context.Background(), manyIDs(51)); return err }},
		{"Audio Features Cap 100", func() error { _, err := c.TracksAudioFeatures(context.Background(), manyIDs(101)); return err }},
		{"Playlist Items Cap 100", func() error {
			_, err := c.AddPlaylistItems(context.Background(), "p1", manyIDs(101))
			return err
		}},
		{"Follow Check Cap 5", func() error {
			_, err := c.PlaylistIsFollowed(context.Background(), "p1", manyIDs(6))
			return err
		}},
		{"Empty Batch", func() error { _, err := c.Tracks(context.Background(), nil); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if hits.Load() != 0 {
		t.Errorf("expected oversize batches rejected before sending, server saw %d requests", hits.Load())
	}
}

func TestRequestPaths(t *testing.T) {
	t.Run("Batch IDs Joined Into Query", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Path; got != "/tracks" {
				t.Errorf("expected /tracks, got %s", got)
			}
			if got := r.URL.Query().Get("ids"); got != "t1,t2,t3" {
				t.Errorf("expected joined ids, got %q", got)
			}
			fmt.Fprint(w, `{"tracks":[{"id":"t1"},{"id":"t2"},{"id":"t3"}]}`)
		})

		tracks, err := c.Tracks(context.Background(), []string{"t1", "t2", "t3"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 3 {
			t.Errorf("expected 3 tracks, got %d", len(tracks))
		}
	})

	t.Run("Limit Clamped To Accepted Range", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("limit"); got != "50" {
				t.Errorf("expected limit clamped to 50, got %q", got)
			}
			if got := r.URL.Query().Get("offset"); got != "120" {
				t.Errorf("expected offset 120, got %q", got)
			}
			fmt.Fprint(w, `{"items":[]}`)
		})

		if _, err := c.SavedTracks(context.Background(), 500, 120); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Zero Limit Omitted", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Has("limit") {
				t.Error("expected limit omitted so the service default applies")
			}
			fmt.Fprint(w, `{"items":[]}`)
		})

		if _, err := c.MyPlaylists(context.Background(), 0, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Search Joins Types", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("q"); got != "daft punk" {
				t.Errorf("expected query passed through, got %q", got)
			}
			if got := q.Get("type"); got != "track,artist" {
				t.Errorf("expected requested types, got %q", got)
			}
			if got := q.Get("market"); got != "DE" {
				t.Errorf("expected market, got %q", got)
			}
			fmt.Fprint(w, `{"tracks":{"items":[{"id":"t1"}]}}`)
		})

		result, err := c.Search(context.Background(), "daft punk", SearchOptions{
			Types:  []string{SearchTypeTrack, SearchTypeArtist},
			Market: "DE",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Tracks == nil || len(result.Tracks.Items) != 1 {
			t.Errorf("expected one track page, got %+v", result)
		}
		if result.Albums != nil {
			t.Error("expected unrequested types to stay nil")
		}
	})

	t.Run("Search Rejects Empty Query", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := c.Search(context.Background(), "   ", SearchOptions{})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Followed Artists Unwraps Envelope", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("type"); got != "artist" {
				t.Errorf("expected type=artist, got %q", got)
			}
			if got := q.Get("after"); got != "a5" {
				t.Errorf("expected after cursor, got %q", got)
			}
			fmt.Fprint(w, `{"artists":{"items":[{"id":"a6"}],"cursors":{"after":"a6"}}}`)
		})

		page, err := c.FollowedArtists(context.Background(), "a5", 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].ID != "a6" {
			t.Errorf("expected unwrapped artist page, got %+v", page)
		}
		if page.Cursors.After != "a6" {
			t.Errorf("expected cursor carried, got %q", page.Cursors.After)
		}
	})

	t.Run("Artist Top Tracks Requires Market", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := c.ArtistTopTracks(context.Background(), "a1", "")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Recommendations Validates Seeds And Tunables", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if got := q.Get("seed_genres"); got != "techno,idm" {
				t.Errorf("expected seed genres, got %q", got)
			}
			if got := q.Get("min_energy"); got != "0.5" {
				t.Errorf("expected tunable forwarded, got %q", got)
			}
			fmt.Fprint(w, `{"tracks":[{"id":"t1"}],"seeds":[]}`)
		})

		recs, err := c.Recommendations(context.Background(), Seeds{Genres: []string{"techno", "idm"}},
			map[string]float64{"min_energy": 0.5}, 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(recs.Tracks) != 1 {
			t.Errorf("expected one track, got %d", len(recs.Tracks))
		}

		t.Run("Too Many Seeds", func(t *testing.T) {
			_, err := c.Recommendations(context.Background(), Seeds{Tracks: manyIDs(6)}, nil, 0)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("Unknown Tunable", func(t *testing.T) {
			_, err := c.Recommendations(context.Background(), Seeds{Genres: []string{"techno"}},
				map[string]float64{"min_swagger": 1}, 0)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})
}

func TestPlaylistMutations(t *testing.T) {
	t.Run("Add Returns Snapshot", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if len(body.URIs) != 2 {
				t.Errorf("expected 2 uris, got %v", body.URIs)
			}
			fmt.Fprint(w, `{"snapshot_id":"snap-2"}`)
		})

		snapshot, err := c.AddPlaylistItems(context.Background(), "p1",
			[]string{"spotify:track:t1", "spotify:track:t2"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if snapshot != "snap-2" {
			t.Errorf("expected snapshot id, got %q", snapshot)
		}
	})

	t.Run("Remove Wraps URIs", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			var body struct {
				Tracks []struct {
					URI string `json:"uri"`
				} `json:"tracks"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if len(body.Tracks) != 1 || body.Tracks[0].URI != "spotify:track:t1" {
				t.Errorf("expected wrapped uris, got %+v", body.Tracks)
			}
			fmt.Fprint(w, `{"snapshot_id":"snap-3"}`)
		})

		snapshot, err := c.RemovePlaylistItems(context.Background(), "p1", []string{"spotify:track:t1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if snapshot != "snap-3" {
			t.Errorf("expected snapshot id, got %q", snapshot)
		}
	})

	t.Run("Replace Sends Empty List To Clear", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"uris":[]`) {
				t.Errorf("expected explicit empty uris, got %s", body)
			}
			fmt.Fprint(w, `{"snapshot_id":"snap-4"}`)
		})

		if _, err := c.ReplacePlaylistItems(context.Background(), "p1", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Cover Upload Sends Base64 JPEG", func(t *testing.T) {
		raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01}
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Content-Type"); got != "image/jpeg" {
				t.Errorf("expected image/jpeg, got %q", got)
			}
			body, _ := io.ReadAll(r.Body)
			decoded, err := base64.StdEncoding.DecodeString(string(body))
			if err != nil {
				t.Fatalf("body is not valid base64: %v", err)
			}
			if string(decoded) != string(raw) {
				t.Error("expected the original image bytes after decoding")
			}
			w.WriteHeader(http.StatusAccepted)
		})

		if err := c.UploadPlaylistCover(context.Background(), "p1", raw); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}

func TestPlayer(t *testing.T) {
	t.Run("No Content Means Nothing Playing", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		state, err := c.PlaybackState(context.Background())
		if err != nil {
			t.Fatalf("expected no error on 204, got %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state, got %+v", state)
		}
	})

	t.Run("Decodes Playback State", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"is_playing":true,"progress_ms":4200,
				"device":{"id":"d1","name":"Kitchen","volume_percent":60},
				"item":{"id":"t1","name":"Song"},"repeat_state":"off"}`)
		})

		state, err := c.PlaybackState(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !state.IsPlaying || state.Item == nil || state.Item.Name != "Song" {
			t.Errorf("expected decoded state, got %+v", state)
		}
		if state.Device.Name != "Kitchen" {
			t.Errorf("expected device decoded, got %+v", state.Device)
		}
	})

	t.Run("Play Builds Body And Device Query", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("device_id"); got != "d2" {
				t.Errorf("expected device query, got %q", got)
			}
			var body struct {
				ContextURI string         `json:"context_uri"`
				Offset     map[string]any `json:"offset"`
				PositionMS int            `json:"position_ms"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			if body.ContextURI != "spotify:album:a1" {
				t.Errorf("expected context uri, got %q", body.ContextURI)
			}
			if pos, ok := body.Offset["position"].(float64); !ok || pos != 3 {
				t.Errorf("expected offset position 3, got %v", body.Offset)
			}
			if body.PositionMS != 15000 {
				t.Errorf("expected position 15000ms, got %d", body.PositionMS)
			}
			w.WriteHeader(http.StatusNoContent)
		})

		offset := 3
		err := c.Play(context.Background(), PlayOptions{
			DeviceID:       "d2",
			ContextURI:     "spotify:album:a1",
			OffsetPosition: &offset,
			Position:       15 * time.Second,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Resume Sends No Body", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			if len(body) != 0 {
				t.Errorf("expected empty body, got %s", body)
			}
			w.WriteHeader(http.StatusNoContent)
		})

		if err := c.Play(context.Background(), PlayOptions{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Rejects Conflicting Play Targets", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		err := c.Play(context.Background(), PlayOptions{
			ContextURI: "spotify:album:a1",
			URIs:       []string{"spotify:track:t1"},
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Volume Range Enforced", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		if err := c.SetVolume(context.Background(), 101); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Repeat Mode Validated", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		if err := c.SetRepeat(context.Background(), "sometimes"); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("Recently Played Rejects Both Cursors", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := c.RecentlyPlayed(context.Background(), 10, "123", "456")
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
