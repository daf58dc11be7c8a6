package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
)

// DiffResult reports how two playlists' track listings differ.
type DiffResult struct {
	Source        *models.PlaylistExport `json:"source"`
	Dest          *models.PlaylistExport `json:"dest"`
	MatchedCount  int                    `json:"matched_count"`
	MissingInDest []models.Track         `json:"missing_in_dest,omitempty"`
	ExtraInDest   []models.Track         `json:"extra_in_dest,omitempty"`
}

// Diff compares two playlists. Tracks are matched by ISRC when both
// sides carry one, otherwise by normalized title and artist. Both
// arguments accept a playlist ID or name.
func (e *Engine) Diff(ctx context.Context, progress chan<- ProgressUpdate, sourceID, destID string) (*DiffResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: no API client configured", shared.ErrNotAuthenticated)
	}

	e.sendProgress(progress, diffFetchUpdate(1, 2, sourceID))
	src, err := e.resolvePlaylist(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("resolving source playlist: %w", err)
	}
	source, err := e.drainTracks(ctx, nil, src)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, diffFetchUpdate(2, 2, destID))
	dst, err := e.resolvePlaylist(ctx, destID)
	if err != nil {
		return nil, fmt.Errorf("resolving destination playlist: %w", err)
	}
	dest, err := e.drainTracks(ctx, nil, dst)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, buildIndexUpdate(1, 2))
	destByKey, destByISRC := trackIndex(dest.Tracks)
	srcByKey, srcByISRC := trackIndex(source.Tracks)

	e.sendProgress(progress, compareTracksUpdate(2, 2))
	missing, matched := subtractTracks(source.Tracks, destByKey, destByISRC)
	extra, _ := subtractTracks(dest.Tracks, srcByKey, srcByISRC)

	return &DiffResult{
		Source:        source,
		Dest:          dest,
		MatchedCount:  matched,
		MissingInDest: missing,
		ExtraInDest:   extra,
	}, nil
}

// trackIndex builds lookup sets keyed by normalized title/artist and
// by ISRC.
func trackIndex(tracks []models.Track) (byKey, byISRC map[string]struct{}) {
	byKey = make(map[string]struct{}, len(tracks))
	byISRC = make(map[string]struct{})
	for _, track := range tracks {
		byKey[shared.NormalizeTrackKey(track.Title, track.Artist)] = struct{}{}
		if track.ISRC != "" {
			byISRC[track.ISRC] = struct{}{}
		}
	}
	return byKey, byISRC
}

// subtractTracks splits tracks into those present in the indexed side
// and those absent from it.
func subtractTracks(tracks []models.Track, byKey, byISRC map[string]struct{}) (absent []models.Track, matched int) {
	for _, track := range tracks {
		if track.ISRC != "" {
			if _, ok := byISRC[track.ISRC]; ok {
				matched++
				continue
			}
		}
		if _, ok := byKey[shared.NormalizeTrackKey(track.Title, track.Artist)]; ok {
			matched++
			continue
		}
		absent = append(absent, track)
	}
	return absent, matched
}
