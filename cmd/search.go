package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints results grouped by type.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	opts := spotify.SearchOptions{
		Market: cmd.String("market"),
		Limit:  cmd.Int("limit"),
	}
	if types := cmd.String("type"); types != "" {
		for _, t := range strings.Split(types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				opts.Types = append(opts.Types, t)
			}
		}
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Info("searching catalog", "query", query, "types", strings.Join(opts.Types, ","))

	result, err := client.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	if result.Tracks != nil && len(result.Tracks.Items) > 0 {
		r.writePlain("Tracks:\n")
		for i, item := range result.Tracks.Items {
			track := models.TrackFromSpotify(item)
			r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
			if track.Album != "" {
				r.writePlain(" (%s)", track.Album)
			}
			r.writePlain("\n   %s\n", track.URI)
		}
		r.writePlain("\n")
	}

	if result.Artists != nil && len(result.Artists.Items) > 0 {
		r.writePlain("Artists:\n")
		for i, artist := range result.Artists.Items {
			r.writePlain("%d. %s (%d followers)\n", i+1, artist.Name, artist.Followers.Total)
		}
		r.writePlain("\n")
	}

	if result.Albums != nil && len(result.Albums.Items) > 0 {
		r.writePlain("Albums:\n")
		for i, album := range result.Albums.Items {
			artist := ""
			if len(album.Artists) > 0 {
				artist = album.Artists[0].Name
			}
			r.writePlain("%d. %s - %s (%s)\n", i+1, artist, album.Name, album.ReleaseDate)
		}
		r.writePlain("\n")
	}

	if result.Playlists != nil && len(result.Playlists.Items) > 0 {
		r.writePlain("Playlists:\n")
		for i, playlist := range result.Playlists.Items {
			r.writePlain("%d. %s (%d tracks)\n", i+1, playlist.Name, playlist.Tracks.Total)
		}
		r.writePlain("\n")
	}

	if result.Shows != nil && len(result.Shows.Items) > 0 {
		r.writePlain("Shows:\n")
		for i, show := range result.Shows.Items {
			r.writePlain("%d. %s - %s\n", i+1, show.Publisher, show.Name)
		}
		r.writePlain("\n")
	}

	if result.Episodes != nil && len(result.Episodes.Items) > 0 {
		r.writePlain("Episodes:\n")
		for i, episode := range result.Episodes.Items {
			r.writePlain("%d. %s [%s]\n", i+1, episode.Name, shared.FormatDuration(episode.DurationMS))
		}
		r.writePlain("\n")
	}

	return nil
}
