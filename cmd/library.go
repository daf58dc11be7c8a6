package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/internal/tasks"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
)

// libraryCommand handles saved items, top items, and listening history
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse the account's library",
		Commands: []*cli.Command{
			{
				Name:  "tracks",
				Usage: "List saved tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Fetch every page",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryTracks,
			},
			{
				Name:  "albums",
				Usage: "List saved albums",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of albums to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Fetch every page",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryAlbums,
			},
			{
				Name:  "top",
				Usage: "List the account's top items",
				Commands: []*cli.Command{
					{
						Name:  "artists",
						Usage: "Top artists over a listening period",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "range",
								Usage: "Listening period (short, medium, long)",
								Value: "medium",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum number of artists to return",
								Value: 20,
							},
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Output raw JSON",
							},
							&cli.BoolFlag{
								Name:  "pretty",
								Usage: "Pretty-print output",
							},
						},
						Action: r.LibraryTopArtists,
					},
					{
						Name:  "tracks",
						Usage: "Top tracks over a listening period",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "range",
								Usage: "Listening period (short, medium, long)",
								Value: "medium",
							},
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum number of tracks to return",
								Value: 20,
							},
							&cli.BoolFlag{
								Name:  "json",
								Usage: "Output raw JSON",
							},
							&cli.BoolFlag{
								Name:  "pretty",
								Usage: "Pretty-print output",
							},
						},
						Action: r.LibraryTopTracks,
					},
				},
			},
			{
				Name:  "recent",
				Usage: "List recently played tracks",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryRecent,
			},
			{
				Name:  "dump",
				Usage: "Dump every library section to JSON",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to library_dump.json",
						Value: false,
					},
				},
				Action: r.LibraryDump,
			},
		},
	}
}

// LibraryTracks lists the account's saved tracks.
func (r *Runner) LibraryTracks(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	all := cmd.Bool("all")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	first, err := client.SavedTracks(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch saved tracks: %w", err)
	}

	items := first.Items
	if all {
		if items, err = spotify.Collect(spotify.Pages(ctx, client, first)); err != nil {
			return fmt.Errorf("failed to fetch saved tracks: %w", err)
		}
	}

	tracks := make([]models.Track, 0, len(items))
	for _, saved := range items {
		track := models.TrackFromSpotify(saved.Track)
		track.AddedAt = saved.AddedAt
		tracks = append(tracks, track)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlain("Saved tracks: %d of %d\n\n", len(tracks), first.Total)
	for i, track := range tracks {
		r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Duration > 0 {
			r.writePlain(" [%s]", shared.FormatDuration(track.Duration))
		}
		r.writePlain("\n")
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
		if !track.AddedAt.IsZero() {
			r.writePlain("   Added: %s\n", track.AddedAt.Format("2006-01-02"))
		}
	}

	return nil
}

// LibraryAlbums lists the account's saved albums.
func (r *Runner) LibraryAlbums(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	all := cmd.Bool("all")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	first, err := client.SavedAlbums(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch saved albums: %w", err)
	}

	items := first.Items
	if all {
		if items, err = spotify.Collect(spotify.Pages(ctx, client, first)); err != nil {
			return fmt.Errorf("failed to fetch saved albums: %w", err)
		}
	}

	albums := make([]models.Album, 0, len(items))
	for _, saved := range items {
		album := models.AlbumFromSpotify(saved.Album)
		album.AddedAt = saved.AddedAt
		albums = append(albums, album)
	}

	if useJSON {
		return r.writeJSON(albums, pretty)
	}

	r.writePlain("Saved albums: %d of %d\n\n", len(albums), first.Total)
	for i, album := range albums {
		r.writePlain("%d. %s - %s\n", i+1, album.Artist, album.Name)
		r.writePlain("   Released: %s · Tracks: %d\n", album.ReleaseDate, album.TotalTracks)
	}

	return nil
}

// LibraryTopArtists lists the account's most listened artists.
func (r *Runner) LibraryTopArtists(ctx context.Context, cmd *cli.Command) error {
	timeRange, err := normalizeTimeRange(cmd.String("range"))
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	page, err := client.TopArtists(ctx, timeRange, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch top artists: %w", err)
	}

	if useJSON {
		return r.writeJSON(page.Items, pretty)
	}

	r.writePlain("Top artists (%s):\n\n", timeRange)
	for i, artist := range page.Items {
		r.writePlain("%d. %s\n", i+1, artist.Name)
		if len(artist.Genres) > 0 {
			r.writePlain("   Genres: %s\n", strings.Join(artist.Genres, ", "))
		}
	}

	return nil
}

// LibraryTopTracks lists the account's most listened tracks.
func (r *Runner) LibraryTopTracks(ctx context.Context, cmd *cli.Command) error {
	timeRange, err := normalizeTimeRange(cmd.String("range"))
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	page, err := client.TopTracks(ctx, timeRange, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch top tracks: %w", err)
	}

	if useJSON {
		return r.writeJSON(page.Items, pretty)
	}

	r.writePlain("Top tracks (%s):\n\n", timeRange)
	for i, item := range page.Items {
		track := models.TrackFromSpotify(item)
		r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Album != "" {
			r.writePlain(" (%s)", track.Album)
		}
		r.writePlain("\n")
	}

	return nil
}

// LibraryRecent lists the listening history, newest first.
func (r *Runner) LibraryRecent(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	page, err := client.RecentlyPlayed(ctx, limit, "", "")
	if err != nil {
		return fmt.Errorf("failed to fetch recently played: %w", err)
	}

	if useJSON {
		return r.writeJSON(page.Items, pretty)
	}

	for i, entry := range page.Items {
		track := models.TrackFromSpotify(entry.Track)
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		r.writePlain("   Played: %s\n", entry.PlayedAt.Local().Format(time.RFC822))
	}

	return nil
}

// LibraryDump fetches every library section and prints the snapshot.
func (r *Runner) LibraryDump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Info("dumping library")
	r.writePlain("Fetching library...\n\n")

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	dump, err := tasks.NewEngine(client).DumpLibrary(ctx, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	r.writePlain("\n✓ Dump complete\n")
	for _, failure := range dump.Failures {
		r.writePlain("⚠ %s: %s\n", failure.Section, failure.Reason)
	}
	r.writePlain("\n")

	if save {
		saveFile := "library_dump.json"
		data, err := shared.MarshalJSON(dump)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n\n", saveFile)
		}
	}

	return r.writeJSON(dump, pretty)
}

// normalizeTimeRange maps the --range flag onto the API's listening
// period names, accepting both the short and full spellings.
func normalizeTimeRange(value string) (string, error) {
	switch value {
	case "short", spotify.TimeRangeShort:
		return spotify.TimeRangeShort, nil
	case "", "medium", spotify.TimeRangeMedium:
		return spotify.TimeRangeMedium, nil
	case "long", spotify.TimeRangeLong:
		return spotify.TimeRangeLong, nil
	default:
		return "", fmt.Errorf("%w: range must be short, medium, or long", shared.ErrInvalidFlag)
	}
}
