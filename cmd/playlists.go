package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spx/internal/formatter"
	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/internal/tasks"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
)

// playlistsCommand handles playlist listing, export, and editing
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the account's playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
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
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save API response locally",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist with its full track listing",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlist",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "export",
				Usage: "Export playlists to files",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "playlist",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json, csv, markdown, text)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file or directory path",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every playlist on the account",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Output directory for --all",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers for --all",
						Value: 5,
					},
					&cli.IntFlag{
						Name:  "rate",
						Usage: "Playlist fetches per second for --all",
						Value: 5,
					},
				},
				Action: r.PlaylistsExport,
			},
			{
				Name:  "create",
				Usage: "Create a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Playlist description",
					},
					&cli.BoolFlag{
						Name:  "private",
						Usage: "Make playlist private",
					},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:  "add",
				Usage: "Add tracks to an existing playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID to add tracks to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Comma-separated track IDs or URIs",
						Required: true,
					},
				},
				Action: r.PlaylistsAdd,
			},
			{
				Name:  "diff",
				Usage: "Compare two playlists' track listings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Source playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dest",
						Usage:    "Destination playlist ID",
						Required: true,
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
				Action: r.PlaylistsDiff,
			},
		},
	}
}

// PlaylistsList lists the account's playlists with optional limit.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	all := cmd.Bool("all")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Infof("listing playlists with limit %v", limit)

	first, err := client.MyPlaylists(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	items := first.Items
	if all {
		if items, err = spotify.Collect(spotify.Pages(ctx, client, first)); err != nil {
			return fmt.Errorf("failed to fetch playlists: %w", err)
		}
	}

	playlists := make([]models.Playlist, 0, len(items))
	for _, item := range items {
		playlists = append(playlists, models.PlaylistFromSpotify(item))
	}

	if save {
		saveFile := "spotify_playlists.json"
		data, err := shared.MarshalJSON(playlists)
		if err != nil {
			return fmt.Errorf("failed to marshal playlists: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save playlists", "error", err)
		} else {
			r.logger.Info("playlists saved", "file", saveFile)
		}
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		r.writePlain("   Visibility: %s\n", shared.VisibilityString(p.Public))
		r.writePlain("\n")
	}

	return nil
}

// PlaylistsShow prints one playlist with its complete track listing.
// The argument is tried as a playlist ID first, then as a name.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	idOrName := cmd.StringArg("playlist")
	if idOrName == "" {
		return fmt.Errorf("%w: playlist id or name", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	export, err := tasks.NewEngine(client).ExportPlaylist(ctx, nil, idOrName)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if useJSON {
		return r.writeJSON(export, pretty)
	}

	r.writePlain("Playlist: %s\n", export.Playlist.Name)
	if export.Playlist.Description != "" {
		r.writePlain("Description: %s\n", export.Playlist.Description)
	}
	if export.Playlist.Owner != "" {
		r.writePlain("Owner: %s\n", export.Playlist.Owner)
	}
	r.writePlain("Visibility: %s\n", shared.VisibilityString(export.Playlist.Public))
	r.writePlain("Tracks: %d\n\n", len(export.Tracks))

	for i, track := range export.Tracks {
		r.writePlain("%d. %s - %s", i+1, track.Artist, track.Title)
		if track.Duration > 0 {
			r.writePlain(" [%s]", shared.FormatDuration(track.Duration))
		}
		r.writePlain("\n")
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
		if track.ISRC != "" {
			r.writePlain("   ISRC: %s\n", track.ISRC)
		}
	}

	return nil
}

// PlaylistsExport exports one playlist to a file, or every playlist
// with --all. The format falls back to the configured default.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}

	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd, format)
	}

	idOrName := cmd.StringArg("playlist")
	if idOrName == "" {
		return fmt.Errorf("%w: playlist id or name (or --all)", shared.ErrMissingArgument)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Infof("exporting playlist %v as %v", idOrName, format)

	export, err := tasks.NewEngine(client).ExportPlaylist(ctx, nil, idOrName)
	if err != nil {
		return fmt.Errorf("failed to export playlist: %w", err)
	}

	files, err := r.writePlaylistExport(ctx, client, export, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Playlist exported: %s\n", export.Playlist.Name)
	r.writePlain("  Tracks: %d\n", len(export.Tracks))
	for _, file := range files {
		r.writePlain("  Wrote: %s\n", file)
	}

	return nil
}

// writePlaylistExport writes export in the requested format and returns
// the files created. Default paths land in the configured export
// directory, keyed by playlist ID.
func (r *Runner) writePlaylistExport(ctx context.Context, client *spotify.Client, export *models.PlaylistExport, format, output string) ([]string, error) {
	if output == "" {
		if err := os.MkdirAll(r.config.Export.Directory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		base := fmt.Sprintf("spotify_%s", export.Playlist.ID)
		switch format {
		case "json":
			base += ".json"
		case "text", "txt":
			base += "_tracks.txt"
		}
		output = filepath.Join(r.config.Export.Directory, base)
	}

	switch format {
	case "json":
		written, err := formatter.WriteJSONExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("failed to write JSON export: %w", err)
		}
		return []string{written}, nil
	case "csv":
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("failed to write CSV export: %w", err)
		}
		return []string{result.TracksFile, result.MetadataFile}, nil
	case "markdown", "md":
		result, err := formatter.WriteMarkdownExport(ctx, export, output, r.coverImageURL(ctx, client, export.Playlist.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to write markdown export: %w", err)
		}
		return result.Files, nil
	case "text", "txt":
		written, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return nil, fmt.Errorf("failed to write text export: %w", err)
		}
		return []string{written}, nil
	default:
		return nil, fmt.Errorf("%w: format must be json, csv, markdown, or text", shared.ErrInvalidFlag)
	}
}

// coverImageURL fetches the playlist's primary cover image URL, empty
// when the playlist has none.
func (r *Runner) coverImageURL(ctx context.Context, client *spotify.Client, id string) string {
	images, err := client.PlaylistCoverImage(ctx, id)
	if err != nil || len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// exportAll runs the bulk exporter over every playlist on the account.
func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command, format string) error {
	client, err := r.apiClient()
	if err != nil {
		return err
	}

	first, err := client.MyPlaylists(ctx, 50, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	var ids []string
	for playlist, pageErr := range spotify.Pages(ctx, client, first) {
		if pageErr != nil {
			return fmt.Errorf("failed to fetch playlists: %w", pageErr)
		}
		ids = append(ids, playlist.ID)
	}

	if len(ids) == 0 {
		r.writePlain("No playlists to export.\n")
		return nil
	}

	outputDir := cmd.String("dir")
	if outputDir == "" {
		outputDir = r.config.Export.Directory
	}

	r.writePlain("Exporting %d playlists...\n\n", len(ids))

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  outputDir,
		NumWorkers: cmd.Int("workers"),
		RateLimit:  float64(cmd.Int("rate")),
		GetCoverImage: func(ctx context.Context, id string) (string, error) {
			return r.coverImageURL(ctx, client, id), nil
		},
	}

	result, err := tasks.NewEngine(client).BulkExport(ctx, progress, ids, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	r.writePlain("\n✓ Export complete\n")
	r.writePlain("  Exported: %d of %d\n", result.SuccessfulExports, result.TotalPlaylists)
	if result.FailedExports > 0 {
		r.writePlain("  Failed: %d\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("    ✗ %s: %v\n", res.PlaylistName, res.Error)
			}
		}
	}
	r.writePlain("  Output: %s\n", result.OutputDirectory)
	r.writePlain("  Manifest: %s\n", result.ManifestPath)

	return nil
}

// PlaylistsCreate creates a playlist on the account.
func (r *Runner) PlaylistsCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name", shared.ErrMissingArgument)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	profile, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	public := !cmd.Bool("private")
	details := spotify.PlaylistDetails{
		Name:        name,
		Description: cmd.String("description"),
		Public:      &public,
	}

	r.logger.Infof("creating playlist %q for %v", name, profile.ID)

	playlist, err := client.CreatePlaylist(ctx, profile.ID, details)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Playlist created: %s\n", playlist.Name)
	r.writePlain("  ID: %s\n", playlist.ID)
	r.writePlain("  Visibility: %s\n", shared.VisibilityString(playlist.Public))
	if url := playlist.ExternalURLs["spotify"]; url != "" {
		r.writePlain("  URL: %s\n", url)
	}

	return nil
}

// PlaylistsAdd appends tracks to a playlist.
func (r *Runner) PlaylistsAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	uris := splitTrackURIs(cmd.String("track"))
	if len(uris) == 0 {
		return fmt.Errorf("%w: at least one track", shared.ErrMissingArgument)
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Infof("adding %d tracks to playlist %v", len(uris), playlistID)

	snapshot, err := client.AddPlaylistItems(ctx, playlistID, uris)
	if err != nil {
		return fmt.Errorf("failed to add tracks: %w", err)
	}

	r.writePlain("✓ Added %d tracks\n", len(uris))
	r.writePlain("  Snapshot: %s\n", snapshot)

	return nil
}

// PlaylistsDiff compares two playlists and reports missing and extra
// tracks relative to the source.
func (r *Runner) PlaylistsDiff(ctx context.Context, cmd *cli.Command) error {
	sourceID := cmd.String("source")
	destID := cmd.String("dest")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	result, err := tasks.NewEngine(client).Diff(ctx, nil, sourceID, destID)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("%s vs %s", result.Source.Playlist.Name, result.Dest.Playlist.Name))
	r.writePlain("Matched: %d\n", result.MatchedCount)
	r.writePlain("Missing in destination: %d\n", len(result.MissingInDest))
	r.writePlain("Extra in destination: %d\n\n", len(result.ExtraInDest))

	if len(result.MissingInDest) > 0 {
		r.writePlain("Missing:\n")
		for i, track := range result.MissingInDest {
			r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		}
		r.writePlain("\n")
	}

	if len(result.ExtraInDest) > 0 {
		r.writePlain("Extra:\n")
		for i, track := range result.ExtraInDest {
			r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
		}
	}

	return nil
}

// splitTrackURIs parses a comma-separated track list, converting bare
// IDs into track URIs.
func splitTrackURIs(arg string) []string {
	var uris []string
	for _, raw := range strings.Split(arg, ",") {
		uri := strings.TrimSpace(raw)
		if uri == "" {
			continue
		}
		if !strings.Contains(uri, ":") {
			uri = "spotify:track:" + uri
		}
		uris = append(uris, uri)
	}
	return uris
}
