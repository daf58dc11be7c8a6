package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/repositories"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// cacheCommand handles opt-in playlist and track caching
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cache playlists and tracks locally",
		Commands: []*cli.Command{
			{
				Name:  "playlist",
				Usage: "Fetch a playlist and cache it with its tracks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID or name to cache",
						Required: true,
					},
				},
				Action: r.CachePlaylist,
			},
			{
				Name:  "list",
				Usage: "List cached playlists",
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
				Action: r.CacheList,
			},
		},
	}
}

// CachePlaylist fetches a playlist and persists it with its tracks.
func (r *Runner) CachePlaylist(ctx context.Context, cmd *cli.Command) error {
	idOrName := cmd.String("id")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	db, err := r.openDB()
	if err != nil {
		return err
	}

	stored, err := repositories.NewTokenStore(db).Latest()
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}

	r.logger.Infof("caching playlist %v", idOrName)

	engine := tasks.NewEngine(client).WithCache(
		stored.AccountID(),
		repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db)),
		repositories.NewPlaylistCacheAdapter(repositories.NewPlaylistRepository(db)),
	)

	export, err := engine.ExportPlaylist(ctx, nil, idOrName)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	r.writePlain("✓ Cached playlist: %s\n", export.Playlist.Name)
	r.writePlain("  Tracks: %d\n", len(export.Tracks))

	return nil
}

// CacheList shows the locally cached playlists.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	db, err := r.openDB()
	if err != nil {
		return err
	}

	cached, err := repositories.NewPlaylistRepository(db).List(nil)
	if err != nil {
		return fmt.Errorf("failed to list cached playlists: %w", err)
	}

	if len(cached) == 0 {
		r.writePlain("No cached playlists.\n")
		return nil
	}

	if useJSON {
		dtos := make([]models.Playlist, 0, len(cached))
		for _, playlist := range cached {
			dtos = append(dtos, playlist.DTO())
		}
		return r.writeJSON(dtos, pretty)
	}

	r.writePlain("Found %d cached playlists:\n\n", len(cached))
	for i, playlist := range cached {
		r.writePlain("%d. %s\n", i+1, playlist.Name())
		r.writePlain("   ID: %s\n", playlist.SpotifyID())
		r.writePlain("   Tracks: %d\n", playlist.TrackCount())
		r.writePlain("   Visibility: %s\n", shared.VisibilityString(playlist.Public()))
		r.writePlain("   Updated: %s\n", playlist.UpdatedAt().Local().Format("2006-01-02 15:04"))
		r.writePlain("\n")
	}

	return nil
}
