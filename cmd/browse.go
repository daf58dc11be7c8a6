package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// BrowseCategories lists browse categories from the catalog.
func (r *Runner) BrowseCategories(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	page, err := client.Categories(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	if useJSON {
		return r.writeJSON(page.Items, pretty)
	}

	r.writePlain("Found %d categories:\n\n", page.Total)
	for i, category := range page.Items {
		r.writePlain("%d. %s (%s)\n", i+1, category.Name, category.ID)
	}

	return nil
}

// BrowseNewReleases lists newly released albums.
func (r *Runner) BrowseNewReleases(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	page, err := client.NewReleases(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("failed to fetch new releases: %w", err)
	}

	if useJSON {
		return r.writeJSON(page.Items, pretty)
	}

	r.writePlain("Found %d new releases:\n\n", page.Total)
	for i, album := range page.Items {
		artist := ""
		if len(album.Artists) > 0 {
			artist = album.Artists[0].Name
		}
		r.writePlain("%d. %s - %s (%s)\n", i+1, artist, album.Name, album.ReleaseDate)
	}

	return nil
}

// BrowseGenres lists the genre seeds the catalog recognizes.
func (r *Runner) BrowseGenres(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	genres, err := client.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if useJSON {
		return r.writeJSON(genres, pretty)
	}

	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}

	return nil
}
