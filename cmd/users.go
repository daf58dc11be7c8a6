package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// MeProfile fetches and displays the current account's profile.
func (r *Runner) MeProfile(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	r.logger.Info("fetching profile")

	profile, err := client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	if useJSON {
		return r.writeJSON(profile, pretty)
	}

	name := profile.DisplayName
	if name == "" {
		name = profile.ID
	}

	r.writePlainHeader(name)
	r.writePlain("ID: %s\n", profile.ID)
	if profile.Email != "" {
		r.writePlain("Email: %s\n", profile.Email)
	}
	if profile.Country != "" {
		r.writePlain("Country: %s\n", profile.Country)
	}
	if profile.Product != "" {
		r.writePlain("Product: %s\n", profile.Product)
	}
	r.writePlain("Followers: %d\n", profile.Followers.Total)
	if url := profile.ExternalURLs["spotify"]; url != "" {
		r.writePlain("Profile: %s\n", url)
	}

	return nil
}
