package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/repositories"
	"github.com/desertthunder/spx/internal/server"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/spotify"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check the stored token and verify it against the API",
				Action: r.AuthStatus,
			},
			{
				Name:   "refresh",
				Usage:  "Force a token refresh and persist the result",
				Action: r.AuthRefresh,
			},
		},
	}
}

// AuthLogin performs the OAuth2 authorization flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user consent, and exchanges the auth code for tokens.
// The token is stored under the account's profile ID so later commands can find it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	sp := r.config.Credentials.Spotify
	if sp.ClientID == "" || sp.ClientSecret == "" {
		return fmt.Errorf("%w: client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	auth := r.authenticator()

	token, err := r.doOAuth(auth, "authorization")
	if err != nil {
		return err
	}

	accountID, err := r.persistLogin(ctx, auth, token)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token stored for account %s\n\n", accountID)
	r.writePlain("You can now use: spx me\n")

	return nil
}

// AuthStatus reports on the stored token and verifies it with a live profile call.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	stored, err := store.Latest()
	if err != nil {
		if errors.Is(err, shared.ErrTokenNotFound) {
			r.writePlain("✗ Not authenticated\n")
			r.writePlain("Run 'spx auth login' to connect an account.\n")
			return nil
		}
		return fmt.Errorf("failed to load stored token: %w", err)
	}

	r.writePlain("Account: %s\n", stored.AccountID())
	r.writePlain("Token type: %s\n", stored.TokenType())

	expiry := stored.Expiry()
	switch {
	case expiry.IsZero():
		r.writePlain("Expires: never\n")
	case time.Now().After(expiry):
		r.writePlain("Expires: %s (expired %s ago)\n", expiry.Local().Format(time.RFC1123), time.Since(expiry).Round(time.Second))
	default:
		r.writePlain("Expires: %s (%s from now)\n", expiry.Local().Format(time.RFC1123), time.Until(expiry).Round(time.Second))
	}

	if stored.RefreshToken() != "" {
		r.writePlain("Refresh token: present\n")
	} else {
		r.writePlain("Refresh token: missing\n")
	}

	client, err := r.apiClient()
	if err != nil {
		return err
	}

	profile, err := client.Me(ctx)
	if err != nil {
		r.writePlain("✗ API check failed: %v\n", err)
		return nil
	}

	name := profile.DisplayName
	if name == "" {
		name = profile.ID
	}
	r.writePlain("✓ API reachable as %s\n", name)

	return nil
}

// AuthRefresh runs the refresh grant regardless of the access token's
// remaining lifetime and stores the renewed token.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	stored, err := store.Latest()
	if err != nil {
		if errors.Is(err, shared.ErrTokenNotFound) {
			return fmt.Errorf("%w: run 'spx auth login' first", shared.ErrNotAuthenticated)
		}
		return fmt.Errorf("failed to load stored token: %w", err)
	}

	if stored.RefreshToken() == "" {
		return fmt.Errorf("%w: login again to get a new grant", shared.ErrNoRefreshToken)
	}

	r.logger.Info("refreshing token", "account", stored.AccountID())

	// Handing the credentials only the refresh token forces the grant to run.
	creds := r.authenticator().Credentials(&oauth2.Token{RefreshToken: stored.RefreshToken()})
	token, err := creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	if err := r.saveToken(stored.AccountID(), token); err != nil {
		return err
	}

	r.writePlain("✓ Token refreshed\n")
	if !token.Expiry.IsZero() {
		r.writePlain("  Valid until %s\n", token.Expiry.Local().Format(time.RFC1123))
	}

	return nil
}

// persistLogin resolves the token's profile, upserts the account row, and stores the token under it.
// The token row references the account row, so the account must exist before the save.
func (r *Runner) persistLogin(ctx context.Context, auth *spotify.Authenticator, token *oauth2.Token) (string, error) {
	client := spotify.New(auth.Credentials(token), spotify.Opts{Logger: r.logger})

	profile, err := client.Me(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}

	db, err := r.openDB()
	if err != nil {
		return "", err
	}

	accounts := repositories.NewAccountRepository(db)
	account, err := accounts.GetBySpotifyID(profile.ID)
	switch {
	case err == nil:
		account.SetDisplayName(profile.DisplayName)
		account.SetEmail(profile.Email)
		account.SetCountry(profile.Country)
		account.SetProduct(profile.Product)
		if err := accounts.Update(account); err != nil {
			r.logger.Warn("failed to update account record", "error", err)
		}
	case errors.Is(err, shared.ErrAccountNotFound):
		account = models.NewAccount(0, profile.ID, profile.DisplayName)
		account.SetEmail(profile.Email)
		account.SetCountry(profile.Country)
		account.SetProduct(profile.Product)
		if err := accounts.Create(account); err != nil {
			return "", fmt.Errorf("failed to create account record: %w", err)
		}
	default:
		return "", fmt.Errorf("failed to look up account record: %w", err)
	}

	if err := r.saveToken(account.ID(), token); err != nil {
		return "", err
	}

	return profile.ID, nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(auth *spotify.Authenticator, prefix string) (*oauth2.Token, error) {
	state := shared.GenerateState()
	authURL := auth.AuthCodeURL(state)

	callback := server.NewCallback(auth, state)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(callback)

	serverAddr := r.config.Server.Addr()
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-callback.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
