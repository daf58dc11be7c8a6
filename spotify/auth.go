package spotify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// AuthURL is the account service consent page.
	AuthURL = "https://accounts.spotify.com/authorize"

	// TokenURL is the account service token endpoint.
	TokenURL = "https://accounts.spotify.com/api/token"
)

// expiryLeeway is how long before its stated expiry a token counts as
// stale, leaving headroom for request flight time.
const expiryLeeway = 30 * time.Second

// RenewFunc acquires a replacement token. prev is the token being
// replaced, nil on first acquisition. Implementations must honor ctx.
type RenewFunc func(ctx context.Context, prev *oauth2.Token) (*oauth2.Token, error)

// Credentials manages the bearer token for one application or account.
// It caches the current token and renews it when stale. Renewal is
// serialized: the caller that finds the token stale renews it while
// holding the lock, and callers arriving mid-renewal block, then reuse
// the fresh token instead of issuing their own request. Tokens are
// replaced wholesale, never mutated in place.
type Credentials struct {
	mu        sync.Mutex
	token     *oauth2.Token
	renew     RenewFunc
	onRefresh func(*oauth2.Token)
}

// NewCredentials builds a manager from a starting token and a renewal
// function. Either may be omitted: a nil renew pins the manager to tok
// for its lifetime, a nil tok defers acquisition to the first call.
func NewCredentials(tok *oauth2.Token, renew RenewFunc) *Credentials {
	return &Credentials{token: tok, renew: renew}
}

// NewClientCredentials authenticates as the application itself using
// the client-credentials grant. Tokens from this grant carry no
// refresh token, so renewal re-runs the grant.
func NewClientCredentials(id, secret string) *Credentials {
	conf := &clientcredentials.Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenURL:     TokenURL,
	}
	return &Credentials{
		renew: func(ctx context.Context, _ *oauth2.Token) (*oauth2.Token, error) {
			return conf.Token(ctx)
		},
	}
}

// NewStaticCredentials pins the manager to a fixed token with no
// renewal path. Suited to short scripts holding a token from
// elsewhere.
func NewStaticCredentials(tok *oauth2.Token) *Credentials {
	return &Credentials{token: tok}
}

// Token returns a token valid for at least the leeway window, renewing
// first when needed. At most one renewal is in flight at a time.
func (c *Credentials) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tokenFresh(c.token) {
		return c.token, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.renew == nil {
		return nil, fmt.Errorf("%w: token expired with no renewal grant", ErrAuthFailed)
	}
	tok, err := c.renew(ctx, c.token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if tok.RefreshToken == "" && c.token != nil && c.token.RefreshToken != "" {
		// The refresh grant often omits the refresh token from its
		// response; carry the old one forward so renewal keeps working.
		next := *tok
		next.RefreshToken = c.token.RefreshToken
		tok = &next
	}
	c.token = tok
	if c.onRefresh != nil {
		c.onRefresh(tok)
	}
	return tok, nil
}

// Current returns the last acquired token without triggering renewal.
// It may be stale, or nil before the first acquisition.
func (c *Credentials) Current() *oauth2.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// OnRefresh registers fn to run with every token the manager acquires.
// Persisting tokens across runs is the intended use. fn is called with
// the manager locked; it must not call back into the manager.
func (c *Credentials) OnRefresh(fn func(*oauth2.Token)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRefresh = fn
}

func tokenFresh(t *oauth2.Token) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.Expiry.IsZero() {
		return true
	}
	return t.Expiry.After(time.Now().Add(expiryLeeway))
}

// Authenticator drives the authorization-code flow: it builds consent
// URLs, exchanges callback codes for tokens, and wraps the result in a
// [Credentials] that renews through the refresh grant.
type Authenticator struct {
	conf *oauth2.Config
}

// NewAuthenticator configures the flow for one registered application.
// redirectURL must exactly match a redirect registered for the
// application. With no scopes the standard application set is
// requested.
func NewAuthenticator(id, secret, redirectURL string, scopes ...string) *Authenticator {
	if len(scopes) == 0 {
		scopes = ScopesAll()
	}
	return &Authenticator{
		conf: &oauth2.Config{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  AuthURL,
				TokenURL: TokenURL,
			},
		},
	}
}

// WithEndpoint repoints the consent and token URLs, returning a for
// chaining. Tests and token-service proxies use this.
func (a *Authenticator) WithEndpoint(authURL, tokenURL string) *Authenticator {
	a.conf.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	return a
}

// AuthCodeURL builds the consent page URL carrying state. Offline
// access is always requested so the exchanged token can be refreshed.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps the authorization code delivered to the redirect URL
// for an access and refresh token pair.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	return tok, nil
}

// Credentials wraps a token from [Authenticator.Exchange] in a manager
// that renews through the refresh grant.
func (a *Authenticator) Credentials(tok *oauth2.Token) *Credentials {
	return &Credentials{
		token: tok,
		renew: func(ctx context.Context, prev *oauth2.Token) (*oauth2.Token, error) {
			if prev == nil || prev.RefreshToken == "" {
				return nil, fmt.Errorf("no refresh token held")
			}
			// Hand the source only the refresh token; with no access
			// token to fall back on it must run the refresh grant.
			src := a.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: prev.RefreshToken})
			return src.Token()
		},
	}
}
