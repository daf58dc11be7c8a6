package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/spx/spotify"
	"golang.org/x/oauth2"
)

// CallbackResult carries the outcome of one authorization flow.
type CallbackResult struct {
	Token *oauth2.Token
	err   error
}

// Error reports why the flow failed, nil on success.
func (r CallbackResult) Error() error {
	return r.err
}

// Callback handles the authorization-code redirect for a single login
// attempt. The state parameter is checked against the value baked into
// the consent URL, the code is exchanged through the authenticator,
// and exactly one [CallbackResult] is delivered on the result channel.
// A second hit on the callback path gets a 400.
type Callback struct {
	auth    *spotify.Authenticator
	state   string
	results chan CallbackResult
	once    sync.Once
	mu      sync.Mutex
	handled bool
}

// NewCallback builds a handler expecting the given state token. The
// state must match the one passed to [spotify.Authenticator.AuthCodeURL].
func NewCallback(auth *spotify.Authenticator, state string) *Callback {
	return &Callback{
		auth:    auth,
		state:   state,
		results: make(chan CallbackResult, 1),
	}
}

// Routes returns the paths this handler serves. The application's
// registered redirect URI must point at one of them.
func (h *Callback) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP processes the redirect from the consent page.
func (h *Callback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.handled {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.handled = true
	h.mu.Unlock()

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.deliver(CallbackResult{err: fmt.Errorf("state parameter mismatch")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.deliver(CallbackResult{err: fmt.Errorf("authorization declined: %s - %s",
			query.Get("error"), query.Get("error_description"))})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Exchange(r.Context(), code)
	if err != nil {
		h.deliver(CallbackResult{err: fmt.Errorf("code exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.deliver(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// deliver sends the result and closes the channel, first call wins.
func (h *Callback) deliver(result CallbackResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel the flow's outcome arrives on. It yields
// exactly one value and is then closed.
func (h *Callback) Result() <-chan CallbackResult {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Spotify Connected</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .card { text-align: center; background: white; padding: 2rem;
                border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>&#10003; Spotify Connected</h1>
        <p>Login complete. You can close this tab and return to the terminal.</p>
    </div>
</body>
</html>
`
