package spotify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// BaseURL is the API host all relative endpoints resolve against.
const BaseURL = "https://api.spotify.com/v1"

const (
	defaultTimeout = 30 * time.Second

	// maxPageLimit is the largest page size the service accepts.
	maxPageLimit = 50
)

// Client calls the Spotify Web API. All methods are safe for
// concurrent use; requests share one pooled HTTP client and one
// credential manager.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      *Credentials
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Opts tunes a [Client]. The zero value selects defaults for every
// field.
type Opts struct {
	// HTTPClient replaces the pooled default with its 30 second
	// timeout. Transports without timeouts should only be used when
	// every call carries a deadline.
	HTTPClient *http.Client

	// BaseURL repoints the API host. Tests and proxies use this; the
	// trailing slash, if any, is trimmed.
	BaseURL string

	// Limiter caps the outbound request rate across all goroutines
	// sharing the client. Nil means no client-side limit.
	Limiter *rate.Limiter

	// Logger receives debug output for retries and backoff. Nil
	// discards it.
	Logger *log.Logger
}

// New builds a client around creds.
func New(creds *Credentials, opts Opts) *Client {
	c := &Client{
		baseURL:    BaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		creds:      creds,
		limiter:    opts.Limiter,
		logger:     log.New(io.Discard),
	}
	if opts.BaseURL != "" {
		c.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}
	if opts.HTTPClient != nil {
		c.httpClient = opts.HTTPClient
	}
	if opts.Logger != nil {
		c.logger = opts.Logger
	}
	return c
}

// Credentials exposes the client's credential manager, e.g. to
// register an [Credentials.OnRefresh] persistence hook.
func (c *Client) Credentials() *Credentials {
	return c.creds
}

// joinIDs joins a batch of IDs for a bulk endpoint, enforcing the
// endpoint's batch cap.
func joinIDs(ids []string, max int) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no ids given", ErrInvalidInput)
	}
	if len(ids) > max {
		return "", fmt.Errorf("%w: %d ids given, endpoint accepts at most %d", ErrInvalidInput, len(ids), max)
	}
	return strings.Join(ids, ","), nil
}

// addPaging sets limit and offset query parameters. Zero values are
// omitted so service defaults apply; limit is clamped to the accepted
// range.
func addPaging(q url.Values, limit, offset int) {
	if limit > 0 {
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
}
