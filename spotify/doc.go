// Package spotify is a thin, typed client for the Spotify Web API.
//
// The package translates method calls into HTTP requests against the
// hosted service, parses JSON responses into typed objects, and manages
// the bearer token lifecycle. It defines no protocol of its own and
// keeps no state beyond the current token.
//
// # Client
//
// [Client] is safe for concurrent use. Construct one with [New] around a
// [Credentials] manager:
//
//	creds := spotify.NewClientCredentials(id, secret)
//	client := spotify.New(creds, spotify.Opts{})
//	album, err := client.Album(ctx, "4aawyAB9vmqN3uQ7FjRGTy")
//
// Every call takes a [context.Context]; cancellation and deadlines
// propagate through token refreshes, retry sleeps, and the requests
// themselves.
//
// # Authentication
//
// [Credentials] caches the current token and renews it before expiry.
// Renewal is serialized: concurrent callers trigger at most one token
// request and share its result. Two grants are supported, client
// credentials ([NewClientCredentials], application-only access) and
// authorization code ([Authenticator], user access with refresh).
//
// # Errors
//
// Non-2xx responses surface as [*APIError] values that unwrap to a
// sentinel per status class, so callers branch with [errors.Is]:
//
//	if errors.Is(err, spotify.ErrNotFound) { ... }
//
// Responses with status 429 are retried after the delay the service
// asks for, and 500/502/503 are retried with a short backoff, before
// either surfaces as an error.
//
// # Pagination
//
// Listing endpoints return [Page] or [CursorPage] envelopes. [Pages]
// and [CursorPages] flatten an envelope and all of its follow-up pages
// into one lazy sequence:
//
//	page, err := client.SavedTracks(ctx, 50, 0)
//	for track, err := range spotify.Pages(ctx, client, page) {
//		...
//	}
//
// Follow-up pages are fetched only as iteration reaches them.
package spotify
