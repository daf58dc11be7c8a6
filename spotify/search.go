package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// SearchOptions narrow a catalog search. The zero value searches
// tracks, albums, artists, and playlists with service defaults.
type SearchOptions struct {
	// Types picks which catalog types to search, from the SearchType
	// constants.
	Types []string

	// Market restricts results to content playable in the given
	// country. With a user token the account country applies instead.
	Market string

	// IncludeExternal set to "audio" marks externally hosted audio as
	// playable.
	IncludeExternal string

	Limit  int
	Offset int
}

// Search queries the catalog. The query syntax supports field filters
// (artist:, album:, track:, year:, isrc:, genre:) and negation the way
// the service documents them.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	types := opts.Types
	if len(types) == 0 {
		types = []string{SearchTypeTrack, SearchTypeAlbum, SearchTypeArtist, SearchTypePlaylist}
	}
	q := url.Values{
		"q":    {query},
		"type": {strings.Join(types, ",")},
	}
	if opts.Market != "" {
		q.Set("market", opts.Market)
	}
	if opts.IncludeExternal != "" {
		q.Set("include_external", opts.IncludeExternal)
	}
	addPaging(q, opts.Limit, opts.Offset)
	result := new(SearchResult)
	if err := c.get(ctx, "/search", q, result); err != nil {
		return nil, err
	}
	return result, nil
}
