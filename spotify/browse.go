package spotify

import (
	"context"
	"fmt"
	"net/url"
)

// Categories lists the browse categories of the catalog.
func (c *Client) Categories(ctx context.Context, limit, offset int) (*Page[Category], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	var payload struct {
		Categories Page[Category] `json:"categories"`
	}
	if err := c.get(ctx, "/browse/categories", q, &payload); err != nil {
		return nil, err
	}
	return &payload.Categories, nil
}

// Category fetches one browse category.
func (c *Client) Category(ctx context.Context, id string) (*Category, error) {
	category := new(Category)
	if err := c.get(ctx, fmt.Sprintf("/browse/categories/%s", id), nil, category); err != nil {
		return nil, err
	}
	return category, nil
}

// CategoryPlaylists lists the playlists filed under a browse category.
func (c *Client) CategoryPlaylists(ctx context.Context, id string, limit, offset int) (*Page[SimplePlaylist], error) {
	q := url.Values{}
	addPaging(q, limit, offset)
	var payload struct {
		Playlists Page[SimplePlaylist] `json:"playlists"`
	}
	if err := c.get(ctx, fmt.Sprintf("/browse/categories/%s/playlists", id), q, &payload); err != nil {
		return nil, err
	}
	return &payload.Playlists, nil
}

// Genres lists the genre seeds accepted by
// [Client.Recommendations].
func (c *Client) Genres(ctx context.Context) ([]string, error) {
	var payload struct {
		Genres []string `json:"genres"`
	}
	if err := c.get(ctx, "/recommendations/available-genre-seeds", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Genres, nil
}

// Markets lists the countries the catalog is available in, as ISO
// 3166-1 alpha-2 codes.
func (c *Client) Markets(ctx context.Context) ([]string, error) {
	var payload struct {
		Markets []string `json:"markets"`
	}
	if err := c.get(ctx, "/markets", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Markets, nil
}
