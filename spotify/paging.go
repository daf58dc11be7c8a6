package spotify

import (
	"context"
	"iter"
)

// Page is the offset pagination envelope used by most listings. Next
// and Previous are absolute URLs, empty at the ends of the listing.
type Page[T any] struct {
	Href     string `json:"href"`
	Items    []T    `json:"items"`
	Limit    int    `json:"limit"`
	Next     string `json:"next"`
	Offset   int    `json:"offset"`
	Previous string `json:"previous"`
	Total    int    `json:"total"`
}

// CursorPage is the cursor pagination envelope used by the followed
// artists and recently-played listings.
type CursorPage[T any] struct {
	Href    string  `json:"href"`
	Items   []T     `json:"items"`
	Limit   int     `json:"limit"`
	Next    string  `json:"next"`
	Cursors Cursors `json:"cursors"`
	Total   int     `json:"total"`
}

// Pages flattens first and all of its follow-up pages into one lazy
// sequence. Pages are fetched only as iteration reaches them, so
// breaking out early stops all further requests. A fetch failure
// yields one zero item with the error and ends the sequence.
func Pages[T any](ctx context.Context, c *Client, first *Page[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := first
		for page != nil {
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.Next == "" {
				return
			}
			next := new(Page[T])
			if err := c.getURL(ctx, page.Next, next); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			page = next
		}
	}
}

// CursorPages is [Pages] for cursor-paginated listings.
func CursorPages[T any](ctx context.Context, c *Client, first *CursorPage[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := first
		for page != nil {
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
			if page.Next == "" {
				return
			}
			next := new(CursorPage[T])
			if err := c.getURL(ctx, page.Next, next); err != nil {
				var zero T
				yield(zero, err)
				return
			}
			page = next
		}
	}
}

// Collect drains a sequence produced by [Pages] or [CursorPages] into
// a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}
