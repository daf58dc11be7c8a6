package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
	"time"
)

const (
	// maxTries bounds attempts per request, first try included.
	maxTries = 3

	// defaultRetryAfter is the 429 backoff when the service omits the
	// Retry-After header.
	defaultRetryAfter = time.Second
)

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, result)
}

// getOptional is get for endpoints that signal an empty result with a
// 204 instead of a body. It reports whether a body was decoded.
func (c *Client) getOptional(ctx context.Context, endpoint string, query url.Values, result any) (bool, error) {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.roundTrip(ctx, http.MethodGet, u, "application/json", nil, result)
}

func (c *Client) post(ctx context.Context, endpoint string, query url.Values, body, result any) error {
	return c.do(ctx, http.MethodPost, endpoint, query, body, result)
}

func (c *Client) put(ctx context.Context, endpoint string, query url.Values, body, result any) error {
	return c.do(ctx, http.MethodPut, endpoint, query, body, result)
}

func (c *Client) delete(ctx context.Context, endpoint string, query url.Values, body, result any) error {
	return c.do(ctx, http.MethodDelete, endpoint, query, body, result)
}

// do executes one API call against a path under the base URL. body is
// JSON-marshaled when non-nil; result is JSON-decoded into when
// non-nil and the response has content.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}
	_, err := c.roundTrip(ctx, method, u, "application/json", payload, result)
	return err
}

// getURL fetches an absolute URL, as carried by pagination links,
// through the same auth and retry pipeline as do.
func (c *Client) getURL(ctx context.Context, u string, result any) error {
	_, err := c.roundTrip(ctx, http.MethodGet, u, "application/json", nil, result)
	return err
}

// roundTrip sends the request, retrying transient failures. Responses
// with status 429 wait out the delay the service asks for, 500/502/503
// back off briefly, and reset connections are retried like a 5xx. Any
// other non-2xx status fails immediately as an [*APIError]. The bool
// reports whether a body was decoded into result.
func (c *Client) roundTrip(ctx context.Context, method, u, contentType string, payload []byte, result any) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxTries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return false, err
			}
		}
		tok, err := c.creds.Token(ctx)
		if err != nil {
			return false, err
		}
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rd)
		if err != nil {
			return false, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
		if payload != nil {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			if !retriableNetErr(err) || attempt == maxTries-1 {
				return false, fmt.Errorf("%s %s: %w", method, u, err)
			}
			c.logger.Debug("transport failure, retrying", "method", method, "err", err)
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return drainResponse(resp, result)
		}

		apiErr := readAPIError(resp)
		lastErr = apiErr
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			if attempt == maxTries-1 {
				return false, apiErr
			}
			c.logger.Debug("rate limited, backing off", "delay", apiErr.RetryAfter, "attempt", attempt+1)
			if err := sleepCtx(ctx, apiErr.RetryAfter); err != nil {
				return false, err
			}
		case resp.StatusCode == http.StatusInternalServerError,
			resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable:
			if attempt == maxTries-1 {
				return false, apiErr
			}
			delay := time.Duration(1+2*attempt) * time.Second
			c.logger.Debug("server error, backing off", "status", resp.StatusCode, "delay", delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return false, err
			}
		default:
			return false, apiErr
		}
	}
	return false, lastErr
}

// drainResponse decodes a 2xx body into result. 204 responses and nil
// results leave result untouched.
func drainResponse(resp *http.Response, result any) (bool, error) {
	defer resp.Body.Close()
	if result == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

// readAPIError decodes the error envelope of a non-2xx response,
// tolerating bodies that are not JSON.
func readAPIError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error.Message
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = defaultRetryAfter
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
				apiErr.RetryAfter = time.Duration(secs) * time.Second
			}
		}
	}
	return apiErr
}

func retriableNetErr(err error) bool {
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.ErrUnexpectedEOF)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
