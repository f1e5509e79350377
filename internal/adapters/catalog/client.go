// Package catalog fetches villa listings from a remote JSON source for seeding.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"magic_villa/internal/app"
)

var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrUnauthorized = errors.New("catalog: unauthorized")
)

type Client struct {
	url     string
	key     string
	hc      *http.Client
	rl      *rate.Limiter
	retries uint64
}

// New returns a client for the listing at url. key, when set, is sent as X-API-Key.
func New(url, key string, rps int) (*Client, error) {
	if url == "" {
		return nil, errors.New("catalog url is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		url:     url,
		key:     key,
		hc:      &http.Client{Timeout: 20 * time.Second},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		retries: 3,
	}, nil
}

// listing accepts either a bare array or this API's own envelope, so another
// instance can be used as the source.
type listing []app.VillaCreateDTO

func (l *listing) UnmarshalJSON(b []byte) error {
	var arr []app.VillaCreateDTO
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var env struct {
		Result []app.VillaCreateDTO `json:"result"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	*l = env.Result
	return nil
}

// GetVillas downloads the listing, retrying 429 and transient 5xx responses.
func (c *Client) GetVillas(ctx context.Context) ([]app.VillaCreateDTO, error) {
	var out listing
	if err := c.get(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)

	return backoff.Retry(func() error { return c.attempt(ctx, out) }, policy)
}

// attempt performs one request. Errors that retrying cannot fix are wrapped as
// permanent.
func (c *Client) attempt(ctx context.Context, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "magic-villa-seeder/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return errors.Wrap(err, "catalog request")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(errors.Wrap(err, "decode catalog"))
		}
		return nil
	case http.StatusNotFound:
		return backoff.Permanent(ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return backoff.Permanent(ErrUnauthorized)
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		if wait := retryAfter(resp); wait > 0 && !sleepCtx(ctx, wait) {
			return backoff.Permanent(ctx.Err())
		}
		return fmt.Errorf("remote %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return backoff.Permanent(fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
