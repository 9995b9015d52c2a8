package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookcatalog/internal/platform/logging"

	"golang.org/x/time/rate"
)

const (
	DefaultHost = "www.googleapis.com"

	maxRedirects = 10
	maxBackoff   = 30 * time.Second
)

// ErrHostNotAllowed is returned before any request is made when the URL
// points outside the configured allow-list.
var ErrHostNotAllowed = errors.New("host not allowed")

// FetchError describes a request that completed without a usable response.
type FetchError struct {
	StatusCode int
	Reason     string
	// Err is the underlying cause when there is one, e.g. ErrHostNotAllowed
	// for a redirect leaving the allow-list.
	Err error
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return "fetch volumes: " + e.Reason
	}
	return fmt.Sprintf("fetch volumes: status %d: %s", e.StatusCode, e.Reason)
}

type Config struct {
	AllowedHosts []string
	UserAgent    string
	Timeout      time.Duration
	RPS          int
	MaxRetries   int
	RetryBackoff time.Duration
}

type Client struct {
	httpClient   *http.Client
	userAgent    string
	limiter      *rate.Limiter
	maxRetries   int
	retryBackoff time.Duration
	allowedHosts map[string]bool
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}
	if len(cfg.AllowedHosts) == 0 {
		cfg.AllowedHosts = []string{DefaultHost}
	}
	hosts := make(map[string]bool, len(cfg.AllowedHosts))
	for _, h := range cfg.AllowedHosts {
		hosts[strings.ToLower(strings.TrimSpace(h))] = true
	}
	c := &Client{
		userAgent:    cfg.UserAgent,
		limiter:      rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RPS)), 1),
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		allowedHosts: hosts,
	}
	c.httpClient = &http.Client{Timeout: cfg.Timeout, CheckRedirect: c.checkRedirect}
	return c
}

// checkRedirect holds every hop to the same allow-list as the first request.
func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if _, err := c.CheckURL(req.URL.String()); err != nil {
		return fmt.Errorf("redirect: %w", err)
	}
	return nil
}

// backoff is the wait before attempt (1-based retry count). The doubling
// stops at maxBackoff.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryBackoff
	for i := 1; i < attempt && d < maxBackoff; i++ {
		d *= 2
	}
	return min(d, maxBackoff)
}

// CheckURL parses raw and verifies its scheme and host against the allow-list.
func (c *Client) CheckURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHostNotAllowed, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrHostNotAllowed, u.Scheme)
	}
	if !c.allowedHosts[strings.ToLower(u.Hostname())] {
		return nil, fmt.Errorf("%w: %q", ErrHostNotAllowed, u.Hostname())
	}
	return u, nil
}

// FetchVolumes performs a single GET against rawURL and decodes one page of
// volumes. Transport errors, 429 and 5xx responses are retried up to
// maxRetries times with exponential backoff; any other non-200 status is
// returned immediately as a *FetchError.
func (c *Client) FetchVolumes(ctx context.Context, rawURL string) (*VolumesResponse, error) {
	u, err := c.CheckURL(rawURL)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := c.backoff(i)
			logging.FromContext(ctx).Debug().Str("url", u.String()).Int("attempt", i+1).Dur("backoff", backoff).Msg("retrying volumes fetch")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		res, retry, err := c.fetchOnce(ctx, u.String())
		if err == nil {
			return res, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, target string) (*VolumesResponse, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		if errors.Is(err, ErrHostNotAllowed) {
			return nil, false, &FetchError{Reason: "redirected to a host that is not allowed", Err: err}
		}
		return nil, true, &FetchError{Reason: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		reason := http.StatusText(resp.StatusCode)
		if reason == "" {
			reason = resp.Status
		}
		fe := &FetchError{StatusCode: resp.StatusCode, Reason: reason}
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fe
	}

	var res VolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, false, &FetchError{StatusCode: resp.StatusCode, Reason: "invalid JSON body: " + err.Error()}
	}
	return &res, false, nil
}
