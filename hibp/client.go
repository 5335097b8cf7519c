// Package hibp is a typed client for the Have I Been Pwned v3 API with an
// optional read-through response cache.
package hibp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/breachwatch/cache"
)

const (
	DefaultBaseURL         = "https://haveibeenpwned.com/api/v3"
	DefaultPasswordBaseURL = "https://api.pwnedpasswords.com"

	defaultUserAgent = "breachwatch/1.0"
)

// Client talks to the HIBP API. Authentication is a static hibp-api-key
// header; endpoints that accept anonymous access work with an empty key.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	pwBaseURL *url.URL
	apiKey    string
	userAgent string
	store     *cache.Store
	log       zerolog.Logger

	// lastDomainBreachDate is the newest breach "added" date this client
	// has observed, used to decide whether domain queries may trust cache.
	mu                   sync.Mutex
	lastDomainBreachDate string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

func WithPasswordBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.pwBaseURL = u
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithCache attaches a response cache; nil means every call goes live.
func WithCache(store *cache.Store) Option {
	return func(c *Client) { c.store = store }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client. apiKey may be empty for anonymous endpoints.
func New(apiKey string, opts ...Option) (*Client, error) {
	base, _ := url.Parse(DefaultBaseURL)
	pw, _ := url.Parse(DefaultPasswordBaseURL)
	c := &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   base,
		pwBaseURL: pw,
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// fetchJSON resolves (endpoint, params) through the read-through cache.
func (c *Client) fetchJSON(ctx context.Context, endpoint string, params cache.Params) (json.RawMessage, error) {
	if c.store == nil {
		return c.live(ctx, endpoint, params)
	}
	return c.store.Fetch(ctx, endpoint, params, func(ctx context.Context) (json.RawMessage, error) {
		return c.live(ctx, endpoint, params)
	})
}

// fetchJSONBypass skips the cache read but still writes the live result
// back so later read-through calls can reuse it.
func (c *Client) fetchJSONBypass(ctx context.Context, endpoint string, params cache.Params) (json.RawMessage, error) {
	data, err := c.live(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if c.store != nil {
		c.store.Set(endpoint, params, data)
	}
	return data, nil
}

// live performs one network call and maps the response status to the
// client's error taxonomy.
func (c *Client) live(ctx context.Context, endpoint string, params cache.Params) (json.RawMessage, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, endpoint)
	q := u.Query()
	for name, value := range params {
		if value == nil {
			continue
		}
		q.Set(name, cache.ParamString(value))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("hibp-api-key", c.apiKey)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("GET %s: read body: %w", endpoint, err)
		}
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: retryAfter(resp)}
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
}

func retryAfter(resp *http.Response) time.Duration {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
