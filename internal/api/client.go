package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies the current bearer credential, or "" when the
// caller is not signed in. Requests without a credential still go out;
// the server is the one that rejects them.
type TokenSource func() string

// ClientConfig wires the shared transport. Constructed once at startup
// and passed down; there is no package-level client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// Token is consulted on every request. May be nil.
	Token TokenSource

	// OnUnauthorized runs exactly once per 401 response, before the error
	// is returned to the caller. Session clearing and the sign-in redirect
	// live behind this hook.
	OnUnauthorized func()

	Logger *zap.Logger
}

// Client is the shared HTTP transport every service client goes through.
type Client struct {
	baseURL        string
	http           *http.Client
	token          TokenSource
	onUnauthorized func()
	log            *zap.Logger
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.Token,
		onUnauthorized: cfg.OnUnauthorized,
		log:            log,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// do performs one request and returns the decoded envelope. Non-2xx
// responses come back as *Error; network failures are wrapped as-is.
// No retries at this layer.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && ok {
			// error bodies may be empty or non-JSON, the status code alone
			// is enough to build an Error; a success body has to decode
			return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("unauthorized response, resetting session",
			zap.String("method", method), zap.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &Error{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if !ok {
		return nil, &Error{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	return &env, nil
}

// get unwraps the envelope's data into out and returns server pagination
// when present.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Pagination, error) {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return env.Pagination, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	env, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}

// Page is the client-owned pagination cursor: zero-based index plus size.
type Page struct {
	Index int
	Size  int
}

// Query converts the page cursor to the server's offset/limit convention.
func (p Page) Query() url.Values {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(p.Index*p.Size))
	q.Set("limit", strconv.Itoa(p.Size))
	return q
}

// ListResult is one page of records plus the server-reported total.
type ListResult[T any] struct {
	Items []T
	Total int
}
