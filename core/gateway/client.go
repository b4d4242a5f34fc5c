package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
)

// Client talks to the upstream experience REST services.
type Client struct {
	http    *req.Client
	retries int
}

// New creates a client for the configured base URL.
func New(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}

	c := req.C().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(time.Duration(timeout)*time.Second).
		SetCommonHeader("Accept", "application/json").
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)
	if cfg.Token != "" {
		c.SetCommonBearerAuthToken(cfg.Token)
	}

	return &Client{http: c, retries: max(cfg.RetryCount, 0)}
}

// List fetches a collection and decodes it into out.
func (c *Client) List(ctx context.Context, path string, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetRetryCount(c.retries).
		SetRetryFixedInterval(200 * time.Millisecond).
		SetSuccessResult(out).
		Get(path)

	return handleAPIError(resp, err, "list "+path)
}

// Create posts payload and returns the location of the created resource.
// The Location header wins over a location or id field in the response body.
func (c *Client) Create(ctx context.Context, path string, payload any) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)

	if err := handleAPIError(resp, err, "create "+path); err != nil {
		return "", err
	}

	if loc := resp.GetHeader("Location"); loc != "" {
		return loc, nil
	}

	var body struct {
		Location string          `json:"location"`
		ID       json.RawMessage `json:"id"`
	}
	if raw := resp.Bytes(); len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return "", fmt.Errorf("gateway: create %s: decode response: %w", path, err)
		}
	}
	if body.Location != "" {
		return body.Location, nil
	}
	if id := strings.Trim(string(body.ID), `"`); id != "" && id != "null" {
		return id, nil
	}
	return "", fmt.Errorf("create %s: %w", path, ErrNoLocation)
}

// CreateID posts payload and returns the id of the created resource.
func (c *Client) CreateID(ctx context.Context, path string, payload any) (string, error) {
	loc, err := c.Create(ctx, path, payload)
	if err != nil {
		return "", err
	}
	return IDFromLocation(loc)
}

// Update puts payload to path.
func (c *Client) Update(ctx context.Context, path string, payload any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetRetryCount(c.retries).
		SetRetryFixedInterval(200 * time.Millisecond).
		SetBody(payload).
		Put(path)

	return handleAPIError(resp, err, "update "+path)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetRetryCount(c.retries).
		SetRetryFixedInterval(200 * time.Millisecond).
		Delete(path)

	return handleAPIError(resp, err, "delete "+path)
}

// IDFromLocation extracts the resource id from a location, which may be an absolute URL,
// a path or a bare id. The id is the last non-empty path segment.
func IDFromLocation(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", ErrNoLocation
	}
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("gateway: parse location %q: %w", location, err)
	}

	segments := strings.Split(strings.TrimRight(u.EscapedPath(), "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrNoLocation, location)
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	return id, nil
}

// Path joins segments into a request path, escaping each one.
func Path(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(strings.Trim(s, "/")))
	}
	return b.String()
}
