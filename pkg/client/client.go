// Package client is a thin HTTP client for the OpenNMS ReST API. It compiles
// filters with the processor matching the configured API version and returns
// raw response bodies.
package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/mhuot/go-opennms/pkg/filter"
)

// RequestIDHeader carries a per-request identifier for log correlation.
const RequestIDHeader = "X-Request-Id"

// Transport performs one HTTP exchange against an endpoint relative to the service root.
type Transport interface {
	Do(ctx context.Context, method, endpoint string, query url.Values, opts ...RequestOption) (*Response, error)
}

// Response is a successful answer. Body is empty for 204 No Content.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
	RequestID   string
}

// Empty reports whether the server returned no content.
func (r *Response) Empty() bool {
	return r == nil || r.Status == http.StatusNoContent || len(r.Body) == 0
}

// Client is a reusable OpenNMS API client.
type Client struct {
	httpClient     *http.Client
	baseURL        *url.URL
	defaultHeaders http.Header
	logger         Logger
	version        filter.APIVersion
	v2Options      []filter.V2Option
	processor      filter.Processor
}

var (
	_ Transport             = (*Client)(nil)
	_ filter.PropertyLister = (*Client)(nil)
)

// New constructs a Client with provided options. The API version defaults to v2.
func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient:     &http.Client{},
		defaultHeaders: make(http.Header),
		version:        filter.V2,
	}
	c.defaultHeaders.Set("Accept", "application/json")
	c.defaultHeaders.Set("User-Agent", "go-opennms/0.1")

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.baseURL == nil {
		return nil, ErrInvalidBaseURL
	}
	if c.httpClient == nil {
		return nil, ErrNilHTTPClient
	}
	p, err := filter.NewProcessor(c.version, c.v2Options...)
	if err != nil {
		return nil, err
	}
	c.processor = p
	return c, nil
}

// Processor returns the filter processor for the configured API version.
func (c *Client) Processor() filter.Processor {
	return c.processor
}

// Version returns the configured API version.
func (c *Client) Version() filter.APIVersion {
	return c.version
}

// BaseURL returns a copy of the service root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Alarms returns the alarm resource.
func (c *Client) Alarms() *ResourceService { return c.resource("alarms") }

// Events returns the event resource.
func (c *Client) Events() *ResourceService { return c.resource("events") }

// Nodes returns the node resource.
func (c *Client) Nodes() *ResourceService { return c.resource("nodes") }

// Outages returns the outage resource.
func (c *Client) Outages() *ResourceService { return c.resource("outages") }

// Resource returns the service for an arbitrary resource name such as "alarms".
func (c *Client) Resource(name string) *ResourceService { return c.resource(name) }

func (c *Client) resource(name string) *ResourceService {
	return &ResourceService{client: c, transport: c, name: strings.Trim(name, "/"), processor: c.processor}
}

func (c *Client) buildURL(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, endpoint)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, opts []RequestOption) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(endpoint, query), nil)
	if err != nil {
		return nil, err
	}

	for key, values := range c.defaultHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(req); err != nil {
			return nil, err
		}
	}

	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return req, nil
}

// Do implements Transport.
func (c *Client) Do(ctx context.Context, method, endpoint string, query url.Values, opts ...RequestOption) (*Response, error) {
	req, err := c.newRequest(ctx, method, endpoint, query, opts)
	if err != nil {
		return nil, err
	}
	requestID := req.Header.Get(RequestIDHeader)

	if c.logger != nil {
		c.logger.Debugf("onms: %s %s id=%s", req.Method, req.URL, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Errorf("onms: %s %s failed id=%s: %v", req.Method, req.URL.Path, requestID, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Errorf("onms: request failed status=%d id=%s", resp.StatusCode, requestID)
		}
		return nil, newAPIError(resp.StatusCode, data)
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
		RequestID:   requestID,
	}, nil
}

const maxBodySize = 64 << 20

// ListProperties implements filter.PropertyLister.
func (c *Client) ListProperties(ctx context.Context, endpoint string) ([]filter.SearchProperty, error) {
	resp, err := c.Do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if resp.Empty() {
		return nil, nil
	}
	return filter.ParseSearchProperties(resp.Body)
}

// IsCompileError reports whether err came from compiling a filter rather than from the network.
func IsCompileError(err error) bool {
	var ce *filter.CompileError
	return errors.As(err, &ce)
}
