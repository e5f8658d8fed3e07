package client

import (
	"net/http"
	"net/url"
	"time"

	"github.com/mhuot/go-opennms/pkg/filter"
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client) error

// RequestOption configures an outgoing HTTP request at call time.
type RequestOption func(*http.Request) error

// WithBaseURL sets the service root, e.g. http://localhost:8980/opennms.
func WithBaseURL(raw string) ClientOption {
	return func(c *Client) error {
		if raw == "" {
			return ErrInvalidBaseURL
		}
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		if !u.IsAbs() {
			return ErrInvalidBaseURL
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return ErrNilHTTPClient
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithDefaultHeader registers a header applied to every request.
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return nil
		}
		if c.defaultHeaders == nil {
			c.defaultHeaders = make(http.Header)
		}
		c.defaultHeaders.Add(key, value)
		return nil
	}
}

// WithLogger registers a logger used for request lifecycle events.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithTimeout sets a per-request timeout on a copy of the underlying http.Client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout <= 0 {
			return nil
		}
		// A client passed to WithHTTPClient is never modified.
		hc := &http.Client{}
		if c.httpClient != nil {
			*hc = *c.httpClient
		}
		hc.Timeout = timeout
		c.httpClient = hc
		return nil
	}
}

// WithAPIVersion selects the protocol filters are compiled for.
func WithAPIVersion(version filter.APIVersion) ClientOption {
	return func(c *Client) error {
		if version != filter.V1 && version != filter.V2 {
			return ErrInvalidAPIVersion
		}
		c.version = version
		return nil
	}
}

// WithV2Options configures the v2 processor, e.g. with filter.WithPropertyTypes.
// They are ignored for v1.
func WithV2Options(opts ...filter.V2Option) ClientOption {
	return func(c *Client) error {
		c.v2Options = append(c.v2Options, opts...)
		return nil
	}
}

// Header returns a RequestOption that sets a header value.
func Header(key, value string) RequestOption {
	return func(req *http.Request) error {
		if key == "" {
			return nil
		}
		req.Header.Set(key, value)
		return nil
	}
}

// AddHeader returns a RequestOption that appends to a header value.
func AddHeader(key, value string) RequestOption {
	return func(req *http.Request) error {
		if key == "" {
			return nil
		}
		req.Header.Add(key, value)
		return nil
	}
}
