package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/errors"
)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	system string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithInsecureTLS disables certificate verification. Directory
// appliances commonly run with self-signed certificates.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
			DialContext:     (&net.Dialer{Timeout: constants.DialTimeout}).DialContext,
			MaxIdleConns:    constants.MaxIdleConnections,
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a transport client for the named system with the given
// authenticator. The system name labels connectivity and API errors.
func New(system string, auth Authenticator, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				DialContext:  (&net.Dialer{Timeout: constants.DialTimeout}).DialContext,
				MaxIdleConns: constants.MaxIdleConnections,
			},
		},
		auth:   auth,
		system: system,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET request and decodes the JSON response body into
// target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.WrapConnectivity(c.system, url, err)
	}
	_, err = c.do(req, target)
	return err
}

// PostJSON issues a POST request with a JSON body. When target is
// non-nil the response body is decoded into it. The response Location
// header is returned; directory create endpoints carry the new
// resource identifier there.
func (c *Client) PostJSON(ctx context.Context, url string, body, target any) (string, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req, target)
	if err != nil {
		return "", err
	}
	return resp.Header.Get("Location"), nil
}

// PutJSON issues a PUT request with a JSON body, decoding the response
// into target when target is non-nil.
func (c *Client) PutJSON(ctx context.Context, url string, body, target any) error {
	req, err := c.jsonRequest(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	_, err = c.do(req, target)
	return err
}

func (c *Client) jsonRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WrapConnectivity(c.system, url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do applies authentication and common headers, performs the request,
// and decodes a 2xx JSON body into target. Non-2xx responses become
// APIErrors carrying the status code and response body.
func (c *Client) do(req *http.Request, target any) (*http.Response, error) {
	if c.auth != nil {
		c.auth.Apply(req)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapConnectivity(c.system, req.URL.String(), err)
	}
	if err := DecodeResponse(c.system, resp, target); err != nil {
		return nil, err
	}
	return resp, nil
}
