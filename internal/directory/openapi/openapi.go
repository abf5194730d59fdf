// Package openapi implements the directory client against the modern
// API-gateway REST interface (port 443, enveloped list responses).
// Resource payloads keep the canonical field names the directory uses
// across both interface generations.
package openapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/netgrove/invsync/internal/transport"
	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// Config carries the connection settings for the gateway interface.
type Config struct {
	Address  string // host or host:port; gateway listens on 443
	Username string
	Password string
}

// Client talks to the directory through the API gateway.
type Client struct {
	baseURL string
	client  *transport.Client
}

// New creates a gateway client. The appliance serves self-signed
// certificates, so verification is disabled.
func New(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, &errors.ConfigError{Section: "directory", Message: "address is required"}
	}
	return &Client{
		baseURL: fmt.Sprintf("https://%s/api/v1", cfg.Address),
		client: transport.New("directory",
			&transport.BasicAuth{Username: cfg.Username, Password: cfg.Password},
			transport.WithInsecureTLS()),
	}, nil
}

// Verify checks connectivity and credentials with a minimal listing.
func (c *Client) Verify(ctx context.Context) error {
	var result envelope[networkDevice]
	return c.client.GetJSON(ctx, c.baseURL+"/network-device?size=1&page=1", &result)
}

// FetchCurrentGroups lists all device groups. Group names are full
// delimited paths.
func (c *Client) FetchCurrentGroups(ctx context.Context) (map[taxonomy.Path]string, error) {
	resources, err := pageAll[networkDeviceGroup](ctx, c, "/network-device-group")
	if err != nil {
		return nil, err
	}
	groups := make(map[taxonomy.Path]string, len(resources))
	for _, g := range resources {
		groups[taxonomy.Path(g.Name)] = g.ID
	}
	return groups, nil
}

// FetchCurrentDevices lists all devices. Gateway listings carry full
// device records, so no per-device detail reads are needed.
func (c *Client) FetchCurrentDevices(ctx context.Context) ([]directory.CurrentDevice, error) {
	resources, err := pageAll[networkDevice](ctx, c, "/network-device")
	if err != nil {
		return nil, err
	}
	devices := make([]directory.CurrentDevice, 0, len(resources))
	for _, nd := range resources {
		devices = append(devices, nd.current())
	}
	return devices, nil
}

// CreateGroup creates a device group named by the full path. The
// created resource is echoed back with its assigned identifier.
func (c *Client) CreateGroup(ctx context.Context, groupPath taxonomy.Path) (string, error) {
	body := networkDeviceGroup{
		Name:      groupPath.String(),
		OtherName: groupPath.Root(),
	}
	var created single[networkDeviceGroup]
	if _, err := c.client.PostJSON(ctx, c.baseURL+"/network-device-group", body, &created); err != nil {
		return "", err
	}
	return created.Response.ID, nil
}

// CreateDevice creates a device record.
func (c *Client) CreateDevice(ctx context.Context, device directory.Device) (string, error) {
	var created single[networkDevice]
	if _, err := c.client.PostJSON(ctx, c.baseURL+"/network-device", fromDevice(device), &created); err != nil {
		return "", err
	}
	return created.Response.ID, nil
}

// UpdateDevice replaces the device record with the given id. The
// gateway echoes the updated record without a field-change list, so the
// detail is left to the caller.
func (c *Client) UpdateDevice(ctx context.Context, id string, device directory.Device) (string, error) {
	err := c.client.PutJSON(ctx, c.baseURL+"/network-device/"+url.PathEscape(id), fromDevice(device), nil)
	return "", err
}

// envelope is the gateway list response wrapper.
type envelope[T any] struct {
	Response []T `json:"response"`
}

// single is the gateway single-resource response wrapper.
type single[T any] struct {
	Response T `json:"response"`
}

// pageAll fetches endpoint pages until a page comes back smaller than
// the page size.
func pageAll[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		listURL := fmt.Sprintf("%s%s?page=%d&size=%d", c.baseURL, endpoint, page, constants.DefaultPageSize)
		var result envelope[T]
		if err := c.client.GetJSON(ctx, listURL, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Response...)
		if len(result.Response) < constants.DefaultPageSize {
			return all, nil
		}
	}
}
