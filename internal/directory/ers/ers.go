// Package ers implements the directory client against the legacy ERS
// REST interface (dedicated API port, size/page list paging).
package ers

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/netgrove/invsync/internal/transport"
	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/logging"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// Port is the dedicated ERS API port.
const Port = 9060

// Config carries the connection settings for the ERS interface.
type Config struct {
	Address  string // host or host:port
	Username string
	Password string
}

// Client talks to the directory over the legacy ERS interface.
type Client struct {
	baseURL string
	client  *transport.Client
}

// New creates an ERS client. The appliance serves self-signed
// certificates on the ERS port, so verification is disabled.
func New(cfg Config) (*Client, error) {
	if cfg.Address == "" {
		return nil, &errors.ConfigError{Section: "directory", Message: "address is required"}
	}
	address := cfg.Address
	if !strings.Contains(address, ":") {
		address = fmt.Sprintf("%s:%d", address, Port)
	}
	return &Client{
		baseURL: fmt.Sprintf("https://%s/ers/config", address),
		client: transport.New("directory",
			&transport.BasicAuth{Username: cfg.Username, Password: cfg.Password},
			transport.WithInsecureTLS()),
	}, nil
}

// searchResult is the ERS list envelope.
type searchResult struct {
	Result struct {
		Total     int        `json:"total"`
		Resources []resource `json:"resources"`
	} `json:"SearchResult"`
}

type resource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Verify checks connectivity and credentials with a minimal device
// listing.
func (c *Client) Verify(ctx context.Context) error {
	var result searchResult
	return c.client.GetJSON(ctx, c.baseURL+"/networkdevice?size=1", &result)
}

// FetchCurrentGroups lists all device groups, paging until the reported
// total is exhausted. Group names are full delimited paths.
func (c *Client) FetchCurrentGroups(ctx context.Context) (map[taxonomy.Path]string, error) {
	resources, err := c.listAll(ctx, "/networkdevicegroup")
	if err != nil {
		return nil, err
	}
	groups := make(map[taxonomy.Path]string, len(resources))
	for _, r := range resources {
		groups[taxonomy.Path(r.Name)] = r.ID
	}
	return groups, nil
}

// FetchCurrentDevices lists all devices, then reads each device's full
// record. The listing carries names and ids only.
func (c *Client) FetchCurrentDevices(ctx context.Context) ([]directory.CurrentDevice, error) {
	resources, err := c.listAll(ctx, "/networkdevice")
	if err != nil {
		return nil, err
	}

	devices := make([]directory.CurrentDevice, 0, len(resources))
	for _, r := range resources {
		var detail struct {
			Device networkDevice `json:"NetworkDevice"`
		}
		if err := c.client.GetJSON(ctx, c.baseURL+"/networkdevice/"+r.ID, &detail); err != nil {
			// A device deleted between the listing and the detail read
			// is simply gone, not a failed fetch.
			if errors.IsNotFound(err) {
				logging.Ctx(ctx).Warn().Str("device", r.Name).Str("id", r.ID).
					Msg("Device vanished between list and read, skipping")
				continue
			}
			return nil, err
		}
		devices = append(devices, detail.Device.current())
	}
	return devices, nil
}

// CreateGroup creates a device group named by the full path. The new
// group's identifier is carried in the response Location header.
func (c *Client) CreateGroup(ctx context.Context, groupPath taxonomy.Path) (string, error) {
	body := map[string]networkDeviceGroup{
		"NetworkDeviceGroup": {
			Name:      groupPath.String(),
			OtherName: groupPath.Root(),
		},
	}
	location, err := c.client.PostJSON(ctx, c.baseURL+"/networkdevicegroup", body, nil)
	if err != nil {
		return "", err
	}
	return idFromLocation(location), nil
}

// CreateDevice creates a device record.
func (c *Client) CreateDevice(ctx context.Context, device directory.Device) (string, error) {
	body := map[string]networkDevice{"NetworkDevice": fromDevice(device)}
	location, err := c.client.PostJSON(ctx, c.baseURL+"/networkdevice", body, nil)
	if err != nil {
		return "", err
	}
	return idFromLocation(location), nil
}

// UpdateDevice replaces the device record with the given id. The
// response lists the fields the directory changed, which becomes the
// result detail.
func (c *Client) UpdateDevice(ctx context.Context, id string, device directory.Device) (string, error) {
	body := map[string]networkDevice{"NetworkDevice": fromDevice(device)}
	var updated struct {
		Fields struct {
			Updated []struct {
				Field    string `json:"field"`
				OldValue string `json:"oldValue"`
				NewValue string `json:"newValue"`
			} `json:"updatedField"`
		} `json:"UpdatedFieldsList"`
	}
	if err := c.client.PutJSON(ctx, c.baseURL+"/networkdevice/"+id, body, &updated); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(updated.Fields.Updated))
	for _, f := range updated.Fields.Updated {
		oldValue, newValue := f.OldValue, f.NewValue
		// The directory echoes changed values verbatim, secrets included.
		if strings.Contains(strings.ToLower(f.Field), "secret") {
			oldValue, newValue = directory.MaskedSecret, directory.MaskedSecret
		}
		parts = append(parts, fmt.Sprintf("%s: %q -> %q", f.Field, oldValue, newValue))
	}
	return strings.Join(parts, "; "), nil
}

// listAll pages through an ERS listing until the reported total is
// exhausted.
func (c *Client) listAll(ctx context.Context, endpoint string) ([]resource, error) {
	var all []resource
	for page := 1; ; page++ {
		listURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, url.Values{
			"size": {fmt.Sprint(constants.DefaultPageSize)},
			"page": {fmt.Sprint(page)},
		}.Encode())

		var result searchResult
		if err := c.client.GetJSON(ctx, listURL, &result); err != nil {
			return nil, err
		}
		all = append(all, result.Result.Resources...)

		if result.Result.Total <= page*constants.DefaultPageSize {
			break
		}
	}
	logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Int("resources", len(all)).Msg("Directory listing fetched")
	return all, nil
}

func idFromLocation(location string) string {
	return path.Base(location)
}
