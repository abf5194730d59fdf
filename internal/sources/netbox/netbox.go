// Package netbox implements the inventory.Source interface against a
// NetBox-style DCIM/IPAM REST API.
package netbox

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/netgrove/invsync/internal/transport"
	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/inventory"
	"github.com/netgrove/invsync/pkg/logging"
)

// Config carries the connection settings for the inventory API.
type Config struct {
	URL   string // base URL, e.g. https://netbox.example.net
	Token string
}

// Source fetches inventory records from a NetBox-style API.
type Source struct {
	baseURL string
	client  *transport.Client
}

// New creates a Source from the given config.
func New(cfg Config) (*Source, error) {
	if cfg.URL == "" {
		return nil, &errors.ConfigError{Section: "netbox", Message: "url is required"}
	}
	return &Source{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client:  transport.New("netbox", &transport.TokenAuth{Token: cfg.Token}),
	}, nil
}

// Verify checks connectivity and credentials by reading the status
// endpoint.
func (s *Source) Verify(ctx context.Context) error {
	var status struct {
		Version string `json:"netbox-version"`
	}
	if err := s.client.GetJSON(ctx, s.baseURL+"/api/status/", &status); err != nil {
		return err
	}
	logging.Ctx(ctx).Debug().Str("version", status.Version).Msg("Inventory reachable")
	return nil
}

// FetchInventory returns all device and virtual machine records
// matching the filter. Tenant groups and cluster sites are not nested
// in the list payloads, so they are resolved through one extra paged
// read each when the result set references them.
func (s *Source) FetchInventory(ctx context.Context, filter inventory.Filter) ([]inventory.Record, error) {
	devices, err := fetchAll[apiDevice](ctx, s.client, s.listURL("/api/dcim/devices/", deviceQuery(filter)))
	if err != nil {
		return nil, err
	}

	// A device-type filter cannot match virtual machines.
	var vms []apiVM
	if len(filter.DeviceTypes) == 0 {
		vms, err = fetchAll[apiVM](ctx, s.client, s.listURL("/api/virtualization/virtual-machines/", vmQuery(filter)))
		if err != nil {
			return nil, err
		}
	}

	tenantGroups, err := s.tenantGroups(ctx, devices, vms)
	if err != nil {
		return nil, err
	}
	clusterSites, err := s.clusterSites(ctx, vms)
	if err != nil {
		return nil, err
	}

	records := make([]inventory.Record, 0, len(devices)+len(vms))
	for _, d := range devices {
		records = append(records, d.record(tenantGroups))
	}
	for _, vm := range vms {
		records = append(records, vm.record(tenantGroups, clusterSites))
	}

	logging.Ctx(ctx).Debug().
		Int("devices", len(devices)).
		Int("vms", len(vms)).
		Msg("Inventory records fetched")
	return records, nil
}

func (s *Source) listURL(path string, query url.Values) string {
	query.Set("limit", fmt.Sprint(constants.MaxPageSize))
	return s.baseURL + path + "?" + query.Encode()
}

func deviceQuery(filter inventory.Filter) url.Values {
	q := vmQuery(filter)
	for _, v := range filter.DeviceTypes {
		q.Add("device_type", v)
	}
	return q
}

func vmQuery(filter inventory.Filter) url.Values {
	q := url.Values{}
	for _, v := range filter.Sites {
		q.Add("site", v)
	}
	for _, v := range filter.Tenants {
		q.Add("tenant", v)
	}
	for _, v := range filter.Statuses {
		q.Add("status", v)
	}
	for _, v := range filter.DeviceRoles {
		q.Add("role", v)
	}
	return q
}

// tenantGroups resolves tenant name to tenant-group name for the
// tenants the result set references.
func (s *Source) tenantGroups(ctx context.Context, devices []apiDevice, vms []apiVM) (map[string]string, error) {
	needed := false
	for _, d := range devices {
		if d.Tenant != nil {
			needed = true
		}
	}
	for _, vm := range vms {
		if vm.Tenant != nil {
			needed = true
		}
	}
	if !needed {
		return nil, nil
	}

	tenants, err := fetchAll[apiTenant](ctx, s.client, s.listURL("/api/tenancy/tenants/", url.Values{}))
	if err != nil {
		return nil, err
	}
	groups := make(map[string]string, len(tenants))
	for _, t := range tenants {
		groups[t.Name] = nameOf(t.Group)
	}
	return groups, nil
}

// clusterSites resolves cluster name to site name for the clusters the
// VM result set references.
func (s *Source) clusterSites(ctx context.Context, vms []apiVM) (map[string]string, error) {
	needed := false
	for _, vm := range vms {
		if vm.Cluster != nil {
			needed = true
		}
	}
	if !needed {
		return nil, nil
	}

	clusters, err := fetchAll[apiCluster](ctx, s.client, s.listURL("/api/virtualization/clusters/", url.Values{}))
	if err != nil {
		return nil, err
	}
	sites := make(map[string]string, len(clusters))
	for _, c := range clusters {
		sites[c.Name] = nameOf(c.Site)
	}
	return sites, nil
}

// page is the standard list envelope: count, next-page URL, results.
type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// fetchAll follows next-page URLs until the listing is exhausted.
func fetchAll[T any](ctx context.Context, client *transport.Client, listURL string) ([]T, error) {
	var all []T
	next := &listURL
	for next != nil {
		var p page[T]
		if err := client.GetJSON(ctx, *next, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		next = p.Next
	}
	return all, nil
}
