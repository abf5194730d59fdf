package netbox

import "github.com/netgrove/invsync/pkg/inventory"

// Nested object shapes from the inventory API. List payloads carry
// brief nested objects: names only, no second-level nesting.

type named struct {
	Name string `json:"name"`
}

type apiDeviceType struct {
	Model        string `json:"model"`
	Manufacturer *named `json:"manufacturer"`
}

type apiIPAddress struct {
	Address string `json:"address"` // CIDR form
}

type apiStatus struct {
	Value string `json:"value"`
}

type apiDevice struct {
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	DisplayURL string         `json:"display_url"`
	DeviceType *apiDeviceType `json:"device_type"`
	// Role was named device_role before NetBox 3.6; accept both.
	Role       *named        `json:"role"`
	DeviceRole *named        `json:"device_role"`
	Tenant     *named        `json:"tenant"`
	Site       *named        `json:"site"`
	Rack       *named        `json:"rack"`
	PrimaryIP  *apiIPAddress `json:"primary_ip"`
	Status     *apiStatus    `json:"status"`
}

type apiVM struct {
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	DisplayURL string        `json:"display_url"`
	Site       *named        `json:"site"`
	Cluster    *named        `json:"cluster"`
	Role       *named        `json:"role"`
	Tenant     *named        `json:"tenant"`
	PrimaryIP  *apiIPAddress `json:"primary_ip"`
	Status     *apiStatus    `json:"status"`
}

type apiTenant struct {
	Name  string `json:"name"`
	Group *named `json:"group"`
}

type apiCluster struct {
	Name string `json:"name"`
	Site *named `json:"site"`
}

func nameOf(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}

func (d apiDevice) record(tenantGroups map[string]string) inventory.Record {
	dev := inventory.Device{
		Name:      d.Name,
		URL:       recordURL(d.DisplayURL, d.URL),
		PrimaryIP: ipOf(d.PrimaryIP),
		Site:      nameOf(d.Site),
		Rack:      nameOf(d.Rack),
		Tenant:    nameOf(d.Tenant),
		Status:    statusOf(d.Status),
	}
	if d.DeviceType != nil {
		dev.Model = d.DeviceType.Model
		dev.Manufacturer = nameOf(d.DeviceType.Manufacturer)
	}
	dev.Role = nameOf(d.Role)
	if dev.Role == "" {
		dev.Role = nameOf(d.DeviceRole)
	}
	dev.TenantGroup = tenantGroups[dev.Tenant]
	return inventory.DeviceRecord(dev)
}

func (v apiVM) record(tenantGroups, clusterSites map[string]string) inventory.Record {
	vm := inventory.VirtualMachine{
		Name:      v.Name,
		URL:       recordURL(v.DisplayURL, v.URL),
		PrimaryIP: ipOf(v.PrimaryIP),
		Site:      nameOf(v.Site),
		Cluster:   nameOf(v.Cluster),
		Role:      nameOf(v.Role),
		Tenant:    nameOf(v.Tenant),
		Status:    statusOf(v.Status),
	}
	vm.TenantGroup = tenantGroups[vm.Tenant]
	vm.ClusterSite = clusterSites[vm.Cluster]
	return inventory.VMRecord(vm)
}

func recordURL(display, api string) string {
	if display != "" {
		return display
	}
	return api
}

func ipOf(ip *apiIPAddress) string {
	if ip == nil {
		return ""
	}
	return ip.Address
}

func statusOf(s *apiStatus) string {
	if s == nil {
		return ""
	}
	return s.Value
}
