package taxonomy

import (
	"github.com/netgrove/invsync/pkg/inventory"
)

// LocationPath returns the Location tree node for a record.
//
// Physical devices nest under their site, then their rack when one is
// assigned. Virtual machines nest their cluster under the cluster's
// site; a cluster with no site attaches directly under the Location
// base, and a VM with no cluster attaches to its own site node.
func LocationPath(r inventory.Record) Path {
	if r.VM != nil {
		if r.VM.Cluster != "" {
			return LocationBase.Join(r.VM.ClusterSite, r.VM.Cluster)
		}
		return LocationBase.Join(r.VM.Site)
	}
	return LocationBase.Join(r.Device.Site, r.Device.Rack)
}

// DeviceTypePath returns the Device Type tree node for a record:
// manufacturer then model for physical devices, and the fixed
// "General VM" node for virtual machines.
func DeviceTypePath(r inventory.Record) Path {
	if r.VM != nil {
		return DeviceTypeBase.Join(GeneralVMSegment)
	}
	return DeviceTypeBase.Join(r.Device.Manufacturer, r.Device.Model)
}

// DeviceRolePath returns the Device Role tree node for a record. A
// record with no role resolves to the bare role base so every record
// still contributes exactly one path under the root.
func DeviceRolePath(r inventory.Record) Path {
	return DeviceRoleBase.Join(r.Role())
}

// TenantPath returns the Tenant tree node for a record: tenant group
// then tenant, either of which may be absent.
func TenantPath(r inventory.Record) Path {
	tenant, group := r.Tenancy()
	return TenantBase.Join(group, tenant)
}

// Paths returns the record's group memberships, exactly one path under
// each of the four root categories.
func Paths(r inventory.Record) []Path {
	return []Path{
		LocationPath(r),
		DeviceTypePath(r),
		DeviceRolePath(r),
		TenantPath(r),
	}
}

// Build derives the desired group set for a slice of inventory records:
// the union of every record's paths, deduplicated by path equality.
// The result is identical regardless of record ordering.
func Build(records []inventory.Record) Set {
	set := make(Set)
	for _, r := range records {
		for _, p := range Paths(r) {
			set.Add(p)
		}
	}
	return set
}
