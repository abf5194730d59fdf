// Package inventory defines the source-of-truth inventory data model:
// the records pulled from the inventory system, the filter used to select
// them, and the Source interface the reconciliation engine consumes.
package inventory

// Kind identifies which variant an inventory record holds.
type Kind string

const (
	// KindDevice is a physical device record.
	KindDevice Kind = "device"
	// KindVirtualMachine is a virtual machine record.
	KindVirtualMachine Kind = "vm"
)

// Device is a physical device pulled from the inventory system.
type Device struct {
	Name         string
	URL          string // canonical inventory URL of this record
	PrimaryIP    string // CIDR form (e.g. "10.0.0.1/24"); empty when unassigned
	Site         string
	Rack         string // optional
	Manufacturer string
	Model        string
	Role         string
	Tenant       string // optional
	TenantGroup  string // optional
	Status       string
}

// VirtualMachine is a virtual machine pulled from the inventory system.
// VMs carry no manufacturer or model; their placement is a cluster that
// may or may not be tied to a site.
type VirtualMachine struct {
	Name        string
	URL         string
	PrimaryIP   string
	Site        string // optional
	Cluster     string // optional
	ClusterSite string // site of the cluster, when the cluster has one
	Role        string // optional
	Tenant      string // optional
	TenantGroup string // optional
	Status      string
}

// Record is a tagged variant over the two inventory cases. Exactly one
// of Device or VM is non-nil.
type Record struct {
	Device *Device
	VM     *VirtualMachine
}

// DeviceRecord wraps a physical device as a Record.
func DeviceRecord(d Device) Record { return Record{Device: &d} }

// VMRecord wraps a virtual machine as a Record.
func VMRecord(vm VirtualMachine) Record { return Record{VM: &vm} }

// Kind returns the variant tag of the record.
func (r Record) Kind() Kind {
	if r.VM != nil {
		return KindVirtualMachine
	}
	return KindDevice
}

// Name returns the record's name, the natural key within a job run.
func (r Record) Name() string {
	if r.VM != nil {
		return r.VM.Name
	}
	if r.Device != nil {
		return r.Device.Name
	}
	return ""
}

// URL returns the canonical inventory URL of the record.
func (r Record) URL() string {
	if r.VM != nil {
		return r.VM.URL
	}
	if r.Device != nil {
		return r.Device.URL
	}
	return ""
}

// PrimaryIP returns the record's primary IP in CIDR form, or "" when
// no primary IP is assigned.
func (r Record) PrimaryIP() string {
	if r.VM != nil {
		return r.VM.PrimaryIP
	}
	if r.Device != nil {
		return r.Device.PrimaryIP
	}
	return ""
}

// Role returns the device or VM role name, or "" when unset.
func (r Record) Role() string {
	if r.VM != nil {
		return r.VM.Role
	}
	if r.Device != nil {
		return r.Device.Role
	}
	return ""
}

// Tenancy returns the record's tenant and tenant-group names, either of
// which may be empty.
func (r Record) Tenancy() (tenant, group string) {
	if r.VM != nil {
		return r.VM.Tenant, r.VM.TenantGroup
	}
	if r.Device != nil {
		return r.Device.Tenant, r.Device.TenantGroup
	}
	return "", ""
}
