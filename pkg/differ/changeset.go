// Package differ compares a desired {groups, devices} snapshot against
// the directory's current snapshot and produces a classified diff.
package differ

import (
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// DeviceStatus classifies one desired device against the current state.
type DeviceStatus string

const (
	// DeviceCorrect means the device exists and no field or group
	// membership differs.
	DeviceCorrect DeviceStatus = "correct"
	// DeviceIncorrect means the device exists but at least one field
	// or group membership differs.
	DeviceIncorrect DeviceStatus = "incorrect"
	// DeviceMissing means no current device matches the desired name.
	DeviceMissing DeviceStatus = "missing"
)

// GroupStatus classifies one desired group path against the current state.
type GroupStatus string

const (
	// GroupPresent means an equal path exists in the directory.
	GroupPresent GroupStatus = "present"
	// GroupMissing means the path must be created.
	GroupMissing GroupStatus = "missing"
)

// Field names used in FieldChange entries.
const (
	FieldDescription  = "description"
	FieldIPAddress    = "ip_address"
	FieldTACACSSecret = "tacacs_secret"
	FieldRADIUSSecret = "radius_secret"
)

// MaskedSecret is the stand-in recorded for shared-secret values in
// field changes, so no rendering or serialization of a diff can leak
// them.
const MaskedSecret = directory.MaskedSecret

// FieldChange records one differing device field.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// DeviceEntry is the diff result for one desired device.
type DeviceEntry struct {
	Name    string
	Status  DeviceStatus
	Desired directory.Device
	// Current is the matched directory record, nil when Status is
	// DeviceMissing. Its ID is what update calls are keyed by.
	Current *directory.CurrentDevice
	// Changes lists differing fields. For a missing device it lists
	// every desired field (old values empty).
	Changes []FieldChange
	// GroupsAdded and GroupsRemoved are the set-level membership
	// differences, order-insensitive.
	GroupsAdded   []taxonomy.Path
	GroupsRemoved []taxonomy.Path
	// Warnings carries advisory findings that do not affect status,
	// such as the desired IP already being held by another device.
	Warnings []string
}

// GroupEntry is the diff result for one desired group path.
type GroupEntry struct {
	Path   taxonomy.Path
	Status GroupStatus
	// ID is the directory identifier of a present group.
	ID string
}

// Summary holds the diff's aggregate counts.
type Summary struct {
	GroupsPresent    int
	GroupsMissing    int
	GroupsExtra      int
	DevicesCorrect   int
	DevicesIncorrect int
	DevicesMissing   int
	DevicesExtra     int
}

// TotalChanges is the number of entities requiring a write.
func (s Summary) TotalChanges() int {
	return s.GroupsMissing + s.DevicesIncorrect + s.DevicesMissing
}

// Diff is the classified comparison of desired and current state.
// Extras (groups or devices present in the directory but absent from
// the desired set) are reported and never removed: cleanup is a
// deliberate non-feature, not an oversight.
type Diff struct {
	Groups      []GroupEntry
	ExtraGroups []taxonomy.Path
	Devices     []DeviceEntry
	// ExtraDevices lists current device names absent from the desired
	// set, informational only.
	ExtraDevices []string
	Summary      Summary
}

// HasChanges reports whether the diff requires any write.
func (d *Diff) HasChanges() bool {
	return d.Summary.TotalChanges() > 0
}

// MissingGroups returns the group paths that must be created, in
// lexical order.
func (d *Diff) MissingGroups() []taxonomy.Path {
	var out []taxonomy.Path
	for _, g := range d.Groups {
		if g.Status == GroupMissing {
			out = append(out, g.Path)
		}
	}
	return out
}
