package directory

import (
	"sort"

	"github.com/netgrove/invsync/pkg/taxonomy"
)

// Skip records an inventory record excluded from the desired state by a
// validation rule, with the reason it was excluded. Skips surface in the
// final report so the caller can tell skipped records from failed writes.
type Skip struct {
	Name   string
	Reason string
}

// DesiredState is the target configuration computed from inventory
// records and job configuration. It is recomputed from scratch every
// run and never persisted: it is only ever diffed against CurrentState.
type DesiredState struct {
	Groups  taxonomy.Set
	Devices []Device
	Skipped []Skip
}

// NewDesiredState returns an empty desired state ready to accumulate
// job results.
func NewDesiredState() *DesiredState {
	return &DesiredState{Groups: make(taxonomy.Set)}
}

// Merge folds another desired state into this one. Device names are
// unique within a run; when a later job produces a device with a name
// already present, the later record replaces the earlier one.
func (ds *DesiredState) Merge(other *DesiredState) {
	ds.Groups.Union(other.Groups)
	for _, d := range other.Devices {
		ds.upsert(d)
	}
	ds.Skipped = append(ds.Skipped, other.Skipped...)
}

func (ds *DesiredState) upsert(d Device) {
	for i, existing := range ds.Devices {
		if existing.Name == d.Name {
			ds.Devices[i] = d
			return
		}
	}
	ds.Devices = append(ds.Devices, d)
}

// SortDevices orders the device list by name for deterministic output.
func (ds *DesiredState) SortDevices() {
	sort.Slice(ds.Devices, func(i, j int) bool {
		return ds.Devices[i].Name < ds.Devices[j].Name
	})
}

// CurrentState is the observed directory configuration: group paths with
// their directory identifiers and the device list with theirs.
type CurrentState struct {
	Groups  map[taxonomy.Path]string // path -> directory group identifier
	Devices []CurrentDevice
}

// NewCurrentState returns an empty current state.
func NewCurrentState() *CurrentState {
	return &CurrentState{Groups: make(map[taxonomy.Path]string)}
}

// DeviceByName returns the current device with the given name, matching
// exactly: a name differing in case or whitespace is a different device.
func (cs *CurrentState) DeviceByName(name string) (CurrentDevice, bool) {
	for _, d := range cs.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return CurrentDevice{}, false
}
