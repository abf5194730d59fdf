// Package syncer applies a classified diff against the directory as an
// ordered sequence of create/update operations and collects a
// per-entity result report.
package syncer

import (
	"fmt"

	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// GroupStatus is the sync outcome for one group path.
type GroupStatus string

const (
	// GroupCreated means the group was created this run.
	GroupCreated GroupStatus = "created"
	// GroupUnchanged means the group already existed; no write was issued.
	GroupUnchanged GroupStatus = "unchanged"
	// GroupFailed means the create call failed.
	GroupFailed GroupStatus = "failed"
)

// DeviceStatus is the sync outcome for one device.
type DeviceStatus string

const (
	// DeviceCreated means the device was created this run.
	DeviceCreated DeviceStatus = "created"
	// DeviceUpdated means the device existed and was updated.
	DeviceUpdated DeviceStatus = "updated"
	// DeviceUnchanged means the device was already correct; no write
	// was issued.
	DeviceUnchanged DeviceStatus = "unchanged"
	// DeviceFailed means the create or update call failed.
	DeviceFailed DeviceStatus = "failed"
)

// GroupResult is the sync outcome for one group path.
type GroupResult struct {
	Path   taxonomy.Path
	Status GroupStatus
	// ID is the directory identifier: existing for unchanged groups,
	// newly assigned for created ones.
	ID  string
	Err string
}

// DeviceResult is the sync outcome for one device.
type DeviceResult struct {
	Name   string
	Status DeviceStatus
	// Detail is a human-readable description of what changed.
	Detail string
	Err    string
}

// Result is the per-entity report of one sync run. Skipped carries the
// records excluded by validation so the report distinguishes skips from
// write failures.
type Result struct {
	Groups  []GroupResult
	Devices []DeviceResult
	Skipped []directory.Skip
}

// Failed reports whether any entity failed to write. The caller derives
// its aggregate exit signal from this.
func (r *Result) Failed() bool {
	for _, g := range r.Groups {
		if g.Status == GroupFailed {
			return true
		}
	}
	for _, d := range r.Devices {
		if d.Status == DeviceFailed {
			return true
		}
	}
	return false
}

// Writes returns the number of write calls issued (successful or not).
func (r *Result) Writes() int {
	n := 0
	for _, g := range r.Groups {
		if g.Status != GroupUnchanged {
			n++
		}
	}
	for _, d := range r.Devices {
		if d.Status != DeviceUnchanged {
			n++
		}
	}
	return n
}

// Summary returns a human-readable one-line summary of the run.
func (r *Result) Summary() string {
	var gc, gf, dc, du, df int
	for _, g := range r.Groups {
		switch g.Status {
		case GroupCreated:
			gc++
		case GroupFailed:
			gf++
		}
	}
	for _, d := range r.Devices {
		switch d.Status {
		case DeviceCreated:
			dc++
		case DeviceUpdated:
			du++
		case DeviceFailed:
			df++
		}
	}
	if gc+gf+dc+du+df == 0 {
		return "already in sync, no writes performed"
	}
	return fmt.Sprintf("groups: %d created, %d failed; devices: %d created, %d updated, %d failed",
		gc, gf, dc, du, df)
}
