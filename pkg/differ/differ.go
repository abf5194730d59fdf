package differ

import (
	"fmt"
	"sort"

	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// Compute diffs the desired state against the current state. Entries are
// sorted (groups lexically, devices by name) so output is deterministic.
func Compute(desired *directory.DesiredState, current *directory.CurrentState) *Diff {
	diff := &Diff{}
	diffGroups(diff, desired.Groups, current.Groups)
	diffDevices(diff, desired, current)
	return diff
}

func diffGroups(diff *Diff, desired taxonomy.Set, current map[taxonomy.Path]string) {
	for _, path := range desired.Sorted() {
		entry := GroupEntry{Path: path, Status: GroupMissing}
		if id, ok := current[path]; ok {
			entry.Status = GroupPresent
			entry.ID = id
			diff.Summary.GroupsPresent++
		} else {
			diff.Summary.GroupsMissing++
		}
		diff.Groups = append(diff.Groups, entry)
	}

	for path := range current {
		if !desired.Has(path) {
			diff.ExtraGroups = append(diff.ExtraGroups, path)
		}
	}
	sort.Slice(diff.ExtraGroups, func(i, j int) bool {
		return diff.ExtraGroups[i] < diff.ExtraGroups[j]
	})
	diff.Summary.GroupsExtra = len(diff.ExtraGroups)
}

func diffDevices(diff *Diff, desired *directory.DesiredState, current *directory.CurrentState) {
	desiredNames := make(map[string]bool, len(desired.Devices))

	for _, want := range desired.Devices {
		desiredNames[want.Name] = true

		// Name match is exact: a current device differing in case or
		// whitespace is a different device and a create is proposed.
		have, ok := current.DeviceByName(want.Name)
		if !ok {
			entry := missingEntry(want)
			if holder := ipHolder(current, want); holder != "" {
				entry.Warnings = append(entry.Warnings,
					fmt.Sprintf("desired IP %s is already assigned to device %q", want.IPAddress, holder))
			}
			diff.Devices = append(diff.Devices, entry)
			diff.Summary.DevicesMissing++
			continue
		}

		entry := compareDevice(want, have)
		if holder := ipHolder(current, want); holder != "" {
			entry.Warnings = append(entry.Warnings,
				fmt.Sprintf("desired IP %s is already assigned to device %q", want.IPAddress, holder))
		}
		diff.Devices = append(diff.Devices, entry)
		if entry.Status == DeviceCorrect {
			diff.Summary.DevicesCorrect++
		} else {
			diff.Summary.DevicesIncorrect++
		}
	}

	sort.Slice(diff.Devices, func(i, j int) bool {
		return diff.Devices[i].Name < diff.Devices[j].Name
	})

	for _, have := range current.Devices {
		if !desiredNames[have.Name] {
			diff.ExtraDevices = append(diff.ExtraDevices, have.Name)
		}
	}
	sort.Strings(diff.ExtraDevices)
	diff.Summary.DevicesExtra = len(diff.ExtraDevices)
}

// missingEntry reports the entire desired record as the change.
func missingEntry(want directory.Device) DeviceEntry {
	changes := []FieldChange{
		{Field: FieldDescription, New: want.Description},
		{Field: FieldIPAddress, New: formatIP(want)},
	}
	if want.TACACS != nil {
		changes = append(changes, FieldChange{Field: FieldTACACSSecret, New: MaskedSecret})
	}
	if want.RADIUS != nil {
		changes = append(changes, FieldChange{Field: FieldRADIUSSecret, New: MaskedSecret})
	}
	return DeviceEntry{
		Name:        want.Name,
		Status:      DeviceMissing,
		Desired:     want,
		Changes:     changes,
		GroupsAdded: want.Groups.Sorted(),
	}
}

func compareDevice(want directory.Device, have directory.CurrentDevice) DeviceEntry {
	entry := DeviceEntry{
		Name:    want.Name,
		Status:  DeviceCorrect,
		Desired: want,
		Current: &have,
	}

	if want.Description != have.Description {
		entry.Changes = append(entry.Changes, FieldChange{
			Field: FieldDescription,
			Old:   have.Description,
			New:   want.Description,
		})
	}

	if want.IPAddress != have.IPAddress || want.Mask != have.Mask {
		entry.Changes = append(entry.Changes, FieldChange{
			Field: FieldIPAddress,
			Old:   formatIP(have.Device),
			New:   formatIP(want),
		})
	}

	// Protocols the job leaves unconfigured are never "fixed": only
	// compare a protocol when the desired record carries it.
	if want.TACACS != nil {
		if have.TACACS == nil || have.TACACS.SharedSecret != want.TACACS.SharedSecret {
			entry.Changes = append(entry.Changes, FieldChange{
				Field: FieldTACACSSecret,
				Old:   maskValue(tacacsSecret(have.Device)),
				New:   MaskedSecret,
			})
		}
	}
	if want.RADIUS != nil {
		if have.RADIUS == nil || have.RADIUS.SharedSecret != want.RADIUS.SharedSecret {
			entry.Changes = append(entry.Changes, FieldChange{
				Field: FieldRADIUSSecret,
				Old:   maskValue(radiusSecret(have.Device)),
				New:   MaskedSecret,
			})
		}
	}

	// Memberships compare as sets, order-insensitive.
	for _, p := range want.Groups.Sorted() {
		if !have.Groups.Has(p) {
			entry.GroupsAdded = append(entry.GroupsAdded, p)
		}
	}
	for _, p := range have.Groups.Sorted() {
		if !want.Groups.Has(p) {
			entry.GroupsRemoved = append(entry.GroupsRemoved, p)
		}
	}

	if len(entry.Changes) > 0 || len(entry.GroupsAdded) > 0 || len(entry.GroupsRemoved) > 0 {
		entry.Status = DeviceIncorrect
	}
	return entry
}

// ipHolder returns the name of a current device other than the desired
// one holding the desired IP, or "" when none does. Skipping the
// name-matched device keeps the advisory independent of the order the
// directory listed its devices in.
func ipHolder(current *directory.CurrentState, want directory.Device) string {
	for _, have := range current.Devices {
		if have.Name != want.Name && have.IPAddress == want.IPAddress {
			return have.Name
		}
	}
	return ""
}

func formatIP(d directory.Device) string {
	if d.IPAddress == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d", d.IPAddress, d.Mask)
}

// maskValue hides a secret value, keeping "" for "was not set" so the
// rendered change still distinguishes set from changed.
func maskValue(secret string) string {
	if secret == "" {
		return ""
	}
	return MaskedSecret
}

func tacacsSecret(d directory.Device) string {
	if d.TACACS == nil {
		return ""
	}
	return d.TACACS.SharedSecret
}

func radiusSecret(d directory.Device) string {
	if d.RADIUS == nil {
		return ""
	}
	return d.RADIUS.SharedSecret
}
