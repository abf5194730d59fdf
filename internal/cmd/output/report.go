package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/netgrove/invsync/pkg/differ"
	"github.com/netgrove/invsync/pkg/syncer"
)

// maskedSecret replaces secret values in rendered reports. The diff
// engine already records secret changes masked; this is a second guard
// for detail strings built from directory API responses.
const maskedSecret = differ.MaskedSecret

var headerCaser = cases.Title(language.English)

func headers(keys ...string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = headerCaser.String(strings.ReplaceAll(k, "_", " "))
	}
	return out
}

// GroupReport renders the group half of a diff, extras included.
func GroupReport(diff *differ.Diff) Data {
	data := Data{
		Title:   "Group paths",
		Headers: headers("group_path", "status"),
	}
	for _, g := range diff.Groups {
		data.Rows = append(data.Rows, []string{g.Path.String(), string(g.Status)})
	}
	for _, p := range diff.ExtraGroups {
		data.Rows = append(data.Rows, []string{p.String(), "extra (kept)"})
	}
	return data
}

// DeviceReport renders the device half of a diff, extras included.
// Secret field values are masked.
func DeviceReport(diff *differ.Diff) Data {
	data := Data{
		Title:   "Devices",
		Headers: headers("device", "status", "changes", "warnings"),
	}
	for _, d := range diff.Devices {
		data.Rows = append(data.Rows, []string{
			d.Name,
			string(d.Status),
			describeEntry(d),
			strings.Join(d.Warnings, "; "),
		})
	}
	for _, name := range diff.ExtraDevices {
		data.Rows = append(data.Rows, []string{name, "extra (kept)", "", ""})
	}
	return data
}

// SyncReport renders a sync run's per-entity results.
func SyncReport(result *syncer.Result) Data {
	data := Data{
		Title:   "Sync results",
		Headers: headers("entity", "name", "status", "detail"),
	}
	for _, g := range result.Groups {
		detail := g.Err
		if detail == "" {
			detail = g.ID
		}
		data.Rows = append(data.Rows, []string{"group", g.Path.String(), string(g.Status), detail})
	}
	for _, d := range result.Devices {
		detail := d.Err
		if detail == "" {
			detail = d.Detail
		}
		data.Rows = append(data.Rows, []string{"device", d.Name, string(d.Status), detail})
	}
	for _, s := range result.Skipped {
		data.Rows = append(data.Rows, []string{"device", s.Name, "skipped", s.Reason})
	}
	return data
}

// describeEntry renders a device entry's field changes and membership
// moves in one cell.
func describeEntry(d differ.DeviceEntry) string {
	var parts []string
	for _, c := range d.Changes {
		oldValue, newValue := c.Old, c.New
		if strings.Contains(c.Field, "secret") {
			if oldValue != "" {
				oldValue = maskedSecret
			}
			if newValue != "" {
				newValue = maskedSecret
			}
		}
		if oldValue == "" {
			parts = append(parts, fmt.Sprintf("%s: %s", c.Field, newValue))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", c.Field, oldValue, newValue))
	}
	if n := len(d.GroupsAdded); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d group(s)", n))
	}
	if n := len(d.GroupsRemoved); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d group(s)", n))
	}
	return strings.Join(parts, "; ")
}
