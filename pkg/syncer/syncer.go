package syncer

import (
	"context"
	"fmt"
	"strings"

	"github.com/netgrove/invsync/pkg/differ"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/logging"
)

// Executor applies diffs against a directory client, fully sequentially.
// Group creation must complete before any device write because device
// membership assignment requires the groups to exist directory-side.
type Executor struct {
	client directory.Client
}

// New creates an Executor backed by the given directory client.
func New(client directory.Client) *Executor {
	return &Executor{client: client}
}

// Run applies the diff and returns the per-entity result report. All
// missing groups are processed first, then devices. A failed write is
// recorded and processing continues; correct entities produce no write
// call at all, so a run against a converged directory issues zero
// writes.
func (e *Executor) Run(ctx context.Context, diff *differ.Diff) *Result {
	result := &Result{}
	e.syncGroups(ctx, diff, result)
	e.syncDevices(ctx, diff, result)
	return result
}

func (e *Executor) syncGroups(ctx context.Context, diff *differ.Diff, result *Result) {
	log := logging.Ctx(ctx)

	for _, entry := range diff.Groups {
		if entry.Status == differ.GroupPresent {
			result.Groups = append(result.Groups, GroupResult{
				Path:   entry.Path,
				Status: GroupUnchanged,
				ID:     entry.ID,
			})
			continue
		}

		id, err := e.client.CreateGroup(ctx, entry.Path)
		if err != nil {
			werr := errors.WrapWrite("create", "group", entry.Path.String(), err)
			log.Error().Err(werr).Str("group", entry.Path.String()).Msg("Group create failed")
			result.Groups = append(result.Groups, GroupResult{
				Path:   entry.Path,
				Status: GroupFailed,
				Err:    werr.Error(),
			})
			continue
		}

		log.Info().Str("group", entry.Path.String()).Str("id", id).Msg("Group created")
		result.Groups = append(result.Groups, GroupResult{
			Path:   entry.Path,
			Status: GroupCreated,
			ID:     id,
		})
	}
}

func (e *Executor) syncDevices(ctx context.Context, diff *differ.Diff, result *Result) {
	log := logging.Ctx(ctx)

	for _, entry := range diff.Devices {
		switch entry.Status {
		case differ.DeviceCorrect:
			result.Devices = append(result.Devices, DeviceResult{
				Name:   entry.Name,
				Status: DeviceUnchanged,
			})

		case differ.DeviceMissing:
			id, err := e.client.CreateDevice(ctx, entry.Desired)
			if err != nil {
				werr := errors.WrapWrite("create", "device", entry.Name, err)
				log.Error().Err(werr).Str("device", entry.Name).Msg("Device create failed")
				result.Devices = append(result.Devices, DeviceResult{
					Name:   entry.Name,
					Status: DeviceFailed,
					Err:    werr.Error(),
				})
				continue
			}
			log.Info().Str("device", entry.Name).Str("id", id).Msg("Device created")
			result.Devices = append(result.Devices, DeviceResult{
				Name:   entry.Name,
				Status: DeviceCreated,
				Detail: fmt.Sprintf("created with id %s", id),
			})

		case differ.DeviceIncorrect:
			detail, err := e.client.UpdateDevice(ctx, entry.Current.ID, entry.Desired)
			if err != nil {
				werr := errors.WrapWrite("update", "device", entry.Name, err)
				log.Error().Err(werr).Str("device", entry.Name).Msg("Device update failed")
				result.Devices = append(result.Devices, DeviceResult{
					Name:   entry.Name,
					Status: DeviceFailed,
					Err:    werr.Error(),
				})
				continue
			}
			if detail == "" {
				detail = describeChanges(entry)
			}
			log.Info().Str("device", entry.Name).Str("detail", detail).Msg("Device updated")
			result.Devices = append(result.Devices, DeviceResult{
				Name:   entry.Name,
				Status: DeviceUpdated,
				Detail: detail,
			})
		}
	}
}

// describeChanges renders a device entry's changes as a result detail
// when the directory response carries none.
func describeChanges(entry differ.DeviceEntry) string {
	var parts []string
	for _, c := range entry.Changes {
		if c.Old != "" {
			parts = append(parts, fmt.Sprintf("%s: %q -> %q", c.Field, c.Old, c.New))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %q", c.Field, c.New))
		}
	}
	if n := len(entry.GroupsAdded); n > 0 {
		parts = append(parts, fmt.Sprintf("%d group(s) added", n))
	}
	if n := len(entry.GroupsRemoved); n > 0 {
		parts = append(parts, fmt.Sprintf("%d group(s) removed", n))
	}
	return strings.Join(parts, "; ")
}
