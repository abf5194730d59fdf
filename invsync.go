// Package invsync reconciles a network inventory against a AAA device
// directory. It recomputes the desired directory state from inventory
// records on every run, diffs it against the directory's current state,
// and applies the difference as an ordered sequence of group and device
// writes.
package invsync

import (
	"context"

	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/differ"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/inventory"
	"github.com/netgrove/invsync/pkg/logging"
	"github.com/netgrove/invsync/pkg/mapper"
	"github.com/netgrove/invsync/pkg/syncer"
)

// Job is one reconciliation unit: an inventory query plus the protocol
// secrets its devices should carry. Jobs run in order; when two jobs
// select the same device, the later job's rendering wins.
type Job struct {
	Name      string
	Query     inventory.Filter
	Protocols mapper.Config
}

// Plan is the read-only outcome of one planning pass: the desired state
// computed from inventory, the directory's current state, and their
// classified difference.
type Plan struct {
	Desired *directory.DesiredState
	Current *directory.CurrentState
	Diff    *differ.Diff
}

// Engine wires an inventory source against a directory client and runs
// reconciliation jobs between them.
type Engine struct {
	source    inventory.Source
	directory directory.Client
	jobs      []Job
}

// New creates an Engine with the given options. A source, a directory
// client, and at least one job are required.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.source == nil {
		return nil, &errors.ConfigError{Section: "source", Message: "inventory source is required"}
	}
	if e.directory == nil {
		return nil, &errors.ConfigError{Section: "directory", Message: "directory client is required"}
	}
	if len(e.jobs) == 0 {
		return nil, &errors.ConfigError{Section: "jobs", Message: "at least one job is required"}
	}
	return e, nil
}

// Verify checks connectivity and credentials against both systems
// without performing any writes. Each check gets its own deadline so an
// unreachable system fails fast instead of holding the full request
// timeout twice.
func (e *Engine) Verify(ctx context.Context) error {
	sourceCtx, cancel := context.WithTimeout(ctx, constants.ConnectivityCheckTimeout)
	defer cancel()
	if err := e.source.Verify(sourceCtx); err != nil {
		return err
	}

	directoryCtx, cancel := context.WithTimeout(ctx, constants.ConnectivityCheckTimeout)
	defer cancel()
	return e.directory.Verify(directoryCtx)
}

// Desired recomputes the desired directory state from inventory. Every
// job's query is fetched and rendered fresh: nothing is carried over
// from previous runs.
func (e *Engine) Desired(ctx context.Context) (*directory.DesiredState, error) {
	desired := directory.NewDesiredState()
	owner := make(map[string]string)
	for _, job := range e.jobs {
		log := logging.Ctx(logging.WithJob(ctx, job.Name))

		records, err := e.source.FetchInventory(ctx, job.Query)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("records", len(records)).Msg("Inventory fetched")

		built := mapper.Build(records, job.Protocols)
		for _, d := range built.Devices {
			if prev, ok := owner[d.Name]; ok && prev != job.Name {
				log.Warn().
					Str("device", d.Name).
					Str("previous_job", prev).
					Msg("Device selected by multiple jobs, later job wins")
			}
			owner[d.Name] = job.Name
		}
		desired.Merge(built)
	}
	desired.SortDevices()
	return desired, nil
}

// Current reads the directory's group and device inventory.
func (e *Engine) Current(ctx context.Context) (*directory.CurrentState, error) {
	groups, err := e.directory.FetchCurrentGroups(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := e.directory.FetchCurrentDevices(ctx)
	if err != nil {
		return nil, err
	}
	return &directory.CurrentState{Groups: groups, Devices: devices}, nil
}

// Plan computes desired state, current state, and their diff without
// writing anything. The verify command is a Plan followed by reporting.
func (e *Engine) Plan(ctx context.Context) (*Plan, error) {
	desired, err := e.Desired(ctx)
	if err != nil {
		return nil, err
	}
	current, err := e.Current(ctx)
	if err != nil {
		return nil, err
	}
	diff := differ.Compute(desired, current)

	logging.Ctx(ctx).Info().
		Int("groups_missing", diff.Summary.GroupsMissing).
		Int("devices_missing", diff.Summary.DevicesMissing).
		Int("devices_incorrect", diff.Summary.DevicesIncorrect).
		Int("devices_correct", diff.Summary.DevicesCorrect).
		Msg("Plan computed")

	return &Plan{Desired: desired, Current: current, Diff: diff}, nil
}

// Sync plans and then applies the diff. Group creation completes before
// any device write, failed writes are recorded and skipped over, and a
// converged directory produces zero writes.
func (e *Engine) Sync(ctx context.Context) (*Plan, *syncer.Result, error) {
	plan, err := e.Plan(ctx)
	if err != nil {
		return nil, nil, err
	}
	result := syncer.New(e.directory).Run(ctx, plan.Diff)
	result.Skipped = plan.Desired.Skipped
	return plan, result, nil
}
