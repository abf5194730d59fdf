package syncer_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/netgrove/invsync/pkg/differ"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/inventory"
	"github.com/netgrove/invsync/pkg/mapper"
	"github.com/netgrove/invsync/pkg/syncer"
	"github.com/netgrove/invsync/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is an in-memory directory.Client that records the order
// of write calls and applies them to its state, so convergence can be
// checked by re-diffing after a sync run.
type fakeDirectory struct {
	groups  map[taxonomy.Path]string
	devices []directory.CurrentDevice
	nextID  int
	calls   []string

	failGroups  map[taxonomy.Path]error
	failDevices map[string]error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		groups:      make(map[taxonomy.Path]string),
		failGroups:  make(map[taxonomy.Path]error),
		failDevices: make(map[string]error),
	}
}

func (f *fakeDirectory) Verify(context.Context) error { return nil }

func (f *fakeDirectory) FetchCurrentGroups(context.Context) (map[taxonomy.Path]string, error) {
	out := make(map[taxonomy.Path]string, len(f.groups))
	for k, v := range f.groups {
		out[k] = v
	}
	return out, nil
}

func (f *fakeDirectory) FetchCurrentDevices(context.Context) ([]directory.CurrentDevice, error) {
	return append([]directory.CurrentDevice(nil), f.devices...), nil
}

func (f *fakeDirectory) CreateGroup(_ context.Context, path taxonomy.Path) (string, error) {
	f.calls = append(f.calls, "create-group "+path.String())
	if err := f.failGroups[path]; err != nil {
		return "", err
	}
	f.nextID++
	id := fmt.Sprintf("grp-%d", f.nextID)
	f.groups[path] = id
	return id, nil
}

func (f *fakeDirectory) CreateDevice(_ context.Context, device directory.Device) (string, error) {
	f.calls = append(f.calls, "create-device "+device.Name)
	if err := f.failDevices[device.Name]; err != nil {
		return "", err
	}
	f.nextID++
	id := fmt.Sprintf("dev-%d", f.nextID)
	f.devices = append(f.devices, directory.CurrentDevice{Device: device, ID: id})
	return id, nil
}

func (f *fakeDirectory) UpdateDevice(_ context.Context, id string, device directory.Device) (string, error) {
	f.calls = append(f.calls, "update-device "+device.Name)
	if err := f.failDevices[device.Name]; err != nil {
		return "", err
	}
	for i, d := range f.devices {
		if d.ID == id {
			f.devices[i] = directory.CurrentDevice{Device: device, ID: id}
			return "", nil
		}
	}
	return "", fmt.Errorf("no device with id %s", id)
}

func (f *fakeDirectory) currentState(t *testing.T) *directory.CurrentState {
	t.Helper()
	groups, err := f.FetchCurrentGroups(context.Background())
	require.NoError(t, err)
	devices, err := f.FetchCurrentDevices(context.Background())
	require.NoError(t, err)
	return &directory.CurrentState{Groups: groups, Devices: devices}
}

func desiredFixture() *directory.DesiredState {
	records := []inventory.Record{
		inventory.DeviceRecord(inventory.Device{
			Name: "rtr-01", PrimaryIP: "10.0.0.1/32", Site: "S1", Role: "Router",
			URL: "https://netbox.example.net/api/dcim/devices/1/",
		}),
		inventory.DeviceRecord(inventory.Device{
			Name: "sw-01", PrimaryIP: "10.0.0.2/32", Site: "S1", Role: "Switch",
			URL: "https://netbox.example.net/api/dcim/devices/2/",
		}),
	}
	return mapper.Build(records, mapper.Config{TACACSSecret: "tac"})
}

func TestRunCreatesGroupsBeforeDevices(t *testing.T) {
	dir := newFakeDirectory()
	desired := desiredFixture()
	diff := differ.Compute(desired, dir.currentState(t))

	result := syncer.New(dir).Run(context.Background(), diff)
	require.False(t, result.Failed())

	// Ordering invariant: every group create precedes every device write.
	lastGroup, firstDevice := -1, len(dir.calls)
	for i, call := range dir.calls {
		switch {
		case strings.HasPrefix(call, "create-group"):
			lastGroup = i
		case firstDevice == len(dir.calls):
			firstDevice = i
		}
	}
	assert.Less(t, lastGroup, firstDevice, "device write issued before group creation finished: %v", dir.calls)

	for _, g := range result.Groups {
		assert.Equal(t, syncer.GroupCreated, g.Status)
		assert.NotEmpty(t, g.ID)
	}
	for _, d := range result.Devices {
		assert.Equal(t, syncer.DeviceCreated, d.Status)
	}
}

func TestRunConvergence(t *testing.T) {
	dir := newFakeDirectory()
	desired := desiredFixture()

	// First run applies everything.
	first := syncer.New(dir).Run(context.Background(), differ.Compute(desired, dir.currentState(t)))
	require.False(t, first.Failed())
	require.Positive(t, first.Writes())

	// Re-diffing against the now-current state yields zero differences,
	// and a second run performs zero writes.
	rediff := differ.Compute(desired, dir.currentState(t))
	assert.False(t, rediff.HasChanges())

	callsBefore := len(dir.calls)
	second := syncer.New(dir).Run(context.Background(), rediff)
	assert.False(t, second.Failed())
	assert.Zero(t, second.Writes())
	assert.Equal(t, callsBefore, len(dir.calls), "converged sync must issue zero write calls")
}

func TestRunUpdatesIncorrectDevice(t *testing.T) {
	dir := newFakeDirectory()
	desired := desiredFixture()

	// Seed a converged directory, then drift one device's IP.
	syncer.New(dir).Run(context.Background(), differ.Compute(desired, dir.currentState(t)))
	for i := range dir.devices {
		if dir.devices[i].Name == "rtr-01" {
			dir.devices[i].IPAddress = "10.9.9.9"
		}
	}

	diff := differ.Compute(desired, dir.currentState(t))
	result := syncer.New(dir).Run(context.Background(), diff)
	require.False(t, result.Failed())

	var updated *syncer.DeviceResult
	for i := range result.Devices {
		if result.Devices[i].Name == "rtr-01" {
			updated = &result.Devices[i]
		}
	}
	require.NotNil(t, updated)
	assert.Equal(t, syncer.DeviceUpdated, updated.Status)
	assert.Contains(t, updated.Detail, differ.FieldIPAddress)
	assert.Contains(t, updated.Detail, "10.0.0.1/32")

	// The drifted device is now converged.
	assert.False(t, differ.Compute(desired, dir.currentState(t)).HasChanges())
}

func TestRunUpdateDetailMasksSecrets(t *testing.T) {
	dir := newFakeDirectory()
	records := []inventory.Record{
		inventory.DeviceRecord(inventory.Device{
			Name: "rtr-01", PrimaryIP: "10.0.0.1/32", Site: "S1", Role: "Router",
			URL: "https://netbox.example.net/api/dcim/devices/1/",
		}),
	}
	desired := mapper.Build(records, mapper.Config{TACACSSecret: "s3cr3t-value"})

	// Seed a converged directory, then rotate the TACACS secret so the
	// next run issues an update whose only change is a secret field.
	syncer.New(dir).Run(context.Background(), differ.Compute(desired, dir.currentState(t)))
	for i := range dir.devices {
		dir.devices[i].TACACS = &directory.TACACSSettings{SharedSecret: "stale-value"}
	}

	diff := differ.Compute(desired, dir.currentState(t))
	result := syncer.New(dir).Run(context.Background(), diff)
	require.False(t, result.Failed())

	// The fake directory returns no update detail, so the detail is built
	// from the recorded changes. It must name the field without carrying
	// either secret value.
	require.Len(t, result.Devices, 1)
	detail := result.Devices[0].Detail
	assert.Contains(t, detail, differ.FieldTACACSSecret)
	assert.Contains(t, detail, differ.MaskedSecret)
	assert.NotContains(t, detail, "s3cr3t-value")
	assert.NotContains(t, detail, "stale-value")
}

func TestRunContinuesOnError(t *testing.T) {
	dir := newFakeDirectory()
	desired := desiredFixture()
	dir.failGroups["Device Role#Device Role#Router"] = fmt.Errorf("500 internal server error")
	dir.failDevices["rtr-01"] = fmt.Errorf("409 conflict")

	diff := differ.Compute(desired, dir.currentState(t))
	result := syncer.New(dir).Run(context.Background(), diff)

	assert.True(t, result.Failed())

	var groupFailed, groupCreated, deviceFailed, deviceCreated int
	for _, g := range result.Groups {
		switch g.Status {
		case syncer.GroupFailed:
			groupFailed++
			assert.Contains(t, g.Err, "500")
		case syncer.GroupCreated:
			groupCreated++
		}
	}
	for _, d := range result.Devices {
		switch d.Status {
		case syncer.DeviceFailed:
			deviceFailed++
			assert.Contains(t, d.Err, "409")
		case syncer.DeviceCreated:
			deviceCreated++
		}
	}

	// One of each failed; everything else still processed.
	assert.Equal(t, 1, groupFailed)
	assert.Equal(t, 1, deviceFailed)
	assert.Positive(t, groupCreated)
	assert.Equal(t, 1, deviceCreated)
}

func TestResultSummary(t *testing.T) {
	r := &syncer.Result{}
	assert.Equal(t, "already in sync, no writes performed", r.Summary())

	r.Groups = append(r.Groups, syncer.GroupResult{Status: syncer.GroupCreated})
	r.Devices = append(r.Devices, syncer.DeviceResult{Status: syncer.DeviceUpdated})
	assert.Contains(t, r.Summary(), "1 created")
	assert.Contains(t, r.Summary(), "1 updated")
}
