package output_test

import (
	"bytes"
	"testing"

	"github.com/netgrove/invsync/internal/cmd/output"
	"github.com/netgrove/invsync/pkg/differ"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/syncer"
	"github.com/netgrove/invsync/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    output.Format
		wantErr bool
	}{
		{"table", output.FormatTable, false},
		{"JSON", output.FormatJSON, false},
		{"yaml", output.FormatYAML, false},
		{"", output.Format(""), false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := output.ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)
	require.NoError(t, f.Format(&buf, map[string]int{"devices": 2}))
	assert.JSONEq(t, `{"devices": 2}`, buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatYAML)
	require.NoError(t, f.Format(&buf, map[string]int{"devices": 2}))
	assert.Contains(t, buf.String(), "devices: 2")
}

func TestTableFormatterRendersHeadersAndRows(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)
	require.NoError(t, f.Format(&buf, output.Data{
		Title:   "Devices",
		Headers: []string{"Device", "Status"},
		Rows:    [][]string{{"rtr-01", "missing"}},
	}))
	out := buf.String()
	assert.Contains(t, out, "Devices")
	assert.Contains(t, out, "rtr-01")
	assert.Contains(t, out, "missing")
}

func TestGroupReportIncludesExtras(t *testing.T) {
	diff := &differ.Diff{
		Groups: []differ.GroupEntry{
			{Path: taxonomy.Path("Location#All Locations#DC1"), Status: differ.GroupMissing},
		},
		ExtraGroups: []taxonomy.Path{"IPSEC#Is IPSEC Device#No"},
	}
	data := output.GroupReport(diff)
	assert.Equal(t, []string{"Group Path", "Status"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "extra (kept)", data.Rows[1][1])
}

func TestDeviceReportMasksSecrets(t *testing.T) {
	diff := &differ.Diff{
		Devices: []differ.DeviceEntry{{
			Name:   "rtr-01",
			Status: differ.DeviceIncorrect,
			Changes: []differ.FieldChange{
				{Field: differ.FieldTACACSSecret, Old: "oldsecret", New: "newsecret"},
				{Field: differ.FieldIPAddress, Old: "10.0.0.2/32", New: "10.0.0.1/32"},
			},
		}},
	}
	data := output.DeviceReport(diff)
	require.Len(t, data.Rows, 1)
	changes := data.Rows[0][2]
	assert.NotContains(t, changes, "oldsecret")
	assert.NotContains(t, changes, "newsecret")
	assert.Contains(t, changes, "********")
	assert.Contains(t, changes, "10.0.0.1/32", "non-secret values stay visible")
}

func TestSyncReportListsSkips(t *testing.T) {
	result := &syncer.Result{
		Groups: []syncer.GroupResult{
			{Path: taxonomy.Path("Tenant#Tenant"), Status: syncer.GroupCreated, ID: "g1"},
		},
		Devices: []syncer.DeviceResult{
			{Name: "rtr-01", Status: syncer.DeviceCreated, Detail: "created with id d1"},
		},
		Skipped: []directory.Skip{
			{Name: "bad-switch", Reason: "no primary IP assigned"},
		},
	}
	data := output.SyncReport(result)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"device", "bad-switch", "skipped", "no primary IP assigned"}, data.Rows[2])
}
