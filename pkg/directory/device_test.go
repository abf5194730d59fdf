package directory_test

import (
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceSerializationOmitsSecrets(t *testing.T) {
	device := directory.Device{
		Name:      "rtr-01",
		IPAddress: "10.0.0.1",
		Mask:      directory.SingleAddressMask,
		Groups:    taxonomy.NewSet(taxonomy.Path("Location#All Locations#DC1")),
		TACACS:    &directory.TACACSSettings{SharedSecret: "tacacs-raw-value"},
		RADIUS:    &directory.RADIUSSettings{SharedSecret: "radius-raw-value"},
	}

	// Structured report formats serialize devices directly, so the
	// secret fields must never survive either encoder.
	encoded, err := json.Marshal(device)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "tacacs-raw-value")
	assert.NotContains(t, string(encoded), "radius-raw-value")

	encoded, err = yaml.Marshal(device)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "tacacs-raw-value")
	assert.NotContains(t, string(encoded), "radius-raw-value")
	assert.Contains(t, string(encoded), "rtr-01")
}
