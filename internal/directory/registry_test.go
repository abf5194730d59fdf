package directory_test

import (
	"testing"

	"github.com/netgrove/invsync/internal/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientVersionSelection(t *testing.T) {
	base := directory.Config{Address: "ise.example.net", Username: "admin", Password: "secret"}

	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"legacy", "legacy", false},
		{"empty defaults to legacy", "", false},
		{"supported gateway version", "3.1.0", false},
		{"patched gateway version", "3.3_patch_1", false},
		{"unknown version", "2.7", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Version = tt.version
			client, err := directory.NewClient(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfig(err))
				assert.True(t, errors.IsUnsupportedVersion(err))
				assert.Contains(t, err.Error(), "legacy")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClientRequiresAddress(t *testing.T) {
	_, err := directory.NewClient(directory.Config{Version: "legacy"})
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
