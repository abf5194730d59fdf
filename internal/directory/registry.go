// Package directory selects a directory client implementation from the
// configured interface version string.
package directory

import (
	"fmt"
	"strings"

	"github.com/netgrove/invsync/internal/directory/ers"
	"github.com/netgrove/invsync/internal/directory/openapi"
	pkgdirectory "github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/logging"
)

// VersionLegacy selects the legacy ERS client.
const VersionLegacy = "legacy"

// SupportedVersions are the gateway interface versions the modern
// client is validated against.
var SupportedVersions = []string{"3.1.0", "3.1_Patch_1", "3.2_beta", "3.3_patch_1"}

// Config carries the connection settings plus the version string that
// picks the client implementation.
type Config struct {
	Address  string
	Username string
	Password string
	Version  string
}

// NewClient returns the directory client matching the configured
// version. An empty version defaults to legacy; an unknown version is a
// config error naming the supported set.
func NewClient(cfg Config) (pkgdirectory.Client, error) {
	version := cfg.Version
	if version == "" {
		logging.Warn().Msg("Directory version not specified, defaulting to legacy")
		version = VersionLegacy
	}

	switch {
	case version == VersionLegacy:
		return ers.New(ers.Config{
			Address:  cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	case isSupported(version):
		return openapi.New(openapi.Config{
			Address:  cfg.Address,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	default:
		return nil, &errors.ConfigError{
			Section: "directory",
			Message: fmt.Sprintf("invalid version %q, supported versions are: %s, %s",
				version, VersionLegacy, strings.Join(SupportedVersions, ", ")),
			Err: errors.ErrUnsupportedVersion,
		}
	}
}

func isSupported(version string) bool {
	for _, v := range SupportedVersions {
		if v == version {
			return true
		}
	}
	return false
}
