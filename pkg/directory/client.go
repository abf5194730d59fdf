package directory

import (
	"context"

	"github.com/netgrove/invsync/pkg/taxonomy"
)

// Client is the capability interface the reconciliation engine requires
// from a directory implementation. Two concrete clients exist (the
// legacy ERS API and the OpenAPI surface introduced in later releases);
// one is selected at process start by the configured version string.
// The engine depends only on this interface.
type Client interface {
	// Verify checks the directory is reachable and the credentials
	// are accepted.
	Verify(ctx context.Context) error

	// FetchCurrentGroups returns every network device group with its
	// directory identifier.
	FetchCurrentGroups(ctx context.Context) (map[taxonomy.Path]string, error)

	// FetchCurrentDevices returns every network device with its
	// directory identifier.
	FetchCurrentDevices(ctx context.Context) ([]CurrentDevice, error)

	// CreateGroup creates a network device group and returns the
	// directory-assigned identifier.
	CreateGroup(ctx context.Context, path taxonomy.Path) (string, error)

	// CreateDevice creates a network device and returns the
	// directory-assigned identifier. Every group in the device's
	// membership set must already exist.
	CreateDevice(ctx context.Context, device Device) (string, error)

	// UpdateDevice replaces the device identified by id with the
	// desired record and returns a human-readable result detail.
	UpdateDevice(ctx context.Context, id string, device Device) (string, error)
}
