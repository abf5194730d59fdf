package inventory

import "context"

// Filter selects the inventory records for one job. Empty slices mean
// "no restriction" for that attribute.
type Filter struct {
	Sites       []string
	Tenants     []string
	Statuses    []string
	DeviceTypes []string
	DeviceRoles []string
}

// Source is the query interface the reconciliation engine consumes.
// Implementations are external collaborators (HTTP clients); the engine
// treats every call as a synchronous operation that either returns a
// snapshot or fails with a connectivity error.
type Source interface {
	// FetchInventory returns the records matching the filter.
	FetchInventory(ctx context.Context, filter Filter) ([]Record, error)

	// Verify checks the inventory system is reachable and the
	// credentials are accepted.
	Verify(ctx context.Context) error
}
