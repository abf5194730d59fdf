// Package directory defines the target directory's data model, the
// device records and group identifiers the reconciliation engine keeps
// consistent with the inventory, and the capability interface its
// clients implement.
package directory

import (
	"github.com/netgrove/invsync/pkg/taxonomy"
)

// MaskedSecret stands in for shared-secret values in rendered and
// serialized output. Raw secrets live only on Device records, which
// exclude them from serialization; writes read them directly.
const MaskedSecret = "********"

// SingleAddressMask is the fixed mask applied to every device address.
// Devices register a single management IP; no subnet inference is done.
const SingleAddressMask = 32

// TACACSSettings holds the TACACS protocol configuration for a device.
// The shared secret is excluded from serialization: report output in
// any format must never carry it, only the wire payload types in the
// directory clients do.
type TACACSSettings struct {
	SharedSecret string `json:"-" yaml:"-"`
}

// RADIUSSettings holds the RADIUS protocol configuration for a device.
type RADIUSSettings struct {
	SharedSecret string `json:"-" yaml:"-"`
}

// Device is one network device record in the directory. Name is the
// natural key: matching between desired and current state is by exact
// post-normalization name equality. A nil protocol settings pointer
// means "unconfigured", which is distinct from configured-with-empty
// values: the diff engine never proposes to change a protocol the job
// leaves unset.
type Device struct {
	Name        string
	IPAddress   string // address only, no prefix
	Mask        int
	Description string
	Groups      taxonomy.Set
	TACACS      *TACACSSettings
	RADIUS      *RADIUSSettings
}

// CurrentDevice pairs a device record with its directory-assigned
// identifier. The identifier is required to perform updates but plays
// no role in diff comparison.
type CurrentDevice struct {
	Device
	ID string
}
