// Package mapper converts inventory records into directory device
// records: it resolves each record's group memberships, generates the
// provenance description, and attaches the job's protocol settings.
package mapper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/inventory"
	"github.com/netgrove/invsync/pkg/taxonomy"

	pkgerrors "github.com/netgrove/invsync/pkg/errors"
)

// SkipNoPrimaryIP is the recorded reason for the single hard validation
// rule: a record without a primary IP never reaches the diff engine.
const SkipNoPrimaryIP = "no primary IP assigned"

// Config carries the job-level protocol configuration. An empty secret
// means the protocol block was absent from the job: the corresponding
// settings are left unset on mapped devices, never merely empty.
type Config struct {
	TACACSSecret string
	RADIUSSecret string
}

// Map converts one inventory record into a directory device record. It
// returns a ValidationError when the record has no primary IP assigned.
func Map(r inventory.Record, cfg Config) (directory.Device, error) {
	primaryIP := r.PrimaryIP()
	if primaryIP == "" {
		return directory.Device{}, pkgerrors.NewValidationError(r.Name(), "primary_ip", SkipNoPrimaryIP)
	}

	// The inventory reports CIDR form; the directory registers a single
	// management address with a fixed mask.
	address := strings.SplitN(primaryIP, "/", 2)[0]

	device := directory.Device{
		Name:        taxonomy.Normalize(r.Name()),
		IPAddress:   address,
		Mask:        directory.SingleAddressMask,
		Description: Describe(r),
		Groups:      taxonomy.NewSet(taxonomy.Paths(r)...),
	}

	if cfg.TACACSSecret != "" {
		device.TACACS = &directory.TACACSSettings{SharedSecret: cfg.TACACSSecret}
	}
	if cfg.RADIUSSecret != "" {
		device.RADIUS = &directory.RADIUSSettings{SharedSecret: cfg.RADIUSSecret}
	}

	return device, nil
}

// Describe generates the provenance description for a record. It is a
// pure function of the record's inventory URL so the description never
// spuriously appears changed between runs.
func Describe(r inventory.Record) string {
	return fmt.Sprintf("From NetBox: %s", r.URL())
}

// Build computes a job's desired state from its filtered record set:
// the full taxonomy of the records plus one device per record that
// passes validation. Skipped records are retained with their reasons.
func Build(records []inventory.Record, cfg Config) *directory.DesiredState {
	ds := directory.NewDesiredState()
	ds.Groups = taxonomy.Build(records)

	for _, r := range records {
		device, err := Map(r, cfg)
		if err != nil {
			ds.Skipped = append(ds.Skipped, directory.Skip{
				Name:   r.Name(),
				Reason: skipReason(err),
			})
			continue
		}
		ds.Devices = append(ds.Devices, device)
	}

	ds.SortDevices()
	return ds
}

func skipReason(err error) string {
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
