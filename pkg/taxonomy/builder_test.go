package taxonomy_test

import (
	"math/rand"
	"testing"

	"github.com/netgrove/invsync/pkg/inventory"
	"github.com/netgrove/invsync/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationPath(t *testing.T) {
	tests := []struct {
		name   string
		record inventory.Record
		want   taxonomy.Path
	}{
		{
			name: "device with site and rack",
			record: inventory.DeviceRecord(inventory.Device{
				Name: "rtr-01", Site: "Site01", Rack: "R12",
			}),
			want: "Location#All Locations#Site01#R12",
		},
		{
			name: "device with no rack attaches to site",
			record: inventory.DeviceRecord(inventory.Device{
				Name: "rtr-02", Site: "Site01",
			}),
			want: "Location#All Locations#Site01",
		},
		{
			name: "device rack name is normalized",
			record: inventory.DeviceRecord(inventory.Device{
				Name: "rtr-03", Site: "Site01", Rack: "Row 3 (east)",
			}),
			want: "Location#All Locations#Site01#Row 3 east",
		},
		{
			name: "vm cluster nests under cluster site",
			record: inventory.VMRecord(inventory.VirtualMachine{
				Name: "vm-01", Cluster: "esx-cl01", ClusterSite: "Site02",
			}),
			want: "Location#All Locations#Site02#esx-cl01",
		},
		{
			name: "vm cluster with no site attaches at top level",
			record: inventory.VMRecord(inventory.VirtualMachine{
				Name: "vm-02", Cluster: "esx-cl02",
			}),
			want: "Location#All Locations#esx-cl02",
		},
		{
			name: "vm with no cluster attaches to its site",
			record: inventory.VMRecord(inventory.VirtualMachine{
				Name: "vm-03", Site: "Site01",
			}),
			want: "Location#All Locations#Site01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.LocationPath(tt.record))
		})
	}
}

func TestDeviceTypePath(t *testing.T) {
	device := inventory.DeviceRecord(inventory.Device{
		Name: "sw-01", Manufacturer: "Cisco", Model: "Nexus 9300v",
	})
	assert.Equal(t, taxonomy.Path("Device Type#All Device Types#Cisco#Nexus 9300v"),
		taxonomy.DeviceTypePath(device))

	// VMs always resolve to the fixed General VM node regardless of any
	// source attributes.
	vm := inventory.VMRecord(inventory.VirtualMachine{Name: "vm-01", Role: "Server"})
	assert.Equal(t, taxonomy.Path("Device Type#All Device Types#General VM"),
		taxonomy.DeviceTypePath(vm))
}

func TestDeviceRolePath(t *testing.T) {
	device := inventory.DeviceRecord(inventory.Device{Name: "fw-01", Role: "Virtual/Physical Firewall"})
	assert.Equal(t, taxonomy.Path("Device Role#Device Role#Virtual-Physical Firewall"),
		taxonomy.DeviceRolePath(device))

	roleless := inventory.VMRecord(inventory.VirtualMachine{Name: "vm-01"})
	assert.Equal(t, taxonomy.Path("Device Role#Device Role"),
		taxonomy.DeviceRolePath(roleless))
}

func TestTenantPath(t *testing.T) {
	tests := []struct {
		name   string
		record inventory.Record
		want   taxonomy.Path
	}{
		{
			name: "tenant with group",
			record: inventory.DeviceRecord(inventory.Device{
				Name: "rtr-01", Tenant: "tst01-z0-admin", TenantGroup: "Test Tenants",
			}),
			want: "Tenant#Tenant#Test Tenants#tst01-z0-admin",
		},
		{
			name: "tenant without group attaches under root",
			record: inventory.DeviceRecord(inventory.Device{
				Name: "rtr-02", Tenant: "prod",
			}),
			want: "Tenant#Tenant#prod",
		},
		{
			name:   "no tenant yields bare base",
			record: inventory.DeviceRecord(inventory.Device{Name: "rtr-03"}),
			want:   "Tenant#Tenant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.TenantPath(tt.record))
		})
	}
}

func TestPathsOnePerRoot(t *testing.T) {
	record := inventory.DeviceRecord(inventory.Device{
		Name: "rtr-01", Site: "S1", Manufacturer: "Cisco", Model: "ISR4451",
		Role: "Router", Tenant: "prod",
	})

	paths := taxonomy.Paths(record)
	require.Len(t, paths, 4)

	roots := map[string]bool{}
	for _, p := range paths {
		roots[p.Root()] = true
	}
	assert.Equal(t, map[string]bool{
		"Location": true, "Device Type": true, "Device Role": true, "Tenant": true,
	}, roots)
}

func TestBuildDeterministic(t *testing.T) {
	records := []inventory.Record{
		inventory.DeviceRecord(inventory.Device{Name: "rtr-01", Site: "S1", Rack: "R1", Manufacturer: "Cisco", Model: "ISR4451", Role: "Router", Tenant: "prod"}),
		inventory.DeviceRecord(inventory.Device{Name: "sw-01", Site: "S1", Manufacturer: "Cisco", Model: "C9300", Role: "Switch", Tenant: "prod"}),
		inventory.VMRecord(inventory.VirtualMachine{Name: "vm-01", Cluster: "cl01", ClusterSite: "S2", Role: "Server", Tenant: "lab", TenantGroup: "Test Tenants"}),
	}

	want := taxonomy.Build(records)

	// Shuffle repeatedly; the built set must never change.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]inventory.Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, taxonomy.Build(shuffled))
	}
}

func TestBuildDeduplicates(t *testing.T) {
	a := inventory.DeviceRecord(inventory.Device{Name: "sw-01", Site: "S1", Manufacturer: "Cisco", Model: "C9300", Role: "Switch"})
	b := inventory.DeviceRecord(inventory.Device{Name: "sw-02", Site: "S1", Manufacturer: "Cisco", Model: "C9300", Role: "Switch"})

	set := taxonomy.Build([]inventory.Record{a, b})

	// Both devices share every path; the union holds each exactly once.
	assert.Len(t, set, 4)
	assert.True(t, set.Has("Location#All Locations#S1"))
	assert.True(t, set.Has("Device Type#All Device Types#Cisco#C9300"))
	assert.True(t, set.Has("Device Role#Device Role#Switch"))
	assert.True(t, set.Has("Tenant#Tenant"))
}

func TestSetSorted(t *testing.T) {
	set := taxonomy.NewSet("b#1", "a#2", "a#1")
	assert.Equal(t, []taxonomy.Path{"a#1", "a#2", "b#1"}, set.Sorted())
}
