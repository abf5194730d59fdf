package app

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"

	"github.com/netgrove/invsync"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/inventory"
)

// Datafile is the YAML document that drives a reconciliation run: the
// connection defaults for both systems plus the list of sync jobs.
type Datafile struct {
	Defaults Defaults  `yaml:"defaults" json:"defaults"`
	Sync     []JobSpec `yaml:"jobs" json:"jobs"`
}

// Defaults holds the connection settings for the inventory source and
// the device directory.
type Defaults struct {
	NetBox    NetBoxConfig    `yaml:"netbox" json:"netbox"`
	Directory DirectoryConfig `yaml:"directory" json:"directory"`
}

// NetBoxConfig is the inventory source connection block.
type NetBoxConfig struct {
	URL   string `yaml:"url" json:"url"`
	Token string `yaml:"token" json:"token,omitempty"`
}

// DirectoryConfig is the device directory connection block.
type DirectoryConfig struct {
	Address  string `yaml:"address" json:"address"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password,omitempty"`
	Version  string `yaml:"version" json:"version"`
}

// JobSpec describes one sync job: a name, an inventory query, and the
// protocol secrets applied to every device the query matches.
type JobSpec struct {
	Name      string       `yaml:"name" json:"name"`
	Query     QuerySpec    `yaml:"query" json:"query"`
	Protocols ProtocolSpec `yaml:"protocols" json:"protocols"`
}

// QuerySpec selects inventory records. Absent keys mean no restriction.
type QuerySpec struct {
	Sites       []string `yaml:"sites" json:"sites,omitempty"`
	Tenants     []string `yaml:"tenants" json:"tenants,omitempty"`
	Statuses    []string `yaml:"statuses" json:"statuses,omitempty"`
	DeviceTypes []string `yaml:"device_types" json:"device_types,omitempty"`
	DeviceRoles []string `yaml:"device_roles" json:"device_roles,omitempty"`
}

// ProtocolSpec carries the AAA protocol blocks. A nil block means the
// protocol is not configured for the job's devices.
type ProtocolSpec struct {
	TACACS *SecretSpec `yaml:"tacacs" json:"tacacs,omitempty"`
	RADIUS *SecretSpec `yaml:"radius" json:"radius,omitempty"`
}

// SecretSpec holds a shared secret.
type SecretSpec struct {
	Secret string `yaml:"secret" json:"secret"`
}

// LoadDatafile reads and parses the datafile at path, then fills any
// missing credentials from the environment (NETBOX_TOKEN, DIRECTORY_USER,
// DIRECTORY_PASS, DIRECTORY_VERSION).
func LoadDatafile(path string) (*Datafile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("datafile", fmt.Sprintf("cannot read %s", path), err)
	}

	var df Datafile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	df.applyEnvironment()
	return &df, nil
}

// applyEnvironment fills credentials the datafile leaves blank. Secrets
// are routinely kept out of datafiles checked into version control.
func (d *Datafile) applyEnvironment() {
	if d.Defaults.NetBox.URL == "" {
		d.Defaults.NetBox.URL = viper.GetString("NETBOX_URL")
	}
	if d.Defaults.NetBox.Token == "" {
		d.Defaults.NetBox.Token = viper.GetString("NETBOX_TOKEN")
	}
	if d.Defaults.Directory.Address == "" {
		d.Defaults.Directory.Address = viper.GetString("DIRECTORY_ADDRESS")
	}
	if d.Defaults.Directory.Username == "" {
		d.Defaults.Directory.Username = viper.GetString("DIRECTORY_USER")
	}
	if d.Defaults.Directory.Password == "" {
		d.Defaults.Directory.Password = viper.GetString("DIRECTORY_PASS")
	}
	if d.Defaults.Directory.Version == "" {
		d.Defaults.Directory.Version = viper.GetString("DIRECTORY_VERSION")
	}
}

// Validate checks the datafile for problems and returns one error per
// finding so a caller can report them all at once.
func (d *Datafile) Validate() []error {
	var errs []error

	if d.Defaults.NetBox.URL == "" {
		errs = append(errs, errors.NewConfigError("defaults.netbox", "url is required", nil))
	}
	if d.Defaults.NetBox.Token == "" {
		errs = append(errs, errors.NewConfigError("defaults.netbox", "token is required (datafile or NETBOX_TOKEN)", nil))
	}
	if d.Defaults.Directory.Address == "" {
		errs = append(errs, errors.NewConfigError("defaults.directory", "address is required", nil))
	}
	if d.Defaults.Directory.Username == "" {
		errs = append(errs, errors.NewConfigError("defaults.directory", "username is required (datafile or DIRECTORY_USER)", nil))
	}
	if d.Defaults.Directory.Password == "" {
		errs = append(errs, errors.NewConfigError("defaults.directory", "password is required (datafile or DIRECTORY_PASS)", nil))
	}

	if len(d.Sync) == 0 {
		errs = append(errs, errors.NewConfigError("jobs", "at least one job is required", nil))
	}

	seen := make(map[string]bool, len(d.Sync))
	for i, job := range d.Sync {
		section := fmt.Sprintf("jobs[%d]", i)
		if job.Name == "" {
			errs = append(errs, errors.NewConfigError(section, "name is required", nil))
			continue
		}
		if seen[job.Name] {
			errs = append(errs, errors.NewConfigError(section, fmt.Sprintf("duplicate job name %q", job.Name), nil))
		}
		seen[job.Name] = true

		if job.Protocols.TACACS != nil && job.Protocols.TACACS.Secret == "" {
			errs = append(errs, errors.NewConfigError(section, "tacacs block present but secret is empty", nil))
		}
		if job.Protocols.RADIUS != nil && job.Protocols.RADIUS.Secret == "" {
			errs = append(errs, errors.NewConfigError(section, "radius block present but secret is empty", nil))
		}
	}

	return errs
}

// EngineJobs converts the job specs into engine jobs.
func (d *Datafile) EngineJobs() []invsync.Job {
	jobs := make([]invsync.Job, 0, len(d.Sync))
	for _, spec := range d.Sync {
		job := invsync.Job{
			Name: spec.Name,
			Query: inventory.Filter{
				Sites:       spec.Query.Sites,
				Tenants:     spec.Query.Tenants,
				Statuses:    spec.Query.Statuses,
				DeviceTypes: spec.Query.DeviceTypes,
				DeviceRoles: spec.Query.DeviceRoles,
			},
		}
		if spec.Protocols.TACACS != nil {
			job.Protocols.TACACSSecret = spec.Protocols.TACACS.Secret
		}
		if spec.Protocols.RADIUS != nil {
			job.Protocols.RADIUSSecret = spec.Protocols.RADIUS.Secret
		}
		jobs = append(jobs, job)
	}
	return jobs
}
