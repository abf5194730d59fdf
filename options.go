package invsync

import (
	"github.com/netgrove/invsync/pkg/directory"
	"github.com/netgrove/invsync/pkg/errors"
	"github.com/netgrove/invsync/pkg/inventory"
)

// Option is a function that configures an Engine.
type Option func(*Engine) error

// WithSource sets the inventory source the engine reads from.
func WithSource(source inventory.Source) Option {
	return func(e *Engine) error {
		if source == nil {
			return &errors.ConfigError{Section: "source", Message: "source must not be nil"}
		}
		e.source = source
		return nil
	}
}

// WithDirectory sets the directory client the engine reconciles against.
func WithDirectory(client directory.Client) Option {
	return func(e *Engine) error {
		if client == nil {
			return &errors.ConfigError{Section: "directory", Message: "directory client must not be nil"}
		}
		e.directory = client
		return nil
	}
}

// WithJobs sets the reconciliation jobs, replacing any set earlier.
// Jobs run in the given order; later jobs win device name collisions.
func WithJobs(jobs ...Job) Option {
	return func(e *Engine) error {
		for _, j := range jobs {
			if j.Name == "" {
				return &errors.ConfigError{Section: "jobs", Message: "job name must not be empty"}
			}
		}
		e.jobs = append([]Job(nil), jobs...)
		return nil
	}
}
