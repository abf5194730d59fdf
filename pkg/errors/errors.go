// Package errors provides custom error types for the invsync system.
// These errors enable programmatic error classification across the
// reconciliation pipeline: fatal errors (connectivity, configuration)
// halt a job, while local errors (validation, write failures) are
// accumulated into result reports and never abort processing.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the invsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrConnectivity indicates that an external system is unreachable
	ErrConnectivity = errors.New("system unreachable")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates that the job configuration is malformed
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWriteFailed indicates that a create/update call to the directory failed
	ErrWriteFailed = errors.New("write failed")

	// ErrUnauthorized indicates that credentials were rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnsupportedVersion indicates an unknown directory API version
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// ConnectivityError indicates a source or target system could not be
// reached at query time. It is fatal for the affected job: no diff or
// sync proceeds once one is returned.
type ConnectivityError struct {
	System  string // "inventory" or "directory"
	Address string
	Err     error
}

// Error implements the error interface
func (e *ConnectivityError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("unable to reach %s at %s: %v", e.System, e.Address, e.Err)
	}
	return fmt.Sprintf("unable to reach %s: %v", e.System, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}

// NewConnectivityError creates a new ConnectivityError
func NewConnectivityError(system, address string, err error) *ConnectivityError {
	return &ConnectivityError{System: system, Address: address, Err: err}
}

// ConfigError represents a malformed or missing job definition field.
// It is fatal and detected before any query is issued.
type ConfigError struct {
	Section string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(section, message string, err error) *ConfigError {
	return &ConfigError{Section: section, Message: message, Err: err}
}

// ValidationError represents a record-local validation failure, such as
// an inventory record with no primary IP. The record is excluded from
// the desired state with a recorded reason; the job continues.
type ValidationError struct {
	Record  string
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("record %s skipped: %s", e.Record, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(record, field, message string) *ValidationError {
	return &ValidationError{Record: record, Field: field, Message: message}
}

// WriteError represents a failed create or update call against the
// directory. It is local to the affected entity: the sync executor
// records it as Failed and continues with the remaining entities.
type WriteError struct {
	Operation string // "create" or "update"
	Entity    string // "group" or "device"
	Name      string // group path or device name
	Err       error
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to %s %s %q: %v", e.Operation, e.Entity, e.Name, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *WriteError) Is(target error) bool {
	return target == ErrWriteFailed
}

// NewWriteError creates a new WriteError
func NewWriteError(operation, entity, name string, err error) *WriteError {
	return &WriteError{Operation: operation, Entity: entity, Name: name, Err: err}
}

// APIError represents an HTTP-level error from the inventory or
// directory API. It is usually wrapped inside a ConnectivityError or
// WriteError carrying the affected entity.
type APIError struct {
	System     string
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.System, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.System, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 401 || e.StatusCode == 403 {
		return target == ErrUnauthorized
	}
	if e.StatusCode == 404 {
		return target == ErrNotFound
	}
	if e.StatusCode >= 500 {
		return target == ErrConnectivity
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(system string, statusCode int, endpoint, message string) *APIError {
	return &APIError{
		System:     system,
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// ParseError represents an error when parsing data formats such as the
// YAML datafile or an API response body.
type ParseError struct {
	Format  string // "yaml", "json"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConnectivity checks if an error indicates an unreachable system
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

// IsValidation checks if an error is a record-local validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfig checks if an error is a configuration error
func IsConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsWriteFailed checks if an error is a directory write failure
func IsWriteFailed(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

// IsUnauthorized checks if an error indicates rejected credentials
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsUnsupportedVersion checks if an error names an unknown directory
// API version
func IsUnsupportedVersion(err error) bool {
	return errors.Is(err, ErrUnsupportedVersion)
}

// Helper wrapping functions for common patterns

// WrapConnectivity wraps an error as a ConnectivityError
func WrapConnectivity(system, address string, err error) error {
	if err == nil {
		return nil
	}
	return NewConnectivityError(system, address, err)
}

// WrapWrite wraps an error as a WriteError
func WrapWrite(operation, entity, name string, err error) error {
	if err == nil {
		return nil
	}
	return NewWriteError(operation, entity, name, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
