package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

// TestAppNew verifies app initialization.
func TestAppNew(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %q", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %q", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %q", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %q", app.BuiltBy())
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}

// TestAppOptions verifies functional options.
func TestAppOptions(t *testing.T) {
	logger := zerolog.Nop()
	config := &Config{Format: "json"}

	app, err := New("dev", "", "", "", WithConfig(config), WithLogger(&logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Config() != config {
		t.Error("WithConfig not applied")
	}
	if app.Logger() != &logger {
		t.Error("WithLogger not applied")
	}
}

// TestVersionCommand verifies version output.
func TestVersionCommand(t *testing.T) {
	app, err := New("1.2.3", "abc123", "2024-01-01", "goreleaser")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var buf bytes.Buffer
	cmd := app.NewVersionCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"invsync version 1.2.3", "commit: abc123", "built by: goreleaser"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output missing %q:\n%s", want, out)
		}
	}
}

// TestExampleDatafileCommand verifies the embedded example prints and,
// importantly, that it parses and validates cleanly.
func TestExampleDatafileCommand(t *testing.T) {
	app, err := New("dev", "", "", "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var buf bytes.Buffer
	cmd := app.NewExampleDatafileCommand()
	cmd.SetOut(&buf)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("example-datafile command failed: %v", err)
	}

	var df Datafile
	if err := yaml.Unmarshal(buf.Bytes(), &df); err != nil {
		t.Fatalf("embedded example does not parse: %v", err)
	}
	if errs := df.Validate(); len(errs) != 0 {
		t.Errorf("embedded example does not validate: %v", errs)
	}
	if len(df.Sync) == 0 {
		t.Error("embedded example has no jobs")
	}
}

// TestEngineRequiresValidDatafile verifies the lazy engine surfaces
// datafile problems.
func TestEngineRequiresValidDatafile(t *testing.T) {
	config := &Config{Datafile: "does-not-exist.yaml"}
	app, err := New("dev", "", "", "", WithConfig(config))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := app.Engine(); err == nil {
		t.Error("Engine() with missing datafile returned nil error")
	}
}
