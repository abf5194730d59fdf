package app

import (
	"fmt"
	"io"
	"os"

	_ "embed"

	"github.com/spf13/cobra"

	"github.com/netgrove/invsync/internal/cmd/output"
	intdirectory "github.com/netgrove/invsync/internal/directory"
	"github.com/netgrove/invsync/internal/sources/netbox"
	"github.com/netgrove/invsync/pkg/constants"
	"github.com/netgrove/invsync/pkg/errors"
)

//go:embed example-datafile.yaml
var exampleDatafile []byte

// NewVerifyCommand creates the verify command. Verify performs a dry
// run: it computes the plan and reports the differences without writing
// anything to the directory.
func (a *App) NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare inventory against the directory without writing",
		Long: `Verify fetches the selected inventory records and the current directory
contents, then reports every group and device that a sync would create
or update. No writes are performed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := eng.Verify(ctx); err != nil {
				return err
			}

			plan, err := eng.Plan(ctx)
			if err != nil {
				return err
			}

			format := output.DetectFormat(a.config.Format)
			if format == output.FormatTable {
				if err := render(cmd.OutOrStdout(), format, output.GroupReport(plan.Diff)); err != nil {
					return err
				}
				if err := render(cmd.OutOrStdout(), format, output.DeviceReport(plan.Diff)); err != nil {
					return err
				}
			} else {
				if err := render(cmd.OutOrStdout(), format, plan.Diff); err != nil {
					return err
				}
			}

			if plan.Diff.HasChanges() {
				fmt.Fprintln(cmd.OutOrStdout(), "Directory is out of sync; run \"invsync sync\" to apply.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Directory is in sync.")
			}
			return nil
		},
	}
}

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the directory with the inventory",
		Long: `Sync computes the plan and applies it: missing device groups are created
first, then devices are created or updated. Extra directory entries are
reported but never deleted. Individual write failures are logged and the
run continues.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.Engine()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := eng.Verify(ctx); err != nil {
				return err
			}

			_, result, err := eng.Sync(ctx)
			if err != nil {
				return err
			}

			format := output.DetectFormat(a.config.Format)
			if format == output.FormatTable {
				if err := render(cmd.OutOrStdout(), format, output.SyncReport(result)); err != nil {
					return err
				}
			} else {
				if err := render(cmd.OutOrStdout(), format, result); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			if result.Failed() {
				return errors.NewWriteError("sync", "run", "", fmt.Errorf("one or more writes failed"))
			}
			return nil
		},
	}
}

// NewCheckDatafileCommand creates the check-datafile command.
func (a *App) NewCheckDatafileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-datafile",
		Short: "Validate the datafile and test both connections",
		Long: `Check-datafile parses the datafile, validates every section, and then
verifies that both the inventory source and the device directory are
reachable with the configured credentials.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			df, err := LoadDatafile(a.config.Datafile)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "parse: ok (%s)\n", a.config.Datafile)

			failed := false
			if errs := df.Validate(); len(errs) > 0 {
				failed = true
				for _, e := range errs {
					fmt.Fprintf(out, "validate: %v\n", e)
				}
			} else {
				fmt.Fprintf(out, "validate: ok (%d jobs)\n", len(df.Sync))
			}

			ctx := cmd.Context()

			source, err := netbox.New(netbox.Config{URL: df.Defaults.NetBox.URL, Token: df.Defaults.NetBox.Token})
			if err == nil {
				err = source.Verify(ctx)
			}
			if err != nil {
				failed = true
				fmt.Fprintf(out, "netbox: %v\n", err)
			} else {
				fmt.Fprintf(out, "netbox: ok (%s)\n", df.Defaults.NetBox.URL)
			}

			client, err := intdirectory.NewClient(intdirectory.Config{
				Address:  df.Defaults.Directory.Address,
				Username: df.Defaults.Directory.Username,
				Password: df.Defaults.Directory.Password,
				Version:  df.Defaults.Directory.Version,
			})
			if err == nil {
				err = client.Verify(ctx)
			}
			if err != nil {
				failed = true
				fmt.Fprintf(out, "directory: %v\n", err)
			} else {
				fmt.Fprintf(out, "directory: ok (%s)\n", df.Defaults.Directory.Address)
			}

			if failed {
				return errors.NewConfigError("datafile", "datafile check failed", nil)
			}
			return nil
		},
	}
}

// NewExampleDatafileCommand creates the example-datafile command.
func (a *App) NewExampleDatafileCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example-datafile",
		Short: "Print an annotated example datafile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputFile == "" {
				_, err := cmd.OutOrStdout().Write(exampleDatafile)
				return err
			}
			if _, err := os.Stat(outputFile); err == nil {
				return errors.NewConfigError("output-file", fmt.Sprintf("%s already exists, refusing to overwrite", outputFile), nil)
			}
			return os.WriteFile(outputFile, exampleDatafile, constants.FilePermissions)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output-file", "", "write the example datafile to this path instead of stdout")
	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "invsync version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
		},
	}
}

// render writes data to w in the requested format.
func render(w io.Writer, format output.Format, data any) error {
	return output.NewFormatter(format).Format(w, data)
}
