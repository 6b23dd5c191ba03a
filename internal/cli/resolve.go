package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vendorjs/pkg/config"
	"github.com/matzehuels/vendorjs/pkg/errors"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var flags sharedFlags

	cmd := &cobra.Command{
		Use:   "resolve <descriptor>",
		Short: "Show where a dependency would be fetched from",
		Long: `Resolve a descriptor to its GitHub repository, version and archive URL
without downloading anything.

Descriptors have the form <name-or-path>[@<version-or-range>][#<r1>|<r2>].
Settings from the configuration file are used when one is found.`,
		Example: `  vendorjs resolve backbone@">=1.0.0 <2.0.0"
  vendorjs resolve jashkenas/underscore@1.8.3
  vendorjs resolve jquery --registry bower`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			var file *config.File
			if flags.config != "" || hasConfig(wd) {
				if file, err = loadConfig(flags.config, wd); err != nil {
					return err
				}
			}

			inst, closeCache, err := c.newInstaller(ctx, flags, file)
			if err != nil {
				return err
			}
			defer closeCache()

			spinner := newSpinner(ctx, "Resolving "+args[0]+"...")
			spinner.Start()
			d, err := inst.Resolve(ctx, args[0])
			if err != nil {
				spinner.Stop()
				if spinner.Cancelled() {
					return ctx.Err()
				}
				printError("Could not resolve %s", args[0])
				return errors.Wrap(errors.GetCode(err), err, "resolve %s", args[0])
			}
			spinner.Stop()

			printResolved(d)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// hasConfig reports whether dir contains a configuration file.
func hasConfig(dir string) bool {
	_, err := config.Find(dir)
	return err == nil
}
