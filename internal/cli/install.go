package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// installFlags holds flags for the install command.
type installFlags struct {
	sharedFlags
	watch bool
}

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	var flags installFlags

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the dependencies listed in the configuration file",
		Long: `Install every target of the configuration file.

Sources are resolved through the package registry (npm by default), fetched
from GitHub, and their main files are placed into the target directory.
Targets with an output are concatenated and minified into a bundle.
A source that fails to install is reported and skipped.`,
		Example: `  vendorjs install
  vendorjs install -c build/vendorjs.yaml --registry bower
  vendorjs install --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			if !flags.watch {
				return c.runInstall(cmd.Context(), flags.sharedFlags, wd)
			}
			path := flags.config
			if path == "" {
				f, err := loadConfig("", wd)
				if err != nil {
					return err
				}
				path = f.Path
			}
			if err := c.runInstall(cmd.Context(), flags.sharedFlags, wd); err != nil {
				c.Logger.Error("install failed", "err", err)
			}
			return c.watchConfig(cmd.Context(), path, func(ctx context.Context) {
				if err := c.runInstall(ctx, flags.sharedFlags, wd); err != nil {
					c.Logger.Error("install failed", "err", err)
				}
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "parallel installs per pass (0 = unlimited)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "child dependency depth (0 = unlimited)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run when the configuration file changes")

	return cmd
}

// runInstall loads the configuration and installs it once.
func (c *CLI) runInstall(ctx context.Context, flags sharedFlags, dir string) error {
	file, err := loadConfig(flags.config, dir)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded configuration", "path", file.Path, "targets", len(file.Targets))

	inst, closeCache, err := c.newInstaller(ctx, flags, file)
	if err != nil {
		return err
	}
	defer closeCache()

	prog := newProgress(c.Logger)
	res, err := inst.Install(ctx, file.Targets)
	if err != nil {
		return err
	}
	prog.done("Install finished")

	printResult(res)
	return nil
}
