package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/vendorjs/pkg/installer"
)

// cleanCommand creates the clean command.
func (c *CLI) cleanCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove scratch directories left by interrupted installs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClean(dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "project directory (default: current directory)")

	return cmd
}

func (c *CLI) runClean(dir string) error {
	inst, err := installer.New(installer.Options{WorkDir: dir, Logger: c.Logger})
	if err != nil {
		return err
	}
	removed, err := inst.Clean()
	for _, r := range removed {
		c.Logger.Debug("removed", "path", r)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		printInfo("Nothing to clean")
		return nil
	}
	printSuccess("Removed %s", plural(len(removed), "directory", "directories"))
	for _, r := range removed {
		printFile(r)
	}
	return nil
}
