package cmd

import (
	"github.com/mitchellh/cli"
)

// VersionCommand prints the CLI version.
type VersionCommand struct {
	UI cli.Ui
}

func (c *VersionCommand) Synopsis() string {
	return "Print the dxfpipe version"
}

func (c *VersionCommand) Help() string {
	return "Usage: dxfpipe version"
}

func (c *VersionCommand) Run(args []string) int {
	c.UI.Output("dxfpipe " + Version)
	return 0
}
