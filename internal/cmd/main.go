// Package cmd implements the dxfpipe command line interface.
package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Version is the CLI version reported by the version subcommand.
const Version = "0.1.0"

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	log := hclog.New(&hclog.LoggerOptions{
		Name: "dxfpipe",
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:    cliName,
		Args:    args[1:],
		Version: Version,
		Commands: map[string]cli.CommandFactory{
			"run": func() (cli.Command, error) {
				return &RunCommand{UI: ui, Log: log}, nil
			},
			"audit": func() (cli.Command, error) {
				return &AuditCommand{UI: ui, Log: log}, nil
			},
			"version": func() (cli.Command, error) {
				return &VersionCommand{UI: ui}, nil
			},
		},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}
