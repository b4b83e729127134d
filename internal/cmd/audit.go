package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/extents"
	"github.com/tsawler/dxfpipe/reader"
	"github.com/tsawler/dxfpipe/stats"
	"github.com/tsawler/dxfpipe/units"
)

// AuditCommand loads a DXF file and prints its audit findings and
// structural summary without writing any outputs.
type AuditCommand struct {
	UI  cli.Ui
	Log hclog.Logger

	// FS is the filesystem the input is read from. Defaults to the OS.
	FS afero.Fs
}

func (c *AuditCommand) Synopsis() string {
	return "Load a DXF file and print its audit findings and summary"
}

func (c *AuditCommand) Help() string {
	return strings.TrimSpace(`
Usage: dxfpipe audit <input.dxf>

  Loads the DXF file the same way the run command does, then prints the
  recovery findings and the structural summary JSON to stdout. Nothing is
  written to disk.
`)
}

func (c *AuditCommand) Run(args []string) int {
	f := flag.NewFlagSet("audit", flag.ContinueOnError)
	f.Usage = func() { c.UI.Output(c.Help()) }
	if err := f.Parse(args); err != nil {
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("audit takes exactly one input file")
		return 1
	}
	input := f.Arg(0)

	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}

	file, err := fs.Open(input)
	if err != nil {
		c.UI.Error((&reader.LoadError{Path: input, Err: err}).Error())
		return 1
	}
	defer file.Close()

	doc, audit, err := reader.Read(file)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	for _, issue := range audit.Issues {
		c.UI.Warn(fmt.Sprintf("%s: %s", issue.Severity, issue.Message))
	}
	if audit.Empty() {
		c.UI.Info("no findings; document is clean")
	} else {
		c.UI.Info(fmt.Sprintf("%d findings (%d errors, %d warnings), %d fixed",
			len(audit.Issues), audit.Errors(), audit.Warnings(), audit.Fixed))
	}

	ext, source := extents.NewResolver().Resolve(doc)
	if adv := units.Check(doc.Header.Units, ext); adv != nil {
		c.UI.Warn(adv.String())
	}

	st := stats.Compute(doc, ext, source)
	out, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(out))
	return 0
}
