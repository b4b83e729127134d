package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe"
)

// RunCommand executes the full pipeline on one input file.
type RunCommand struct {
	UI  cli.Ui
	Log hclog.Logger

	flagConfig      string
	flagInput       string
	flagOutDir      string
	flagLabel       string
	flagTimestamp   bool
	flagPDF         bool
	flagPNG         bool
	flagSVG         bool
	flagDPI         int
	flagPage        string
	flagOrientation string
	flagMargins     float64
	flagFitPage     bool
	flagScale       float64
	flagFlatten     bool
	flagDWG         bool
	flagInsUnits    int
	flagVerbose     bool
}

func (c *RunCommand) Synopsis() string {
	return "Audit a DXF file and write reports, previews and export copies"
}

func (c *RunCommand) Help() string {
	return strings.TrimSpace(`
Usage: dxfpipe run [options] <input.dxf>

  Loads the DXF file, tolerating and recording recoverable defects, and
  writes a structural summary (JSON + CSV), page-fitted previews
  (PDF/PNG/SVG), a block-flattened DXF copy, optionally a copy with
  $INSUNITS corrected, and optionally a DWG via the ODA File Converter.

Options:

  -config=FILE              YAML config file; flags override its values
  -input=FILE               input DXF (or pass it as the positional argument)
  -outdir=DIR               base output directory (default "out")
  -label=NAME               append a label subdirectory to the output dir
  -timestamped-outdir       append a YYYYmmdd_HHMMSS subdirectory
  -pdf / -pdf=false         write the PDF preview (default on)
  -png / -png=false         write the PNG preview (default on)
  -svg                      write the SVG preview (default off)
  -dpi=N                    raster preview resolution (default 300)
  -page=SIZE                page size A0..A4 (default A3)
  -orientation=MODE         auto, portrait or landscape (default auto)
  -margins-mm=N             page margins in millimeters (default 10)
  -fit-page / -fit-page=false
                            scale the drawing to fit the page (default on)
  -scale=S                  fixed drawing scale; overrides -fit-page
  -export-flattened-dxf / =false
                            write the block-flattened DXF copy (default on)
  -export-dwg               convert to DWG with the ODA File Converter
  -set-insunits=CODE        write a copy with $INSUNITS forced to CODE
  -verbose                  debug logging
`)
}

func (c *RunCommand) flags() *flag.FlagSet {
	d := dxfpipe.DefaultOptions()
	f := flag.NewFlagSet("run", flag.ContinueOnError)
	f.StringVar(&c.flagConfig, "config", "", "")
	f.StringVar(&c.flagInput, "input", "", "")
	f.StringVar(&c.flagOutDir, "outdir", d.OutDir, "")
	f.StringVar(&c.flagLabel, "label", "", "")
	f.BoolVar(&c.flagTimestamp, "timestamped-outdir", false, "")
	f.BoolVar(&c.flagPDF, "pdf", d.PDF, "")
	f.BoolVar(&c.flagPNG, "png", d.PNG, "")
	f.BoolVar(&c.flagSVG, "svg", d.SVG, "")
	f.IntVar(&c.flagDPI, "dpi", d.DPI, "")
	f.StringVar(&c.flagPage, "page", d.Page, "")
	f.StringVar(&c.flagOrientation, "orientation", d.Orientation, "")
	f.Float64Var(&c.flagMargins, "margins-mm", d.MarginsMM, "")
	f.BoolVar(&c.flagFitPage, "fit-page", d.FitPage, "")
	f.Float64Var(&c.flagScale, "scale", 0, "")
	f.BoolVar(&c.flagFlatten, "export-flattened-dxf", d.FlattenDXF, "")
	f.BoolVar(&c.flagDWG, "export-dwg", false, "")
	f.IntVar(&c.flagInsUnits, "set-insunits", -1, "")
	f.BoolVar(&c.flagVerbose, "verbose", false, "")
	f.Usage = func() { c.UI.Output(c.Help()) }
	return f
}

// options assembles the pipeline options from the config file (when given)
// and the parsed flags. Only flags the user actually passed override
// config values; an unset flag's default never clobbers the config.
func (c *RunCommand) options(fs afero.Fs, f *flag.FlagSet) (dxfpipe.Options, error) {
	opts := dxfpipe.DefaultOptions()
	if c.flagConfig != "" {
		var err error
		opts, err = dxfpipe.LoadOptions(fs, c.flagConfig)
		if err != nil {
			return opts, err
		}
	}

	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["input"] {
		opts.Input = c.flagInput
	}
	if args := f.Args(); len(args) > 0 {
		opts.Input = args[0]
	}
	if set["outdir"] {
		opts.OutDir = c.flagOutDir
	}
	if set["label"] {
		opts.Label = c.flagLabel
	}
	if set["timestamped-outdir"] {
		opts.Timestamp = c.flagTimestamp
	}
	if set["pdf"] {
		opts.PDF = c.flagPDF
	}
	if set["png"] {
		opts.PNG = c.flagPNG
	}
	if set["svg"] {
		opts.SVG = c.flagSVG
	}
	if set["dpi"] {
		opts.DPI = c.flagDPI
	}
	if set["page"] {
		opts.Page = c.flagPage
	}
	if set["orientation"] {
		opts.Orientation = c.flagOrientation
	}
	if set["margins-mm"] {
		opts.MarginsMM = c.flagMargins
	}
	if set["fit-page"] {
		opts.FitPage = c.flagFitPage
	}
	if set["scale"] {
		opts.Scale = c.flagScale
	}
	if set["export-flattened-dxf"] {
		opts.FlattenDXF = c.flagFlatten
	}
	if set["export-dwg"] {
		opts.ExportDWG = c.flagDWG
	}
	if set["set-insunits"] {
		u := c.flagInsUnits
		opts.SetInsUnits = &u
	}
	if set["verbose"] {
		opts.Verbose = c.flagVerbose
	}
	return opts, nil
}

func (c *RunCommand) Run(args []string) int {
	f := c.flags()
	if err := f.Parse(args); err != nil {
		return 1
	}

	opts, err := c.options(afero.NewOsFs(), f)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if opts.Input == "" {
		c.UI.Error("no input file; pass -input or a positional argument")
		return 1
	}
	if opts.Verbose {
		c.Log.SetLevel(hclog.Debug)
	}

	p := dxfpipe.New(c.Log)
	res, err := p.Run(context.Background(), opts)
	if err != nil {
		c.UI.Error(err.Error())
		if res == nil {
			return 1
		}
		// partial failure: outputs below still happened
	}
	if res != nil {
		c.UI.Output(fmt.Sprintf("outputs written to %s", res.OutDir))
		if res.Advisory != nil {
			c.UI.Warn(res.Advisory.String())
		}
	}
	if err != nil {
		return 1
	}
	return 0
}
