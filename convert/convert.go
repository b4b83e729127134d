// Package convert shells out to the ODA File Converter to translate the
// cleaned DXF output into DWG. The converter is an external, optionally
// installed tool: when it cannot be located the caller gets
// [ErrConverterNotFound] and the rest of the pipeline is unaffected.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
)

// ErrConverterNotFound reports that no ODA File Converter binary could be
// located on this machine.
var ErrConverterNotFound = errors.New("ODA File Converter not found")

// Converter output parameters. The ODA tool takes the target format as a
// pair of positional version/type arguments.
const (
	outputVersion = "ACAD2018"
	outputType    = "DWG"
)

// candidates are checked in order; bare names go through $PATH.
var candidates = []string{
	"ODAFileConverter",
	"/usr/bin/ODAFileConverter",
	"/opt/ODAFileConverter/ODAFileConverter",
	"/Applications/ODAFileConverter.app/Contents/MacOS/ODAFileConverter",
}

// Find locates the ODA File Converter binary. Absolute candidates are
// probed directly, bare names through the PATH lookup.
func Find() (string, error) {
	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", ErrConverterNotFound
}

// Converter wraps one located ODA File Converter binary.
type Converter struct {
	// Path is the resolved binary location.
	Path string

	Log hclog.Logger
}

// New locates the converter and returns a ready Converter, or
// ErrConverterNotFound when the tool is not installed.
func New(log hclog.Logger) (*Converter, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}
	return &Converter{Path: path, Log: log}, nil
}

// args builds the ODA File Converter command line. The tool converts whole
// directories; filter restricts it to matching file names.
func args(inputDir, outputDir, filter string) []string {
	// input, output, version, type, recurse, audit, [filter]
	a := []string{inputDir, outputDir, outputVersion, outputType, "0", "1"}
	if filter != "" {
		a = append(a, filter)
	}
	return a
}

// ToDWG converts every DXF in inputDir matching filter (an ODA file name
// pattern such as "cleaned_units_fix.dxf"; empty converts the whole
// directory) into a DWG in outputDir.
func (c *Converter) ToDWG(ctx context.Context, inputDir, outputDir, filter string) error {
	argv := args(inputDir, outputDir, filter)
	c.Log.Debug("running ODA File Converter", "path", c.Path, "args", argv)

	cmd := exec.CommandContext(ctx, c.Path, argv...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if len(out) > 0 {
			return fmt.Errorf("dwg conversion: %w: %s", err, out)
		}
		return fmt.Errorf("dwg conversion: %w", err)
	}
	if len(out) > 0 {
		c.Log.Debug("converter output", "output", string(out))
	}
	return nil
}
