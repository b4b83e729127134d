package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/dxfpipe"
	"github.com/tsawler/dxfpipe/model"
	"github.com/tsawler/dxfpipe/writer"
)

func captureUI() (*cli.BasicUi, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &cli.BasicUi{Writer: out, ErrorWriter: errOut}, out, errOut
}

func TestRunCommandOptionsFromFlags(t *testing.T) {
	ui, _, _ := captureUI()
	c := &RunCommand{UI: ui, Log: hclog.NewNullLogger()}

	f := c.flags()
	require.NoError(t, f.Parse([]string{
		"-outdir", "exports",
		"-label", "cabin",
		"-timestamped-outdir",
		"-svg",
		"-pdf=false",
		"-dpi", "150",
		"-page", "A1",
		"-orientation", "landscape",
		"-margins-mm", "5",
		"-scale", "0.5",
		"-export-dwg",
		"-set-insunits", "4",
		"plan.dxf",
	}))

	opts, err := c.options(afero.NewMemMapFs(), f)
	require.NoError(t, err)

	assert.Equal(t, "plan.dxf", opts.Input)
	assert.Equal(t, "exports", opts.OutDir)
	assert.Equal(t, "cabin", opts.Label)
	assert.True(t, opts.Timestamp)
	assert.False(t, opts.PDF)
	assert.True(t, opts.PNG, "png keeps its default")
	assert.True(t, opts.SVG)
	assert.Equal(t, 150, opts.DPI)
	assert.Equal(t, "A1", opts.Page)
	assert.Equal(t, "landscape", opts.Orientation)
	assert.Equal(t, 5.0, opts.MarginsMM)
	assert.Equal(t, 0.5, opts.Scale)
	assert.True(t, opts.ExportDWG)
	require.NotNil(t, opts.SetInsUnits)
	assert.Equal(t, 4, *opts.SetInsUnits)
	require.NoError(t, opts.Validate())
}

func TestRunCommandDefaults(t *testing.T) {
	ui, _, _ := captureUI()
	c := &RunCommand{UI: ui, Log: hclog.NewNullLogger()}

	f := c.flags()
	require.NoError(t, f.Parse([]string{"plan.dxf"}))
	opts, err := c.options(afero.NewMemMapFs(), f)
	require.NoError(t, err)

	want := dxfpipe.DefaultOptions()
	assert.Equal(t, want.Page, opts.Page)
	assert.Equal(t, want.DPI, opts.DPI)
	assert.Equal(t, want.PDF, opts.PDF)
	assert.Equal(t, want.FlattenDXF, opts.FlattenDXF)
	assert.Nil(t, opts.SetInsUnits)
	assert.False(t, opts.ExportDWG)
}

func TestRunCommandConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pipe.yaml", []byte(
		"input: from-config.dxf\nlabel: lote7\nsvg: true\ndpi: 96\n"), 0o644))

	ui, _, _ := captureUI()
	c := &RunCommand{UI: ui, Log: hclog.NewNullLogger()}
	f := c.flags()
	require.NoError(t, f.Parse([]string{"-config", "pipe.yaml"}))

	opts, err := c.options(fs, f)
	require.NoError(t, err)
	assert.Equal(t, "from-config.dxf", opts.Input)
	assert.Equal(t, "lote7", opts.Label)
	assert.True(t, opts.SVG, "unset flag must not clobber config")
	assert.Equal(t, 96, opts.DPI, "unset flag must not clobber config")
	assert.True(t, opts.PDF, "unset config keys keep defaults")
}

func TestRunCommandFlagsOverrideConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pipe.yaml", []byte(
		"input: from-config.dxf\nsvg: true\ndpi: 96\npage: A1\noutdir: cfgout\n"), 0o644))

	ui, _, _ := captureUI()
	c := &RunCommand{UI: ui, Log: hclog.NewNullLogger()}
	f := c.flags()
	require.NoError(t, f.Parse([]string{"-config", "pipe.yaml", "-dpi", "150", "-svg=false"}))

	opts, err := c.options(fs, f)
	require.NoError(t, err)
	assert.Equal(t, 150, opts.DPI, "passed flag wins over config")
	assert.False(t, opts.SVG, "passed flag wins over config")
	assert.Equal(t, "A1", opts.Page, "untouched config value survives")
	assert.Equal(t, "cfgout", opts.OutDir, "untouched config value survives")
	assert.Equal(t, "from-config.dxf", opts.Input)
}

func TestRunCommandPositionalOverridesConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "pipe.yaml", []byte("input: from-config.dxf\n"), 0o644))

	ui, _, _ := captureUI()
	c := &RunCommand{UI: ui, Log: hclog.NewNullLogger()}
	f := c.flags()
	require.NoError(t, f.Parse([]string{"-config", "pipe.yaml", "cli.dxf"}))

	opts, err := c.options(fs, f)
	require.NoError(t, err)
	assert.Equal(t, "cli.dxf", opts.Input)
}

func TestAuditCommandOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := model.NewDocument("AC1032")
	doc.Header.Units = model.UnitMillimeters
	doc.AddLayer("WALLS")
	doc.AddEntity(&model.Line{Layer: "WALLS", Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 10, Y: 5}})
	require.NoError(t, writer.Save(fs, "plan.dxf", doc))

	ui, out, _ := captureUI()
	c := &AuditCommand{UI: ui, Log: hclog.NewNullLogger(), FS: fs}

	code := c.Run([]string{"plan.dxf"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), `"dxfversion": "AC1032"`)
	assert.Contains(t, out.String(), `"total_entities_modelspace": 1`)
	assert.Contains(t, out.String(), "no findings")
}

func TestAuditCommandMissingFile(t *testing.T) {
	ui, _, errOut := captureUI()
	c := &AuditCommand{UI: ui, Log: hclog.NewNullLogger(), FS: afero.NewMemMapFs()}

	code := c.Run([]string{"absent.dxf"})
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "absent.dxf")
}

func TestAuditCommandArgCount(t *testing.T) {
	ui, _, errOut := captureUI()
	c := &AuditCommand{UI: ui, Log: hclog.NewNullLogger(), FS: afero.NewMemMapFs()}
	assert.Equal(t, 1, c.Run(nil))
	assert.Contains(t, errOut.String(), "exactly one input file")
}

func TestVersionCommand(t *testing.T) {
	ui, out, _ := captureUI()
	c := &VersionCommand{UI: ui}
	assert.Equal(t, 0, c.Run(nil))
	assert.True(t, strings.HasPrefix(out.String(), "dxfpipe "))
}
