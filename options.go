package dxfpipe

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/render"
)

// Options holds the configuration for one pipeline run. The zero value is
// not usable; start from [DefaultOptions] and override.
type Options struct {
	// Input is the DXF file to process.
	Input string `yaml:"input"`

	// OutDir is the base output directory. Label and Timestamp append
	// subdirectories below it.
	OutDir    string `yaml:"outdir"`
	Label     string `yaml:"label"`
	Timestamp bool   `yaml:"timestamped_outdir"`

	// Preview selection.
	PDF bool `yaml:"pdf"`
	PNG bool `yaml:"png"`
	SVG bool `yaml:"svg"`
	DPI int  `yaml:"dpi"`

	// Page layout.
	Page        string  `yaml:"page"`
	Orientation string  `yaml:"orientation"`
	MarginsMM   float64 `yaml:"margins_mm"`
	FitPage     bool    `yaml:"fit_page"`
	// Scale, when positive, fixes the drawing scale and disables fit.
	Scale float64 `yaml:"scale"`

	// Extra outputs.
	FlattenDXF bool `yaml:"export_flattened_dxf"`
	ExportDWG  bool `yaml:"export_dwg"`
	// SetInsUnits, when set, writes a copy of the drawing with $INSUNITS
	// forced to this code.
	SetInsUnits *int `yaml:"set_insunits"`

	Verbose bool `yaml:"verbose"`
}

// DefaultOptions returns the pipeline defaults: PDF and PNG previews on an
// auto-oriented A3 page with 10 mm margins, plus the flattened DXF copy.
func DefaultOptions() Options {
	return Options{
		OutDir:      "out",
		PDF:         true,
		PNG:         true,
		DPI:         300,
		Page:        "A3",
		Orientation: "auto",
		MarginsMM:   10,
		FitPage:     true,
		FlattenDXF:  true,
	}
}

// LoadOptions reads a YAML config file into a fresh default Options. Keys
// absent from the file keep their defaults.
func LoadOptions(fs afero.Fs, path string) (Options, error) {
	opts := DefaultOptions()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse config %s: %w", path, err)
	}
	return opts, nil
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Input, validation.Required),
		validation.Field(&o.OutDir, validation.Required),
		validation.Field(&o.DPI, validation.Min(1)),
		validation.Field(&o.Page, validation.By(func(any) error {
			_, err := layout.ParsePageSize(o.Page)
			return err
		})),
		validation.Field(&o.Orientation, validation.By(func(any) error {
			_, err := layout.ParseOrientation(o.Orientation)
			return err
		})),
		validation.Field(&o.MarginsMM, validation.Min(0.0)),
		validation.Field(&o.Scale, validation.By(func(any) error {
			if o.Scale < 0 || math.IsInf(o.Scale, 0) || math.IsNaN(o.Scale) {
				return errors.New("must be a non-negative finite number")
			}
			return nil
		})),
		validation.Field(&o.SetInsUnits, validation.Min(0), validation.Max(24)),
	)
}

// OutputDir composes the effective output directory from the base, the
// optional label and the optional run timestamp.
func (o Options) OutputDir(now time.Time) string {
	dir := o.OutDir
	if o.Label != "" {
		dir = filepath.Join(dir, o.Label)
	}
	if o.Timestamp {
		dir = filepath.Join(dir, now.Format("20060102_150405"))
	}
	return dir
}

// pageSpec converts the flag-level page settings into a layout spec. A
// positive Scale wins over fit; FitPage off without a scale renders 1:1.
func (o Options) pageSpec() (layout.PageSpec, error) {
	size, err := layout.ParsePageSize(o.Page)
	if err != nil {
		return layout.PageSpec{}, err
	}
	orient, err := layout.ParseOrientation(o.Orientation)
	if err != nil {
		return layout.PageSpec{}, err
	}
	spec := layout.PageSpec{Size: size, Orientation: orient, MarginMM: o.MarginsMM, Fit: layout.FitAuto}
	switch {
	case o.Scale > 0:
		spec.Fit = layout.FitExplicit
		spec.Scale = o.Scale
	case !o.FitPage:
		spec.Fit = layout.FitExplicit
		spec.Scale = 1
	}
	return spec, nil
}

func (o Options) previewOptions() render.PreviewOptions {
	return render.PreviewOptions{PDF: o.PDF, PNG: o.PNG, SVG: o.SVG, DPI: o.DPI}
}
