// Package writer serializes a model document back to DXF. It produces the
// four sections the pipeline's documents carry (HEADER, TABLES, BLOCKS,
// ENTITIES) and is used by the flatten and unit-fix outputs.
package writer

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tsawler/dxfpipe/core"
	"github.com/tsawler/dxfpipe/model"
)

// Write serializes doc to w as DXF.
func Write(w io.Writer, doc *model.Document) error {
	tw := core.NewTagWriter(w)

	writeHeader(tw, &doc.Header)
	writeTables(tw, doc)
	writeBlocks(tw, doc)

	tw.Tag(core.CodeStructure, "SECTION")
	tw.Tag(core.CodeName, "ENTITIES")
	for _, e := range doc.Entities {
		writeEntity(tw, e)
	}
	tw.Tag(core.CodeStructure, "ENDSEC")
	tw.Tag(core.CodeStructure, "EOF")

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write dxf: %w", err)
	}
	return nil
}

// Save writes doc to path on fs, creating parent directories as needed.
func Save(fs afero.Fs, path string, doc *model.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := Write(f, doc); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeHeader(tw *core.TagWriter, h *model.Header) {
	tw.Tag(core.CodeStructure, "SECTION")
	tw.Tag(core.CodeName, "HEADER")

	version := h.Version
	if version == "" {
		version = "AC1024"
	}
	tw.Tag(core.CodeVariable, "$ACADVER")
	tw.Tag(core.CodeText, version)
	if h.HandSeed != "" {
		tw.Tag(core.CodeVariable, "$HANDSEED")
		tw.Tag(core.CodeHandle, h.HandSeed)
	}
	if h.CodePage != "" {
		tw.Tag(core.CodeVariable, "$DWGCODEPAGE")
		tw.Tag(3, h.CodePage)
	}
	tw.Tag(core.CodeVariable, "$INSUNITS")
	tw.Int(core.CodeInt16, int(h.Units))
	if h.ExtMin != nil && h.ExtMax != nil {
		tw.Tag(core.CodeVariable, "$EXTMIN")
		tw.Float(core.CodeX, h.ExtMin.X)
		tw.Float(core.CodeY, h.ExtMin.Y)
		tw.Float(core.CodeZ, 0)
		tw.Tag(core.CodeVariable, "$EXTMAX")
		tw.Float(core.CodeX, h.ExtMax.X)
		tw.Float(core.CodeY, h.ExtMax.Y)
		tw.Float(core.CodeZ, 0)
	}
	tw.Tag(core.CodeStructure, "ENDSEC")
}

func writeTables(tw *core.TagWriter, doc *model.Document) {
	tw.Tag(core.CodeStructure, "SECTION")
	tw.Tag(core.CodeName, "TABLES")
	tw.Tag(core.CodeStructure, "TABLE")
	tw.Tag(core.CodeName, "LAYER")
	for _, name := range doc.LayerNames() {
		l := doc.Layer(name)
		tw.Tag(core.CodeStructure, "LAYER")
		tw.Tag(core.CodeName, l.Name)
		tw.Int(core.CodeInt16, 0)
		tw.Int(62, l.Color)
	}
	tw.Tag(core.CodeStructure, "ENDTAB")
	tw.Tag(core.CodeStructure, "ENDSEC")
}

func writeBlocks(tw *core.TagWriter, doc *model.Document) {
	tw.Tag(core.CodeStructure, "SECTION")
	tw.Tag(core.CodeName, "BLOCKS")
	for _, name := range doc.BlockNames() {
		blk := doc.Block(name)
		tw.Tag(core.CodeStructure, "BLOCK")
		tw.Tag(core.CodeName, blk.Name)
		tw.Int(core.CodeInt16, 0)
		tw.Float(core.CodeX, blk.Base.X)
		tw.Float(core.CodeY, blk.Base.Y)
		for _, e := range blk.Entities {
			writeEntity(tw, e)
		}
		tw.Tag(core.CodeStructure, "ENDBLK")
	}
	tw.Tag(core.CodeStructure, "ENDSEC")
}

func writeEntity(tw *core.TagWriter, e model.Entity) {
	switch v := e.(type) {
	case *model.Line:
		tw.Tag(core.CodeStructure, "LINE")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Float(core.CodeX, v.Start.X)
		tw.Float(core.CodeY, v.Start.Y)
		tw.Float(core.CodeX2, v.End.X)
		tw.Float(core.CodeY2, v.End.Y)
	case *model.LWPolyline:
		tw.Tag(core.CodeStructure, "LWPOLYLINE")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Int(core.CodeInt32, len(v.Vertices))
		flags := 0
		if v.Closed {
			flags = 1
		}
		tw.Int(core.CodeInt16, flags)
		for _, p := range v.Vertices {
			tw.Float(core.CodeX, p.X)
			tw.Float(core.CodeY, p.Y)
		}
	case *model.Circle:
		tw.Tag(core.CodeStructure, "CIRCLE")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Float(core.CodeX, v.Center.X)
		tw.Float(core.CodeY, v.Center.Y)
		tw.Float(core.CodeRadius, v.Radius)
	case *model.Arc:
		tw.Tag(core.CodeStructure, "ARC")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Float(core.CodeX, v.Center.X)
		tw.Float(core.CodeY, v.Center.Y)
		tw.Float(core.CodeRadius, v.Radius)
		tw.Float(50, v.StartAngle)
		tw.Float(51, v.EndAngle)
	case *model.Text:
		tw.Tag(core.CodeStructure, "TEXT")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Tag(core.CodeText, v.Value)
		tw.Float(core.CodeX, v.Insert.X)
		tw.Float(core.CodeY, v.Insert.Y)
		tw.Float(core.CodeRadius, v.Height)
	case *model.PointEntity:
		tw.Tag(core.CodeStructure, "POINT")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Float(core.CodeX, v.Position.X)
		tw.Float(core.CodeY, v.Position.Y)
	case *model.Insert:
		tw.Tag(core.CodeStructure, "INSERT")
		tw.Tag(core.CodeLayer, v.Layer)
		tw.Tag(core.CodeName, v.Block)
		tw.Float(core.CodeX, v.Position.X)
		tw.Float(core.CodeY, v.Position.Y)
		if v.ScaleX != 0 && v.ScaleX != 1 {
			tw.Float(41, v.ScaleX)
		}
		if v.ScaleY != 0 && v.ScaleY != 1 {
			tw.Float(42, v.ScaleY)
		}
		if v.Rotation != 0 {
			tw.Float(50, v.Rotation)
		}
	}
}
