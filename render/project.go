package render

import (
	"github.com/tsawler/dxfpipe/layout"
	"github.com/tsawler/dxfpipe/model"
)

// projector maps drawing-space coordinates onto page millimeters with the
// origin at the lower-left page corner.
type projector struct {
	originX float64
	originY float64
	lay     layout.ResolvedLayout
}

func newProjector(ext model.Extents, lay layout.ResolvedLayout) projector {
	p := projector{lay: lay}
	if ext.Defined() {
		p.originX = ext.MinX
		p.originY = ext.MinY
	}
	return p
}

func (p projector) page(pt model.Point) (x, y float64) {
	x = p.lay.OffsetX + (pt.X-p.originX)*p.lay.Scale
	y = p.lay.OffsetY + (pt.Y-p.originY)*p.lay.Scale
	return x, y
}

// pageTopDown is page with the Y axis flipped to run downwards, as PDF
// (in fpdf's convention), SVG and raster images expect.
func (p projector) pageTopDown(pt model.Point) (x, y float64) {
	x, y = p.page(pt)
	return x, p.lay.PageHeight - y
}

// mmToPoints converts millimeters to typographic points for font sizing.
const mmToPoints = 72.0 / 25.4
