// Package stats computes structural statistics for a drawing: entity,
// layer and block-insertion counts over modelspace, together with header
// metadata and resolved extents. The result feeds the report writers and
// the operator summary.
package stats

import (
	"github.com/tsawler/dxfpipe/extents"
	"github.com/tsawler/dxfpipe/model"
)

// ExtentInfo describes the resolved extents and where they came from.
type ExtentInfo struct {
	Source extents.Source `json:"source"`
	// Defined is false when no extents could be determined; the remaining
	// fields are zero and meaningless in that case.
	Defined bool    `json:"defined"`
	MinX    float64 `json:"min_x"`
	MinY    float64 `json:"min_y"`
	MaxX    float64 `json:"max_x"`
	MaxY    float64 `json:"max_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Stats is the structural summary of one drawing.
type Stats struct {
	DXFVersion    string         `json:"dxfversion"`
	HandSeed      string         `json:"handseed"`
	InsUnits      int            `json:"insunits"`
	InsUnitsName  string         `json:"insunits_name"`
	Extents       ExtentInfo     `json:"extents"`
	TotalEntities int            `json:"total_entities_modelspace"`
	EntityCounts  map[string]int `json:"entity_counts"`
	LayerCounts   map[string]int `json:"layer_counts"`
	Layers        []string       `json:"layers"`
	Blocks        []string       `json:"blocks"`
	InsertCounts  map[string]int `json:"insert_counts_by_block"`
}

// Compute walks modelspace and assembles the summary. The extents and
// their source are supplied by the caller so that the same resolution is
// shared with the rest of the pipeline.
func Compute(doc *model.Document, ext model.Extents, source extents.Source) *Stats {
	s := &Stats{
		DXFVersion:   doc.Header.Version,
		HandSeed:     doc.Header.HandSeed,
		InsUnits:     int(doc.Header.Units),
		InsUnitsName: doc.Header.Units.String(),
		EntityCounts: make(map[string]int),
		LayerCounts:  make(map[string]int),
		InsertCounts: make(map[string]int),
		Layers:       doc.LayerNames(),
		Blocks:       doc.BlockNames(),
	}

	for _, e := range doc.Entities {
		s.EntityCounts[e.DXFType()]++
		s.LayerCounts[e.LayerName()]++
		if ins, ok := e.(*model.Insert); ok {
			s.InsertCounts[ins.Block]++
		}
	}
	s.TotalEntities = len(doc.Entities)

	// every declared block appears in the insert table, inserted or not
	for _, name := range s.Blocks {
		if _, ok := s.InsertCounts[name]; !ok {
			s.InsertCounts[name] = 0
		}
	}

	s.Extents = ExtentInfo{Source: source, Defined: ext.Defined()}
	if ext.Defined() {
		s.Extents.MinX = ext.MinX
		s.Extents.MinY = ext.MinY
		s.Extents.MaxX = ext.MaxX
		s.Extents.MaxY = ext.MaxY
		s.Extents.Width = ext.Width()
		s.Extents.Height = ext.Height()
	}
	return s
}
