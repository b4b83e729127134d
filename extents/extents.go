// Package extents computes the authoritative modelspace bounding box of a
// drawing.
//
// Extent information in real-world DXF files is unreliable: geometry may be
// missing, and the $EXTMIN/$EXTMAX header fields are frequently stale,
// absent, or inconsistent. The resolver therefore runs an explicit ordered
// list of strategies and takes the first defined answer:
//
//  1. geometric bounding box of modelspace (the common case)
//  2. header $EXTMIN/$EXTMAX, if both are present and min <= max
//     componentwise
//
// When every strategy fails the result is the undefined [model.Extents]
// sentinel. Resolution never returns an error for a document that loaded
// successfully; callers decide how to treat unknown extents.
package extents

import (
	"github.com/tsawler/dxfpipe/model"
)

// Source identifies which strategy produced a result.
type Source string

const (
	// SourceGeometry is the modelspace geometric bounding box.
	SourceGeometry Source = "modelspace_bbox"
	// SourceHeader is the $EXTMIN/$EXTMAX header fallback.
	SourceHeader Source = "header_extents"
	// SourceNone means no strategy produced a defined box.
	SourceNone Source = "none"
)

// Strategy is one way of obtaining extents from a document. A strategy
// that cannot produce a defined box returns the undefined sentinel.
type Strategy struct {
	Source Source
	Fn     func(*model.Document) model.Extents
}

// Resolver resolves drawing extents by trying strategies in order.
type Resolver struct {
	strategies []Strategy
}

// NewResolver creates a resolver with the default strategy chain.
func NewResolver() *Resolver {
	return &Resolver{
		strategies: []Strategy{
			{Source: SourceGeometry, Fn: fromGeometry},
			{Source: SourceHeader, Fn: fromHeader},
		},
	}
}

// NewResolverWith creates a resolver with an explicit strategy list, in
// priority order. Used by tests to simulate strategy failure.
func NewResolverWith(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns the first defined box produced by the strategy chain,
// together with the source that produced it. When no strategy succeeds it
// returns the undefined sentinel and SourceNone.
func (r *Resolver) Resolve(doc *model.Document) (model.Extents, Source) {
	for _, s := range r.strategies {
		if ext := s.Fn(doc); ext.Defined() {
			return ext, s.Source
		}
	}
	return model.Extents{}, SourceNone
}

func fromGeometry(doc *model.Document) model.Extents {
	return doc.ModelExtents()
}

// fromHeader trusts $EXTMIN/$EXTMAX only when both are present and
// consistent. AutoCAD writes (+1e20, +1e20) / (-1e20, -1e20) into fresh
// drawings, which fails the min <= max check and is correctly rejected.
func fromHeader(doc *model.Document) model.Extents {
	min, max := doc.Header.ExtMin, doc.Header.ExtMax
	if min == nil || max == nil {
		return model.Extents{}
	}
	if min.X > max.X || min.Y > max.Y {
		return model.Extents{}
	}
	return model.NewExtents(*min, *max)
}
