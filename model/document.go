package model

import "sort"

// Header holds the subset of DXF header variables the pipeline uses.
type Header struct {
	Version  string // $ACADVER, e.g. "AC1032"
	HandSeed string // $HANDSEED
	CodePage string // $DWGCODEPAGE, e.g. "ANSI_1252"
	Units    InsUnits

	// $EXTMIN/$EXTMAX as stored in the file. Either may be absent, and
	// when present they are not guaranteed to be consistent with the
	// geometry; the extents package decides whether to trust them.
	ExtMin *Point
	ExtMax *Point
}

// Layer is one record of the LAYER table.
type Layer struct {
	Name  string
	Color int
}

// Block is a named block definition with its base point and constituent
// entities.
type Block struct {
	Name     string
	Base     Point
	Entities []Entity
}

// Document is an in-memory DXF drawing: header, layer table, block
// definitions and the modelspace entity list.
type Document struct {
	Header   Header
	Entities []Entity

	layers map[string]*Layer
	blocks map[string]*Block
}

// NewDocument creates an empty document for the given DXF version string.
func NewDocument(version string) *Document {
	return &Document{
		Header: Header{Version: version},
		layers: make(map[string]*Layer),
		blocks: make(map[string]*Block),
	}
}

// AddLayer adds a layer record, replacing any existing record of the same
// name, and returns it.
func (d *Document) AddLayer(name string) *Layer {
	l := &Layer{Name: name, Color: 7}
	d.layers[name] = l
	return l
}

// Layer returns the named layer record, or nil.
func (d *Document) Layer(name string) *Layer {
	return d.layers[name]
}

// LayerNames returns all layer names in sorted order.
func (d *Document) LayerNames() []string {
	names := make([]string, 0, len(d.layers))
	for name := range d.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddBlock adds a block definition, replacing any existing definition of
// the same name, and returns it.
func (d *Document) AddBlock(name string, base Point) *Block {
	b := &Block{Name: name, Base: base}
	d.blocks[name] = b
	return b
}

// Block returns the named block definition, or nil.
func (d *Document) Block(name string) *Block {
	return d.blocks[name]
}

// BlockNames returns all block names in sorted order.
func (d *Document) BlockNames() []string {
	names := make([]string, 0, len(d.blocks))
	for name := range d.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddEntity appends an entity to modelspace.
func (d *Document) AddEntity(e Entity) {
	d.Entities = append(d.Entities, e)
}

// insert expansion beyond this depth is treated as a reference cycle
const maxBlockDepth = 16

// ModelExtents computes the geometric bounding box of modelspace,
// resolving INSERT references through block definitions. Inserts that
// reference a missing block, or that nest deeper than maxBlockDepth,
// contribute nothing. The result is undefined when modelspace holds no
// bounding-capable geometry.
func (d *Document) ModelExtents() Extents {
	return d.entitiesExtents(d.Entities, Identity(), 0)
}

func (d *Document) entitiesExtents(entities []Entity, m Matrix, depth int) Extents {
	if depth > maxBlockDepth {
		return Extents{}
	}
	ext := Extents{}
	for _, e := range entities {
		if ins, ok := e.(*Insert); ok {
			blk := d.blocks[ins.Block]
			if blk == nil {
				continue
			}
			sub := ins.Transform(blk.Base).Mul(m)
			ext = ext.Union(d.entitiesExtents(blk.Entities, sub, depth+1))
			continue
		}
		ext = ext.Union(e.Extents().Transformed(m))
	}
	return ext
}

// Clone returns a deep copy of the document structure. Entity values are
// shared: entities are never mutated after parsing, so copying the slices
// and tables is sufficient for the unit-fix and flatten outputs.
func (d *Document) Clone() *Document {
	out := NewDocument(d.Header.Version)
	out.Header = d.Header
	if d.Header.ExtMin != nil {
		p := *d.Header.ExtMin
		out.Header.ExtMin = &p
	}
	if d.Header.ExtMax != nil {
		p := *d.Header.ExtMax
		out.Header.ExtMax = &p
	}
	for name, l := range d.layers {
		cp := *l
		out.layers[name] = &cp
	}
	for name, b := range d.blocks {
		cp := &Block{Name: b.Name, Base: b.Base}
		cp.Entities = append(cp.Entities, b.Entities...)
		out.blocks[name] = cp
	}
	out.Entities = append(out.Entities, d.Entities...)
	return out
}
