package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/dxfpipe/core"
	"github.com/tsawler/dxfpipe/model"
)

// LoadError is the fatal error returned when a file cannot be recovered
// into a document at all: unreadable input or input with no DXF tag
// structure.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load failed: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Open reads and recovers the DXF file at path.
//
// The returned report is never nil: a clean file simply yields an empty
// report. Open fails only with a *LoadError.
func Open(path string) (*model.Document, *AuditReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	doc, report, err := Read(f)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, nil, err
	}
	return doc, report, nil
}

// Read recovers a document from r. See Open.
func Read(r io.Reader) (*model.Document, *AuditReport, error) {
	p := &parser{
		lex:    core.NewLexer(r),
		doc:    model.NewDocument(""),
		report: &AuditReport{},
	}
	if err := p.run(); err != nil {
		return nil, nil, err
	}
	audit(p.doc, p.report)
	return p.doc, p.report, nil
}

type parser struct {
	lex    *core.Lexer
	doc    *model.Document
	report *AuditReport

	peeked   *core.Tag
	sections int
}

func (p *parser) next() (core.Tag, bool) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, true
	}
	t, err := p.lex.Next()
	if err != nil {
		return core.Tag{}, false
	}
	return t, true
}

func (p *parser) push(t core.Tag) {
	p.peeked = &t
}

func (p *parser) run() error {
	for {
		t, ok := p.next()
		if !ok {
			break
		}
		if t.Code != core.CodeStructure {
			continue
		}
		switch t.Value {
		case "SECTION":
			p.sections++
			p.parseSection()
		case "EOF":
			// trailing tags after EOF are ignored
		}
	}
	if err := p.lex.Err(); err != nil {
		return &LoadError{Err: err}
	}
	for _, s := range p.lex.Skipped() {
		p.report.add(SeverityWarning, "line %d: skipped unparseable input %q (%s)", s.Line, s.Text, s.Reason)
	}
	if p.sections == 0 {
		return &LoadError{Err: fmt.Errorf("no DXF sections found")}
	}
	return nil
}

func (p *parser) parseSection() {
	t, ok := p.next()
	if !ok {
		p.report.add(SeverityWarning, "file ends inside SECTION marker")
		return
	}
	if t.Code != core.CodeName {
		p.report.add(SeverityWarning, "line %d: SECTION without name tag", t.Line)
		p.push(t)
		p.skipSection()
		return
	}
	switch t.Value {
	case "HEADER":
		p.parseHeader()
	case "TABLES":
		p.parseTables()
	case "BLOCKS":
		p.parseBlocks()
	case "ENTITIES":
		p.parseEntities(func(e model.Entity) { p.doc.AddEntity(e) })
	default:
		p.skipSection()
	}
}

// skipSection consumes tags until ENDSEC (or EOF, recorded as an issue).
func (p *parser) skipSection() {
	for {
		t, ok := p.next()
		if !ok {
			p.report.add(SeverityWarning, "unterminated section at end of file")
			return
		}
		if t.Code == core.CodeStructure && t.Value == "ENDSEC" {
			return
		}
	}
}

func (p *parser) parseHeader() {
	h := &p.doc.Header
	var current string
	var vec model.Point
	var sawX, sawY bool

	flushVector := func() {
		if !sawX || !sawY {
			if current == "$EXTMIN" || current == "$EXTMAX" {
				p.report.add(SeverityWarning, "header %s has incomplete coordinates", current)
			}
			return
		}
		v := vec
		switch current {
		case "$EXTMIN":
			h.ExtMin = &v
		case "$EXTMAX":
			h.ExtMax = &v
		}
	}

	for {
		t, ok := p.next()
		if !ok {
			flushVector()
			p.report.add(SeverityWarning, "unterminated HEADER section")
			return
		}
		switch {
		case t.Code == core.CodeStructure && t.Value == "ENDSEC":
			flushVector()
			return
		case t.Code == core.CodeVariable:
			flushVector()
			current = t.Value
			vec, sawX, sawY = model.Point{}, false, false
		default:
			p.headerValue(t, current, &vec, &sawX, &sawY)
		}
	}
}

func (p *parser) headerValue(t core.Tag, current string, vec *model.Point, sawX, sawY *bool) {
	switch current {
	case "$ACADVER":
		if t.Code == core.CodeText {
			p.doc.Header.Version = t.Value
		}
	case "$HANDSEED":
		if t.Code == core.CodeHandle {
			p.doc.Header.HandSeed = t.Value
		}
	case "$DWGCODEPAGE":
		if t.Code == 3 {
			p.doc.Header.CodePage = t.Value
		}
	case "$INSUNITS":
		if t.Code == core.CodeInt16 {
			if v, err := t.Int(); err == nil {
				p.doc.Header.Units = model.InsUnits(v)
			} else {
				p.report.add(SeverityWarning, "line %d: invalid $INSUNITS value %q", t.Line, t.Value)
			}
		}
	case "$EXTMIN", "$EXTMAX":
		switch t.Code {
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				vec.X = v
				*sawX = true
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil {
				vec.Y = v
				*sawY = true
			}
		}
	}
}

func (p *parser) parseTables() {
	var inLayerTable bool
	for {
		t, ok := p.next()
		if !ok {
			p.report.add(SeverityWarning, "unterminated TABLES section")
			return
		}
		if t.Code == core.CodeStructure {
			switch t.Value {
			case "ENDSEC":
				return
			case "TABLE":
				inLayerTable = false
				if name, ok := p.next(); ok {
					if name.Code == core.CodeName && name.Value == "LAYER" {
						inLayerTable = true
					} else {
						p.push(name)
					}
				}
			case "LAYER":
				if inLayerTable {
					p.parseLayerRecord()
				}
			}
		}
	}
}

func (p *parser) parseLayerRecord() {
	var name string
	color := 7
	for {
		t, ok := p.next()
		if !ok {
			break
		}
		if t.Code == core.CodeStructure {
			p.push(t)
			break
		}
		switch t.Code {
		case core.CodeName:
			name = p.decode(t.Value)
		case 62:
			if v, err := t.Int(); err == nil {
				color = v
			}
		}
	}
	if name == "" {
		p.report.add(SeverityWarning, "layer record without a name discarded")
		return
	}
	p.doc.AddLayer(name).Color = color
}

func (p *parser) parseBlocks() {
	for {
		t, ok := p.next()
		if !ok {
			p.report.add(SeverityWarning, "unterminated BLOCKS section")
			return
		}
		if t.Code != core.CodeStructure {
			continue
		}
		switch t.Value {
		case "ENDSEC":
			return
		case "BLOCK":
			p.parseBlock()
		}
	}
}

func (p *parser) parseBlock() {
	var name string
	var base model.Point
	// block header tags up to the first entity or ENDBLK
	for {
		t, ok := p.next()
		if !ok {
			p.report.add(SeverityWarning, "unterminated BLOCK definition")
			return
		}
		if t.Code == core.CodeStructure {
			p.push(t)
			break
		}
		switch t.Code {
		case core.CodeName:
			name = p.decode(t.Value)
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				base.X = v
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil {
				base.Y = v
			}
		}
	}
	if name == "" {
		p.report.add(SeverityWarning, "BLOCK without a name discarded")
		p.skipToEndblk()
		return
	}
	blk := p.doc.AddBlock(name, base)
	p.parseEntities(func(e model.Entity) { blk.Entities = append(blk.Entities, e) })
}

func (p *parser) skipToEndblk() {
	for {
		t, ok := p.next()
		if !ok {
			return
		}
		if t.Code == core.CodeStructure && (t.Value == "ENDBLK" || t.Value == "ENDSEC") {
			if t.Value == "ENDSEC" {
				p.push(t)
			}
			return
		}
	}
}

// parseEntities consumes entities until ENDSEC or ENDBLK, handing each
// successfully parsed entity to sink. Used for both modelspace and block
// contents.
func (p *parser) parseEntities(sink func(model.Entity)) {
	for {
		t, ok := p.next()
		if !ok {
			p.report.add(SeverityWarning, "unterminated entity list at end of file")
			return
		}
		if t.Code != core.CodeStructure {
			continue
		}
		switch t.Value {
		case "ENDSEC":
			return
		case "ENDBLK":
			return
		default:
			if e := p.parseEntity(t); e != nil {
				sink(e)
			}
		}
	}
}

// entityTags gathers all tags belonging to the current entity, stopping at
// (and pushing back) the next structural tag.
func (p *parser) entityTags() []core.Tag {
	var tags []core.Tag
	for {
		t, ok := p.next()
		if !ok {
			return tags
		}
		if t.Code == core.CodeStructure {
			p.push(t)
			return tags
		}
		tags = append(tags, t)
	}
}

func (p *parser) parseEntity(start core.Tag) model.Entity {
	tags := p.entityTags()
	switch start.Value {
	case "LINE":
		return p.parseLine(start, tags)
	case "LWPOLYLINE":
		return p.parseLWPolyline(start, tags)
	case "CIRCLE", "ARC":
		return p.parseCircular(start, tags)
	case "TEXT", "MTEXT":
		return p.parseText(start, tags)
	case "POINT":
		return p.parsePoint(tags)
	case "INSERT":
		return p.parseInsert(start, tags)
	default:
		p.report.add(SeverityInfo, "line %d: unsupported entity %s skipped", start.Line, start.Value)
		return nil
	}
}

func layerOf(tags []core.Tag) string {
	for _, t := range tags {
		if t.Code == core.CodeLayer {
			return t.Value
		}
	}
	return "0"
}

func (p *parser) parseLine(start core.Tag, tags []core.Tag) model.Entity {
	l := &model.Line{Layer: layerOf(tags)}
	var sawStart, sawEnd bool
	for _, t := range tags {
		v, err := t.Float()
		if err != nil {
			continue
		}
		switch t.Code {
		case core.CodeX:
			l.Start.X, sawStart = v, true
		case core.CodeY:
			l.Start.Y = v
		case core.CodeX2:
			l.End.X, sawEnd = v, true
		case core.CodeY2:
			l.End.Y = v
		}
	}
	if !sawStart || !sawEnd {
		p.report.add(SeverityError, "line %d: LINE with missing endpoints discarded", start.Line)
		return nil
	}
	return l
}

func (p *parser) parseLWPolyline(start core.Tag, tags []core.Tag) model.Entity {
	pl := &model.LWPolyline{Layer: layerOf(tags)}
	var cur *model.Point
	for _, t := range tags {
		switch t.Code {
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				pl.Vertices = append(pl.Vertices, model.Point{X: v})
				cur = &pl.Vertices[len(pl.Vertices)-1]
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil && cur != nil {
				cur.Y = v
			}
		case core.CodeInt16:
			if v, err := t.Int(); err == nil {
				pl.Closed = v&1 != 0
			}
		}
	}
	if len(pl.Vertices) < 2 {
		p.report.add(SeverityError, "line %d: LWPOLYLINE with %d vertices discarded", start.Line, len(pl.Vertices))
		return nil
	}
	return pl
}

func (p *parser) parseCircular(start core.Tag, tags []core.Tag) model.Entity {
	layer := layerOf(tags)
	var center model.Point
	var radius float64
	var startAng, endAng float64
	for _, t := range tags {
		v, err := t.Float()
		if err != nil {
			continue
		}
		switch t.Code {
		case core.CodeX:
			center.X = v
		case core.CodeY:
			center.Y = v
		case core.CodeRadius:
			radius = v
		case 50:
			startAng = v
		case 51:
			endAng = v
		}
	}
	if radius <= 0 {
		p.report.add(SeverityError, "line %d: %s with non-positive radius discarded", start.Line, start.Value)
		return nil
	}
	if start.Value == "ARC" {
		return &model.Arc{Layer: layer, Center: center, Radius: radius, StartAngle: startAng, EndAngle: endAng}
	}
	return &model.Circle{Layer: layer, Center: center, Radius: radius}
}

func (p *parser) parseText(start core.Tag, tags []core.Tag) model.Entity {
	txt := &model.Text{Layer: layerOf(tags)}
	for _, t := range tags {
		switch t.Code {
		case core.CodeText:
			txt.Value = p.decode(t.Value)
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				txt.Insert.X = v
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil {
				txt.Insert.Y = v
			}
		case core.CodeRadius:
			if v, err := t.Float(); err == nil {
				txt.Height = v
			}
		}
	}
	if txt.Value == "" {
		p.report.add(SeverityInfo, "line %d: empty %s skipped", start.Line, start.Value)
		return nil
	}
	return txt
}

func (p *parser) parsePoint(tags []core.Tag) model.Entity {
	pt := &model.PointEntity{Layer: layerOf(tags)}
	for _, t := range tags {
		switch t.Code {
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				pt.Position.X = v
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil {
				pt.Position.Y = v
			}
		}
	}
	return pt
}

func (p *parser) parseInsert(start core.Tag, tags []core.Tag) model.Entity {
	ins := &model.Insert{Layer: layerOf(tags), ScaleX: 1, ScaleY: 1}
	for _, t := range tags {
		switch t.Code {
		case core.CodeName:
			ins.Block = p.decode(t.Value)
		case core.CodeX:
			if v, err := t.Float(); err == nil {
				ins.Position.X = v
			}
		case core.CodeY:
			if v, err := t.Float(); err == nil {
				ins.Position.Y = v
			}
		case 41:
			if v, err := t.Float(); err == nil {
				ins.ScaleX = v
			}
		case 42:
			if v, err := t.Float(); err == nil {
				ins.ScaleY = v
			}
		case 50:
			if v, err := t.Float(); err == nil {
				ins.Rotation = v
			}
		}
	}
	if ins.Block == "" {
		p.report.add(SeverityError, "line %d: INSERT without block name discarded", start.Line)
		return nil
	}
	return ins
}

// decode converts a text value from the drawing code page when the file
// predates native UTF-8 support (R2007, AC1021).
func (p *parser) decode(s string) string {
	h := p.doc.Header
	if h.Version >= "AC1021" || h.CodePage == "" {
		return s
	}
	return decodeCodePage(s, h.CodePage)
}

// audit runs the post-parse cross-reference checks.
func audit(doc *model.Document, report *AuditReport) {
	// entities on undeclared layers: declare them and count a fix
	seen := map[string]bool{}
	checkLayer := func(e model.Entity) {
		name := e.LayerName()
		// layer "0" always exists implicitly
		if name == "" || name == "0" || seen[name] || doc.Layer(name) != nil {
			return
		}
		seen[name] = true
		doc.AddLayer(name)
		report.Fixed++
		report.add(SeverityWarning, "layer %q referenced but not declared; record added", name)
	}
	checkInsert := func(e model.Entity, where string) {
		ins, ok := e.(*model.Insert)
		if !ok {
			return
		}
		if doc.Block(ins.Block) == nil {
			report.add(SeverityError, "INSERT in %s references missing block %q", where, ins.Block)
		}
	}

	for _, e := range doc.Entities {
		checkLayer(e)
		checkInsert(e, "modelspace")
	}
	for _, name := range doc.BlockNames() {
		blk := doc.Block(name)
		for _, e := range blk.Entities {
			checkLayer(e)
			checkInsert(e, "block "+strings.ToUpper(name))
		}
	}

	// block reference cycles
	for _, name := range doc.BlockNames() {
		if path := findCycle(doc, name, nil); path != nil {
			report.add(SeverityError, "block reference cycle: %s", strings.Join(path, " -> "))
			break
		}
	}
}

func findCycle(doc *model.Document, name string, path []string) []string {
	for _, p := range path {
		if p == name {
			return append(path, name)
		}
	}
	blk := doc.Block(name)
	if blk == nil {
		return nil
	}
	path = append(path, name)
	for _, e := range blk.Entities {
		if ins, ok := e.(*model.Insert); ok {
			if cycle := findCycle(doc, ins.Block, path); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
