package store

import (
	"unsafe"

	"github.com/gogpu/sketch/gfx"
)

// MetadataEntry associates one key/value string pair with an object.
// KeyIndex and ValueIndex address the metadata string tables.
type MetadataEntry struct {
	KeyIndex   uint32
	ValueIndex uint32
	ObjectID   uint32
}

// Storage owns one packed array per object kind plus the shared auxiliary
// arenas that variable-length records point into. All arenas are
// append-only, so recorded (offset, count) pairs stay valid; the single
// exception is interior group-children insertion, which AddToGroup
// compensates for by patching later groups' offsets.
type Storage struct {
	circles    []Circle
	rectangles []Rectangle
	lines      []Line
	ellipses   []Ellipse
	polygons   []Polygon
	polylines  []Polyline
	arcs       []Arc
	texts      []Text
	paths      []Path
	groups     []Group

	polygonPoints  []gfx.Point
	polylinePoints []gfx.Point
	pathSegments   []SegKind
	pathParams     []float32
	groupChildren  []ID

	textStrings []string
	fontNames   []string
	objectNames []string

	gradients     []gfx.Gradient
	gradientStops []gfx.GradientStop
	patterns      []string

	metadata       []MetadataEntry
	metadataKeys   []string
	metadataValues []string
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{}
}

// AddCircle appends a circle and returns its identifier.
func (s *Storage) AddCircle(x, y, radius float32) ID {
	id := MakeID(KindCircle, len(s.circles))
	s.circles = append(s.circles, Circle{
		Object: newObject(KindCircle),
		X:      x, Y: y, Radius: radius,
	})
	return id
}

// AddRectangle appends an axis-aligned rectangle and returns its identifier.
func (s *Storage) AddRectangle(x, y, width, height float32) ID {
	id := MakeID(KindRectangle, len(s.rectangles))
	s.rectangles = append(s.rectangles, Rectangle{
		Object: newObject(KindRectangle),
		X:      x, Y: y, Width: width, Height: height,
	})
	return id
}

// AddLine appends a line segment and returns its identifier.
func (s *Storage) AddLine(x1, y1, x2, y2 float32) ID {
	id := MakeID(KindLine, len(s.lines))
	s.lines = append(s.lines, Line{
		Object: newObject(KindLine),
		X1:     x1, Y1: y1, X2: x2, Y2: y2,
	})
	return id
}

// AddEllipse appends an ellipse and returns its identifier.
// rotation is in radians.
func (s *Storage) AddEllipse(x, y, rx, ry, rotation float32) ID {
	id := MakeID(KindEllipse, len(s.ellipses))
	s.ellipses = append(s.ellipses, Ellipse{
		Object: newObject(KindEllipse),
		X:      x, Y: y, RX: rx, RY: ry, Rotation: rotation,
	})
	return id
}

// AddPolygon appends a polygon; its vertices are copied into the shared
// point arena.
func (s *Storage) AddPolygon(points []gfx.Point, closed bool) ID {
	id := MakeID(KindPolygon, len(s.polygons))
	off := uint32(len(s.polygonPoints))
	s.polygonPoints = append(s.polygonPoints, points...)
	s.polygons = append(s.polygons, Polygon{
		Object:      newObject(KindPolygon),
		PointOffset: off,
		PointCount:  uint32(len(points)),
		Closed:      closed,
	})
	return id
}

// AddPolyline appends a polyline; its vertices are copied into the shared
// point arena.
func (s *Storage) AddPolyline(points []gfx.Point) ID {
	id := MakeID(KindPolyline, len(s.polylines))
	off := uint32(len(s.polylinePoints))
	s.polylinePoints = append(s.polylinePoints, points...)
	s.polylines = append(s.polylines, Polyline{
		Object:      newObject(KindPolyline),
		PointOffset: off,
		PointCount:  uint32(len(points)),
		Style:       LineSolid,
	})
	return id
}

// AddArc appends a circular arc. Angles are in radians.
func (s *Storage) AddArc(x, y, radius, startAngle, endAngle float32) ID {
	id := MakeID(KindArc, len(s.arcs))
	s.arcs = append(s.arcs, Arc{
		Object: newObject(KindArc),
		X:      x, Y: y, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle,
	})
	return id
}

// AddText appends a text object. The string is stored in the text table;
// font names are deduplicated.
func (s *Storage) AddText(x, y float32, text string, fontSize float32, font string) ID {
	id := MakeID(KindText, len(s.texts))
	textIdx := uint32(len(s.textStrings))
	s.textStrings = append(s.textStrings, text)
	s.texts = append(s.texts, Text{
		Object: newObject(KindText),
		X:      x, Y: y,
		FontSize:  fontSize,
		TextIndex: textIdx,
		FontIndex: s.internFont(font),
		Align:     AlignLeft,
		Baseline:  BaselineAlphabetic,
	})
	return id
}

func (s *Storage) internFont(font string) uint32 {
	for i, f := range s.fontNames {
		if f == font {
			return uint32(i)
		}
	}
	s.fontNames = append(s.fontNames, font)
	return uint32(len(s.fontNames) - 1)
}

// AddPath parses SVG path data (M, L, C, Q, A, Z; absolute and relative)
// and appends the path. A parse failure adds nothing.
func (s *Storage) AddPath(svgData string) (ID, error) {
	segs, params, err := parsePathData(svgData)
	if err != nil {
		return 0, err
	}
	id := MakeID(KindPath, len(s.paths))
	segOff := uint32(len(s.pathSegments))
	paramOff := uint32(len(s.pathParams))
	s.pathSegments = append(s.pathSegments, segs...)
	s.pathParams = append(s.pathParams, params...)
	s.paths = append(s.paths, Path{
		Object:      newObject(KindPath),
		SegOffset:   segOff,
		SegCount:    uint32(len(segs)),
		ParamOffset: paramOff,
		ParamCount:  uint32(len(params)),
	})
	return id, nil
}

// AddGroup appends a group holding the given children. The child IDs are
// copied into the shared children arena.
func (s *Storage) AddGroup(children []ID) ID {
	id := MakeID(KindGroup, len(s.groups))
	off := uint32(len(s.groupChildren))
	s.groupChildren = append(s.groupChildren, children...)
	s.groups = append(s.groups, Group{
		Object:      newObject(KindGroup),
		ChildOffset: off,
		ChildCount:  uint32(len(children)),
	})
	return id
}

// Circle returns the circle record for id, or (nil, false) when id does
// not name a circle. The pointer stays valid until the storage grows the
// circle array.
func (s *Storage) Circle(id ID) (*Circle, bool) {
	if id.Kind() != KindCircle || id.Index() >= len(s.circles) {
		return nil, false
	}
	return &s.circles[id.Index()], true
}

// Rectangle returns the rectangle record for id, or (nil, false).
func (s *Storage) Rectangle(id ID) (*Rectangle, bool) {
	if id.Kind() != KindRectangle || id.Index() >= len(s.rectangles) {
		return nil, false
	}
	return &s.rectangles[id.Index()], true
}

// Line returns the line record for id, or (nil, false).
func (s *Storage) Line(id ID) (*Line, bool) {
	if id.Kind() != KindLine || id.Index() >= len(s.lines) {
		return nil, false
	}
	return &s.lines[id.Index()], true
}

// Ellipse returns the ellipse record for id, or (nil, false).
func (s *Storage) Ellipse(id ID) (*Ellipse, bool) {
	if id.Kind() != KindEllipse || id.Index() >= len(s.ellipses) {
		return nil, false
	}
	return &s.ellipses[id.Index()], true
}

// Polygon returns the polygon record for id, or (nil, false).
func (s *Storage) Polygon(id ID) (*Polygon, bool) {
	if id.Kind() != KindPolygon || id.Index() >= len(s.polygons) {
		return nil, false
	}
	return &s.polygons[id.Index()], true
}

// Polyline returns the polyline record for id, or (nil, false).
func (s *Storage) Polyline(id ID) (*Polyline, bool) {
	if id.Kind() != KindPolyline || id.Index() >= len(s.polylines) {
		return nil, false
	}
	return &s.polylines[id.Index()], true
}

// Arc returns the arc record for id, or (nil, false).
func (s *Storage) Arc(id ID) (*Arc, bool) {
	if id.Kind() != KindArc || id.Index() >= len(s.arcs) {
		return nil, false
	}
	return &s.arcs[id.Index()], true
}

// Text returns the text record for id, or (nil, false).
func (s *Storage) Text(id ID) (*Text, bool) {
	if id.Kind() != KindText || id.Index() >= len(s.texts) {
		return nil, false
	}
	return &s.texts[id.Index()], true
}

// Path returns the path record for id, or (nil, false).
func (s *Storage) Path(id ID) (*Path, bool) {
	if id.Kind() != KindPath || id.Index() >= len(s.paths) {
		return nil, false
	}
	return &s.paths[id.Index()], true
}

// Group returns the group record for id, or (nil, false).
func (s *Storage) Group(id ID) (*Group, bool) {
	if id.Kind() != KindGroup || id.Index() >= len(s.groups) {
		return nil, false
	}
	return &s.groups[id.Index()], true
}

// header returns the common header of any valid object, or (nil, false).
func (s *Storage) header(id ID) (*Object, bool) {
	switch id.Kind() {
	case KindCircle:
		if c, ok := s.Circle(id); ok {
			return &c.Object, true
		}
	case KindRectangle:
		if r, ok := s.Rectangle(id); ok {
			return &r.Object, true
		}
	case KindLine:
		if l, ok := s.Line(id); ok {
			return &l.Object, true
		}
	case KindEllipse:
		if e, ok := s.Ellipse(id); ok {
			return &e.Object, true
		}
	case KindPolygon:
		if p, ok := s.Polygon(id); ok {
			return &p.Object, true
		}
	case KindPolyline:
		if p, ok := s.Polyline(id); ok {
			return &p.Object, true
		}
	case KindArc:
		if a, ok := s.Arc(id); ok {
			return &a.Object, true
		}
	case KindText:
		if t, ok := s.Text(id); ok {
			return &t.Object, true
		}
	case KindPath:
		if p, ok := s.Path(id); ok {
			return &p.Object, true
		}
	case KindGroup:
		if g, ok := s.Group(id); ok {
			return &g.Object, true
		}
	}
	return nil, false
}

// Header returns a copy of the object's common header.
func (s *Storage) Header(id ID) (Object, bool) {
	h, ok := s.header(id)
	if !ok {
		return Object{}, false
	}
	return *h, true
}

// Contains reports whether id names a live object.
func (s *Storage) Contains(id ID) bool {
	_, ok := s.header(id)
	return ok
}

// SetLayerID stamps the owning layer on an object.
func (s *Storage) SetLayerID(id ID, layer uint8) bool {
	h, ok := s.header(id)
	if !ok {
		return false
	}
	h.LayerID = layer
	return true
}

// SetFillColor applies a fill color across a heterogeneous ID list.
// Invalid identifiers are silently skipped.
func (s *Storage) SetFillColor(ids []ID, c gfx.Color) {
	for _, id := range ids {
		if h, ok := s.header(id); ok {
			h.Fill = c
			h.Flags |= FlagHasFill
		}
	}
}

// SetStrokeColor applies a stroke color across a heterogeneous ID list.
// Invalid identifiers are silently skipped.
func (s *Storage) SetStrokeColor(ids []ID, c gfx.Color) {
	for _, id := range ids {
		if h, ok := s.header(id); ok {
			h.Stroke = c
			h.Flags |= FlagHasStroke
		}
	}
}

// SetOpacity applies an opacity, clamped to [0, 1], across a heterogeneous
// ID list. Invalid identifiers are silently skipped.
func (s *Storage) SetOpacity(ids []ID, opacity float32) {
	opacity = min(max(opacity, 0), 1)
	for _, id := range ids {
		if h, ok := s.header(id); ok {
			h.Opacity = opacity
		}
	}
}

// AddLinearGradient registers a linear gradient and returns its one-based
// id for use with SetGradient. angle is in radians.
func (s *Storage) AddLinearGradient(stops []gfx.GradientStop, angle float32) uint16 {
	return s.addGradient(gfx.Gradient{
		Kind:  gfx.GradientLinear,
		Angle: angle,
	}, stops)
}

// AddRadialGradient registers a radial gradient and returns its one-based
// id for use with SetGradient.
func (s *Storage) AddRadialGradient(stops []gfx.GradientStop, cx, cy, radius float32) uint16 {
	return s.addGradient(gfx.Gradient{
		Kind:    gfx.GradientRadial,
		CenterX: cx,
		CenterY: cy,
		Radius:  radius,
	}, stops)
}

func (s *Storage) addGradient(g gfx.Gradient, stops []gfx.GradientStop) uint16 {
	g.StopOffset = uint16(len(s.gradientStops))
	g.StopCount = uint8(len(stops))
	s.gradientStops = append(s.gradientStops, stops...)
	s.gradients = append(s.gradients, g)
	return uint16(len(s.gradients))
}

// Gradient returns the gradient definition for a one-based gradient id.
func (s *Storage) Gradient(gid uint16) (gfx.Gradient, bool) {
	if gid == 0 || int(gid) > len(s.gradients) {
		return gfx.Gradient{}, false
	}
	return s.gradients[gid-1], true
}

// GradientStops returns the stop run of a gradient definition, or nil if
// the recorded range is out of bounds.
func (s *Storage) GradientStops(g gfx.Gradient) []gfx.GradientStop {
	off, cnt := int(g.StopOffset), int(g.StopCount)
	if off+cnt > len(s.gradientStops) {
		return nil
	}
	return s.gradientStops[off : off+cnt]
}

// SetGradient attaches a registered gradient to an object.
func (s *Storage) SetGradient(id ID, gid uint16) bool {
	h, ok := s.header(id)
	if !ok || (gid != 0 && int(gid) > len(s.gradients)) {
		return false
	}
	h.GradientID = gid
	if gid != 0 {
		h.Flags |= FlagHasGradient
	} else {
		h.Flags &^= FlagHasGradient
	}
	return true
}

// AddPattern registers a named pattern and returns its one-based id.
func (s *Storage) AddPattern(name string) uint16 {
	s.patterns = append(s.patterns, name)
	return uint16(len(s.patterns))
}

// Pattern returns the pattern name for a one-based pattern id.
func (s *Storage) Pattern(pid uint16) (string, bool) {
	if pid == 0 || int(pid) > len(s.patterns) {
		return "", false
	}
	return s.patterns[pid-1], true
}

// SetPattern attaches a registered pattern to an object.
func (s *Storage) SetPattern(id ID, pid uint16) bool {
	h, ok := s.header(id)
	if !ok || (pid != 0 && int(pid) > len(s.patterns)) {
		return false
	}
	h.PatternID = pid
	if pid != 0 {
		h.Flags |= FlagHasPattern
	} else {
		h.Flags &^= FlagHasPattern
	}
	return true
}

// SetName assigns a display name to an object.
func (s *Storage) SetName(id ID, name string) bool {
	h, ok := s.header(id)
	if !ok {
		return false
	}
	s.objectNames = append(s.objectNames, name)
	h.NameIndex = uint32(len(s.objectNames) - 1)
	return true
}

// Name returns an object's display name, or ("", false) when no name was
// assigned.
func (s *Storage) Name(id ID) (string, bool) {
	h, ok := s.header(id)
	if !ok || h.NameIndex == NoName || int(h.NameIndex) >= len(s.objectNames) {
		return "", false
	}
	return s.objectNames[h.NameIndex], true
}

// SetMetadata attaches a key/value string pair to an object, replacing any
// existing value for the same key.
func (s *Storage) SetMetadata(id ID, key, value string) bool {
	h, ok := s.header(id)
	if !ok {
		return false
	}
	ki := internString(&s.metadataKeys, key)
	vi := internString(&s.metadataValues, value)
	for i := range s.metadata {
		e := &s.metadata[i]
		if e.ObjectID == uint32(id) && int(e.KeyIndex) < len(s.metadataKeys) &&
			s.metadataKeys[e.KeyIndex] == key {
			e.ValueIndex = vi
			return true
		}
	}
	s.metadata = append(s.metadata, MetadataEntry{
		KeyIndex:   ki,
		ValueIndex: vi,
		ObjectID:   uint32(id),
	})
	h.Flags |= FlagHasMetadata
	return true
}

// Metadata returns the value stored for an object's key.
func (s *Storage) Metadata(id ID, key string) (string, bool) {
	for _, e := range s.metadata {
		if e.ObjectID != uint32(id) {
			continue
		}
		if int(e.KeyIndex) >= len(s.metadataKeys) || int(e.ValueIndex) >= len(s.metadataValues) {
			continue
		}
		if s.metadataKeys[e.KeyIndex] == key {
			return s.metadataValues[e.ValueIndex], true
		}
	}
	return "", false
}

// AllMetadata returns every key/value pair attached to an object.
// The map is nil when the object carries no metadata.
func (s *Storage) AllMetadata(id ID) map[string]string {
	var m map[string]string
	for _, e := range s.metadata {
		if e.ObjectID != uint32(id) {
			continue
		}
		if int(e.KeyIndex) >= len(s.metadataKeys) || int(e.ValueIndex) >= len(s.metadataValues) {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[s.metadataKeys[e.KeyIndex]] = s.metadataValues[e.ValueIndex]
	}
	return m
}

func internString(table *[]string, s string) uint32 {
	for i, v := range *table {
		if v == s {
			return uint32(i)
		}
	}
	*table = append(*table, s)
	return uint32(len(*table) - 1)
}

// PolygonPoints returns the vertex run of a polygon record, or nil when
// the recorded range is out of bounds.
func (s *Storage) PolygonPoints(p *Polygon) []gfx.Point {
	return pointRun(s.polygonPoints, p.PointOffset, p.PointCount)
}

// PolylinePoints returns the vertex run of a polyline record, or nil when
// the recorded range is out of bounds.
func (s *Storage) PolylinePoints(p *Polyline) []gfx.Point {
	return pointRun(s.polylinePoints, p.PointOffset, p.PointCount)
}

// GroupChildren returns the child-ID run of a group record, or nil when
// the recorded range is out of bounds.
func (s *Storage) GroupChildren(g *Group) []ID {
	off, cnt := int(g.ChildOffset), int(g.ChildCount)
	if off+cnt > len(s.groupChildren) {
		return nil
	}
	return s.groupChildren[off : off+cnt]
}

// PathSegments returns the opcode run of a path record, or nil when the
// recorded range is out of bounds.
func (s *Storage) PathSegments(p *Path) []SegKind {
	off, cnt := int(p.SegOffset), int(p.SegCount)
	if off+cnt > len(s.pathSegments) {
		return nil
	}
	return s.pathSegments[off : off+cnt]
}

// PathParams returns the parameter run of a path record, or nil when the
// recorded range is out of bounds.
func (s *Storage) PathParams(p *Path) []float32 {
	off, cnt := int(p.ParamOffset), int(p.ParamCount)
	if off+cnt > len(s.pathParams) {
		return nil
	}
	return s.pathParams[off : off+cnt]
}

// PathData reconstructs the SVG path data string of a path record.
func (s *Storage) PathData(p *Path) string {
	return emitPathData(s.PathSegments(p), s.PathParams(p))
}

// TextString returns the string of a text record.
func (s *Storage) TextString(t *Text) string {
	if int(t.TextIndex) >= len(s.textStrings) {
		return ""
	}
	return s.textStrings[t.TextIndex]
}

// FontName returns the font family of a text record.
func (s *Storage) FontName(t *Text) string {
	if int(t.FontIndex) >= len(s.fontNames) {
		return ""
	}
	return s.fontNames[t.FontIndex]
}

func pointRun(arena []gfx.Point, offset, count uint32) []gfx.Point {
	off, cnt := int(offset), int(count)
	if off+cnt > len(arena) {
		return nil
	}
	return arena[off : off+cnt]
}

// BoundingBoxOf computes the axis-aligned bounds of any object. Exact for
// circles, rectangles, lines, polygons, polylines, and path endpoints;
// conservative for ellipses, arcs, curved path segments, and text. Group
// bounds are the recursive union of the children.
func (s *Storage) BoundingBoxOf(id ID) (gfx.BoundingBox, bool) {
	switch id.Kind() {
	case KindCircle:
		if c, ok := s.Circle(id); ok {
			return c.BoundingBox(), true
		}
	case KindRectangle:
		if r, ok := s.Rectangle(id); ok {
			return r.BoundingBox(), true
		}
	case KindLine:
		if l, ok := s.Line(id); ok {
			return l.BoundingBox(), true
		}
	case KindEllipse:
		if e, ok := s.Ellipse(id); ok {
			return e.BoundingBox(), true
		}
	case KindPolygon:
		if p, ok := s.Polygon(id); ok {
			return pointsBBox(s.PolygonPoints(p))
		}
	case KindPolyline:
		if p, ok := s.Polyline(id); ok {
			return pointsBBox(s.PolylinePoints(p))
		}
	case KindArc:
		if a, ok := s.Arc(id); ok {
			return a.BoundingBox(), true
		}
	case KindText:
		if t, ok := s.Text(id); ok {
			return textExtent(s.TextString(t), t.X, t.Y, t.FontSize, t.Align, t.Baseline), true
		}
	case KindPath:
		if p, ok := s.Path(id); ok {
			return pathBBox(s.PathSegments(p), s.PathParams(p))
		}
	case KindGroup:
		if g, ok := s.Group(id); ok {
			return s.groupBBox(g)
		}
	}
	return gfx.BoundingBox{}, false
}

// groupBBox unions the children's bounds. AddToGroup rejects cycles and
// ValidateGroups screens rebuilt storages, so the recursion terminates.
func (s *Storage) groupBBox(g *Group) (gfx.BoundingBox, bool) {
	var b gfx.BoundingBox
	found := false
	for _, child := range s.GroupChildren(g) {
		cb, ok := s.BoundingBoxOf(child)
		if !ok {
			continue
		}
		if !found {
			b = cb
			found = true
			continue
		}
		b = b.ExpandBox(cb)
	}
	return b, found
}

// TotalObjects returns the number of objects across every kind.
func (s *Storage) TotalObjects() int {
	return len(s.circles) + len(s.rectangles) + len(s.lines) +
		len(s.ellipses) + len(s.polygons) + len(s.polylines) +
		len(s.arcs) + len(s.texts) + len(s.paths) + len(s.groups)
}

// MemoryUsage estimates the bytes held by the per-kind arrays and the
// auxiliary arenas (element storage only, slice headers excluded).
func (s *Storage) MemoryUsage() int {
	n := len(s.circles)*int(unsafe.Sizeof(Circle{})) +
		len(s.rectangles)*int(unsafe.Sizeof(Rectangle{})) +
		len(s.lines)*int(unsafe.Sizeof(Line{})) +
		len(s.ellipses)*int(unsafe.Sizeof(Ellipse{})) +
		len(s.polygons)*int(unsafe.Sizeof(Polygon{})) +
		len(s.polylines)*int(unsafe.Sizeof(Polyline{})) +
		len(s.arcs)*int(unsafe.Sizeof(Arc{})) +
		len(s.texts)*int(unsafe.Sizeof(Text{})) +
		len(s.paths)*int(unsafe.Sizeof(Path{})) +
		len(s.groups)*int(unsafe.Sizeof(Group{}))
	n += (len(s.polygonPoints) + len(s.polylinePoints)) * 8
	n += len(s.pathSegments)
	n += len(s.pathParams) * 4
	n += len(s.groupChildren) * 4
	n += len(s.gradients)*int(unsafe.Sizeof(gfx.Gradient{})) + len(s.gradientStops)*8
	n += len(s.metadata) * 12
	for _, tbl := range [][]string{
		s.textStrings, s.fontNames, s.objectNames, s.patterns,
		s.metadataKeys, s.metadataValues,
	} {
		for _, str := range tbl {
			n += len(str)
		}
	}
	return n
}

// KindCount returns the number of stored objects of one kind.
func (s *Storage) KindCount(k Kind) int {
	switch k {
	case KindCircle:
		return len(s.circles)
	case KindRectangle:
		return len(s.rectangles)
	case KindLine:
		return len(s.lines)
	case KindEllipse:
		return len(s.ellipses)
	case KindPolygon:
		return len(s.polygons)
	case KindPolyline:
		return len(s.polylines)
	case KindArc:
		return len(s.arcs)
	case KindText:
		return len(s.texts)
	case KindPath:
		return len(s.paths)
	case KindGroup:
		return len(s.groups)
	default:
		return 0
	}
}
