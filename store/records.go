package store

import (
	"math"

	"github.com/gogpu/sketch/gfx"
)

// NoName marks a record without an assigned display name.
const NoName = 0xFFFFFFFF

// Object is the fixed-size header shared by every record (28 bytes
// serialized). GradientID and PatternID are one-based references into the
// storage's gradient and pattern tables; zero means unset.
type Object struct {
	Kind        Kind
	LayerID     uint8
	Flags       Flags
	Fill        gfx.Color
	Stroke      gfx.Color
	StrokeWidth float32
	Opacity     float32
	GradientID  uint16
	PatternID   uint16
	NameIndex   uint32
}

// newObject returns a header with the default style applied.
func newObject(kind Kind) Object {
	return Object{
		Kind:        kind,
		Flags:       DefaultFlags,
		Fill:        gfx.Black,
		Stroke:      gfx.Black,
		StrokeWidth: 1,
		Opacity:     1,
		NameIndex:   NoName,
	}
}

// Circle is a packed circle record (40 bytes serialized).
type Circle struct {
	Object
	X, Y, Radius float32
}

// BoundingBox returns the exact axis-aligned bounds of the circle.
func (c *Circle) BoundingBox() gfx.BoundingBox {
	return gfx.BBox(c.X-c.Radius, c.Y-c.Radius, c.X+c.Radius, c.Y+c.Radius)
}

// Rectangle is a packed rectangle record (48 bytes serialized).
type Rectangle struct {
	Object
	X, Y, Width, Height float32
	CornerRadius        float32
}

// BoundingBox returns the exact axis-aligned bounds of the rectangle.
func (r *Rectangle) BoundingBox() gfx.BoundingBox {
	return gfx.BBox(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Line is a packed line-segment record (45 bytes serialized).
type Line struct {
	Object
	X1, Y1, X2, Y2 float32
	Style          LineStyle
}

// BoundingBox returns the exact axis-aligned bounds of the segment.
func (l *Line) BoundingBox() gfx.BoundingBox {
	return gfx.BBox(
		min(l.X1, l.X2), min(l.Y1, l.Y2),
		max(l.X1, l.X2), max(l.Y1, l.Y2),
	)
}

// Ellipse is a packed ellipse record (48 bytes serialized).
// Rotation is in radians, counterclockwise about the center.
type Ellipse struct {
	Object
	X, Y, RX, RY float32
	Rotation     float32
}

// BoundingBox returns conservative bounds using the larger radius on both
// axes. The exact bounds of a rotated ellipse are tighter; the
// approximation is accepted imprecision, never an under-estimate.
func (e *Ellipse) BoundingBox() gfx.BoundingBox {
	r := max(e.RX, e.RY)
	return gfx.BBox(e.X-r, e.Y-r, e.X+r, e.Y+r)
}

// Arc is a packed circular-arc record (48 bytes serialized).
// Angles are in radians; the arc sweeps from StartAngle to EndAngle.
type Arc struct {
	Object
	X, Y, Radius         float32
	StartAngle, EndAngle float32
}

// BoundingBox returns the bounds of the full circle the arc lies on.
// Exact sector bounds would be tighter; accepted imprecision.
func (a *Arc) BoundingBox() gfx.BoundingBox {
	return gfx.BBox(a.X-a.Radius, a.Y-a.Radius, a.X+a.Radius, a.Y+a.Radius)
}

// Polygon is a packed polygon record (37 bytes serialized). The vertices
// live in the storage's polygon point arena at [PointOffset, PointOffset+PointCount).
type Polygon struct {
	Object
	PointOffset uint32
	PointCount  uint32
	Closed      bool
}

// Polyline is a packed polyline record (37 bytes serialized). The vertices
// live in the storage's polyline point arena.
type Polyline struct {
	Object
	PointOffset uint32
	PointCount  uint32
	Style       LineStyle
}

// Text is a packed text record (50 bytes serialized). TextIndex addresses
// the string table, FontIndex the deduplicated font-name table.
type Text struct {
	Object
	X, Y      float32
	FontSize  float32
	TextIndex uint32
	FontIndex uint32
	Align     TextAlign
	Baseline  TextBaseline
}

// Path is a packed path record (44 bytes serialized). Segment opcodes and
// their float parameters live in two parallel arenas.
type Path struct {
	Object
	SegOffset   uint32
	SegCount    uint32
	ParamOffset uint32
	ParamCount  uint32
}

// Group is a packed group record (44 bytes serialized). Child IDs live in
// the storage's group-children arena.
type Group struct {
	Object
	ChildOffset uint32
	ChildCount  uint32
	PivotX      float32
	PivotY      float32
}

// pointsBBox returns the exact bounds of a point run, or false when the
// run is empty.
func pointsBBox(pts []gfx.Point) (gfx.BoundingBox, bool) {
	if len(pts) == 0 {
		return gfx.BoundingBox{}, false
	}
	b := gfx.BBoxAround(pts[0])
	for _, p := range pts[1:] {
		b = b.ExpandPoint(p)
	}
	return b, true
}

// normalizeAngle maps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
