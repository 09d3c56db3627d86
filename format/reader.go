package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gfx"
	"github.com/gogpu/sketch/store"
)

// decoder reads little-endian fields with a sticky error. Every count is
// checked against the sanity ceilings before anything is allocated.
type decoder struct {
	r   io.Reader
	err error
	buf [8]byte
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return d.buf[:n]
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.err = fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return d.buf[:n]
}

func (d *decoder) u8() uint8   { return d.read(1)[0] }
func (d *decoder) u16() uint16 { return binary.LittleEndian.Uint16(d.read(2)) }
func (d *decoder) u32() uint32 { return binary.LittleEndian.Uint32(d.read(4)) }
func (d *decoder) f32() float32 {
	return math.Float32frombits(d.u32())
}

func (d *decoder) boolean() bool { return d.u8() != 0 }

func (d *decoder) color() gfx.Color {
	b := d.read(4)
	return gfx.Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}

// count reads an element count and rejects anything over the ceiling.
func (d *decoder) count() int {
	n := d.u32()
	if d.err == nil && n > maxElements {
		d.err = fmt.Errorf("%w: %d elements", ErrTooLarge, n)
	}
	if d.err != nil {
		return 0
	}
	return int(n)
}

func (d *decoder) str() string {
	n := d.u32()
	if d.err == nil && n > maxStringLen {
		d.err = fmt.Errorf("%w: %d-byte string", ErrTooLarge, n)
	}
	if d.err != nil || n == 0 {
		return ""
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.err = fmt.Errorf("%w: %v", ErrCorrupt, err)
		return ""
	}
	return string(b)
}

func (d *decoder) object() store.Object {
	return store.Object{
		Kind:        store.Kind(d.u8()),
		LayerID:     d.u8(),
		Flags:       store.Flags(d.u16()),
		Fill:        d.color(),
		Stroke:      d.color(),
		StrokeWidth: d.f32(),
		Opacity:     d.f32(),
		GradientID:  d.u16(),
		PatternID:   d.u16(),
		NameIndex:   d.u32(),
	}
}

func (d *decoder) strings() []string {
	n := d.count()
	if d.err != nil {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = d.str()
	}
	return out
}

// Load deserializes a drawing from r. The magic and version must match
// exactly and an unknown chunk type is fatal corruption; any failure
// discards the partially built drawing and returns only the error.
func Load(r io.Reader) (*sketch.Drawing, error) {
	d := &decoder{r: r}

	if m := d.u32(); d.err == nil && m != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, m)
	}
	if v := d.u32(); d.err == nil && v != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, v)
	}
	if d.err != nil {
		return nil, d.err
	}

	var (
		width, height float32
		background    gfx.Color
		layers        []*sketch.Layer
		snap          store.Snapshot
	)

loop:
	for {
		t := ChunkType(d.u16())
		if d.err != nil {
			return nil, d.err
		}
		switch t {
		case ChunkEnd:
			break loop

		case ChunkHeader:
			width = d.f32()
			height = d.f32()
			background = d.color()

		case ChunkLayer:
			l := &sketch.Layer{
				ID:      d.u8(),
				Name:    d.str(),
				Visible: d.boolean(),
				Locked:  d.boolean(),
				Opacity: d.f32(),
			}
			n := d.count()
			if d.err != nil {
				return nil, d.err
			}
			ids := make([]store.ID, n)
			for i := range ids {
				ids[i] = store.ID(d.u32())
			}
			l.SetObjects(ids)
			layers = append(layers, l)

		case ChunkCircles:
			n := d.count()
			snap.Circles = make([]store.Circle, n)
			for i := range snap.Circles {
				c := &snap.Circles[i]
				c.Object = d.object()
				c.X = d.f32()
				c.Y = d.f32()
				c.Radius = d.f32()
			}

		case ChunkRectangles:
			n := d.count()
			snap.Rectangles = make([]store.Rectangle, n)
			for i := range snap.Rectangles {
				rec := &snap.Rectangles[i]
				rec.Object = d.object()
				rec.X = d.f32()
				rec.Y = d.f32()
				rec.Width = d.f32()
				rec.Height = d.f32()
				rec.CornerRadius = d.f32()
			}

		case ChunkLines:
			n := d.count()
			snap.Lines = make([]store.Line, n)
			for i := range snap.Lines {
				l := &snap.Lines[i]
				l.Object = d.object()
				l.X1 = d.f32()
				l.Y1 = d.f32()
				l.X2 = d.f32()
				l.Y2 = d.f32()
				l.Style = store.LineStyle(d.u8())
			}

		case ChunkPolygons:
			n := d.count()
			snap.Polygons = make([]store.Polygon, n)
			for i := range snap.Polygons {
				p := &snap.Polygons[i]
				p.Object = d.object()
				p.PointOffset = d.u32()
				p.PointCount = d.u32()
				p.Closed = d.boolean()
			}

		case ChunkPolygonPoints:
			snap.PolygonPoints = d.points()

		case ChunkEllipses:
			n := d.count()
			snap.Ellipses = make([]store.Ellipse, n)
			for i := range snap.Ellipses {
				el := &snap.Ellipses[i]
				el.Object = d.object()
				el.X = d.f32()
				el.Y = d.f32()
				el.RX = d.f32()
				el.RY = d.f32()
				el.Rotation = d.f32()
			}

		case ChunkPolylines:
			n := d.count()
			snap.Polylines = make([]store.Polyline, n)
			for i := range snap.Polylines {
				p := &snap.Polylines[i]
				p.Object = d.object()
				p.PointOffset = d.u32()
				p.PointCount = d.u32()
				p.Style = store.LineStyle(d.u8())
			}

		case ChunkPolylinePoints:
			snap.PolylinePoints = d.points()

		case ChunkArcs:
			n := d.count()
			snap.Arcs = make([]store.Arc, n)
			for i := range snap.Arcs {
				a := &snap.Arcs[i]
				a.Object = d.object()
				a.X = d.f32()
				a.Y = d.f32()
				a.Radius = d.f32()
				a.StartAngle = d.f32()
				a.EndAngle = d.f32()
			}

		case ChunkTexts:
			n := d.count()
			snap.Texts = make([]store.Text, n)
			for i := range snap.Texts {
				tx := &snap.Texts[i]
				tx.Object = d.object()
				tx.X = d.f32()
				tx.Y = d.f32()
				tx.FontSize = d.f32()
				tx.TextIndex = d.u32()
				tx.FontIndex = d.u32()
				tx.Align = store.TextAlign(d.u8())
				tx.Baseline = store.TextBaseline(d.u8())
			}

		case ChunkTextStrings:
			snap.TextStrings = d.strings()

		case ChunkFontNames:
			snap.FontNames = d.strings()

		case ChunkPaths:
			n := d.count()
			snap.Paths = make([]store.Path, n)
			for i := range snap.Paths {
				p := &snap.Paths[i]
				p.Object = d.object()
				p.SegOffset = d.u32()
				p.SegCount = d.u32()
				p.ParamOffset = d.u32()
				p.ParamCount = d.u32()
			}

		case ChunkPathSegments:
			n := d.count()
			snap.PathSegments = make([]store.SegKind, n)
			for i := range snap.PathSegments {
				snap.PathSegments[i] = store.SegKind(d.u8())
			}

		case ChunkPathParameters:
			n := d.count()
			snap.PathParams = make([]float32, n)
			for i := range snap.PathParams {
				snap.PathParams[i] = d.f32()
			}

		case ChunkGroups:
			n := d.count()
			snap.Groups = make([]store.Group, n)
			for i := range snap.Groups {
				g := &snap.Groups[i]
				g.Object = d.object()
				g.ChildOffset = d.u32()
				g.ChildCount = d.u32()
				g.PivotX = d.f32()
				g.PivotY = d.f32()
			}

		case ChunkGroupChildren:
			n := d.count()
			snap.GroupChildren = make([]store.ID, n)
			for i := range snap.GroupChildren {
				snap.GroupChildren[i] = store.ID(d.u32())
			}

		case ChunkGradients:
			n := d.count()
			snap.Gradients = make([]gfx.Gradient, n)
			for i := range snap.Gradients {
				g := &snap.Gradients[i]
				g.Kind = gfx.GradientKind(d.u8())
				g.StopCount = d.u8()
				g.StopOffset = d.u16()
				g.Angle = d.f32()
				g.CenterX = d.f32()
				g.CenterY = d.f32()
				g.Radius = d.f32()
			}

		case ChunkGradientStops:
			n := d.count()
			snap.GradientStops = make([]gfx.GradientStop, n)
			for i := range snap.GradientStops {
				s := &snap.GradientStops[i]
				s.Offset = d.f32()
				s.Color = d.color()
			}

		case ChunkPatterns:
			snap.Patterns = d.strings()

		case ChunkObjectNames:
			snap.ObjectNames = d.strings()

		case ChunkMetadata:
			n := d.count()
			snap.Metadata = make([]store.MetadataEntry, n)
			for i := range snap.Metadata {
				m := &snap.Metadata[i]
				m.KeyIndex = d.u32()
				m.ValueIndex = d.u32()
				m.ObjectID = d.u32()
			}

		case ChunkMetadataKeys:
			snap.MetadataKeys = d.strings()

		case ChunkMetadataValues:
			snap.MetadataValues = d.strings()

		default:
			return nil, fmt.Errorf("%w: unknown chunk type %d", ErrCorrupt, t)
		}

		if d.err != nil {
			return nil, d.err
		}
	}

	storage := store.FromSnapshot(snap)
	if err := storage.ValidateGroups(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	drawing := sketch.Restore(width, height, background, layers, storage)
	sketch.Logger().Debug("drawing deserialized",
		"objects", storage.TotalObjects(), "layers", len(layers))
	return drawing, nil
}

func (d *decoder) points() []gfx.Point {
	n := d.count()
	if d.err != nil {
		return nil
	}
	out := make([]gfx.Point, n)
	for i := range out {
		out[i].X = d.f32()
		out[i].Y = d.f32()
	}
	return out
}
