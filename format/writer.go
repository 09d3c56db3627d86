package format

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gfx"
	"github.com/gogpu/sketch/store"
)

// encoder writes little-endian fields with a sticky error, so chunk
// writers can run straight through and check once at the end.
type encoder struct {
	w   io.Writer
	err error
	buf [8]byte
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) u8(v uint8) {
	e.buf[0] = v
	e.write(e.buf[:1])
}

func (e *encoder) u16(v uint16) {
	binary.LittleEndian.PutUint16(e.buf[:2], v)
	e.write(e.buf[:2])
}

func (e *encoder) u32(v uint32) {
	binary.LittleEndian.PutUint32(e.buf[:4], v)
	e.write(e.buf[:4])
}

func (e *encoder) f32(v float32) {
	e.u32(math.Float32bits(v))
}

func (e *encoder) boolean(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

func (e *encoder) color(c gfx.Color) {
	e.buf[0], e.buf[1], e.buf[2], e.buf[3] = c.R, c.G, c.B, c.A
	e.write(e.buf[:4])
}

func (e *encoder) str(s string) {
	e.u32(uint32(len(s)))
	e.write([]byte(s))
}

func (e *encoder) chunk(t ChunkType) {
	e.u16(uint16(t))
}

func (e *encoder) object(o store.Object) {
	e.u8(uint8(o.Kind))
	e.u8(o.LayerID)
	e.u16(uint16(o.Flags))
	e.color(o.Fill)
	e.color(o.Stroke)
	e.f32(o.StrokeWidth)
	e.f32(o.Opacity)
	e.u16(o.GradientID)
	e.u16(o.PatternID)
	e.u32(o.NameIndex)
}

// Save serializes the drawing to w. Identical drawing contents produce
// identical bytes. Empty arrays are omitted from the stream.
func Save(w io.Writer, d *sketch.Drawing) error {
	snap := d.Store().Snapshot()
	e := &encoder{w: w}

	e.u32(Magic)
	e.u32(Version)

	e.chunk(ChunkHeader)
	e.f32(d.Width())
	e.f32(d.Height())
	e.color(d.Background())

	for _, l := range d.Layers() {
		e.chunk(ChunkLayer)
		e.u8(l.ID)
		e.str(l.Name)
		e.boolean(l.Visible)
		e.boolean(l.Locked)
		e.f32(l.Opacity)
		ids := l.Objects()
		e.u32(uint32(len(ids)))
		for _, id := range ids {
			e.u32(uint32(id))
		}
	}

	if len(snap.Circles) > 0 {
		e.chunk(ChunkCircles)
		e.u32(uint32(len(snap.Circles)))
		for i := range snap.Circles {
			c := &snap.Circles[i]
			e.object(c.Object)
			e.f32(c.X)
			e.f32(c.Y)
			e.f32(c.Radius)
		}
	}

	if len(snap.Rectangles) > 0 {
		e.chunk(ChunkRectangles)
		e.u32(uint32(len(snap.Rectangles)))
		for i := range snap.Rectangles {
			r := &snap.Rectangles[i]
			e.object(r.Object)
			e.f32(r.X)
			e.f32(r.Y)
			e.f32(r.Width)
			e.f32(r.Height)
			e.f32(r.CornerRadius)
		}
	}

	if len(snap.Lines) > 0 {
		e.chunk(ChunkLines)
		e.u32(uint32(len(snap.Lines)))
		for i := range snap.Lines {
			l := &snap.Lines[i]
			e.object(l.Object)
			e.f32(l.X1)
			e.f32(l.Y1)
			e.f32(l.X2)
			e.f32(l.Y2)
			e.u8(uint8(l.Style))
		}
	}

	if len(snap.Polygons) > 0 {
		e.chunk(ChunkPolygons)
		e.u32(uint32(len(snap.Polygons)))
		for i := range snap.Polygons {
			p := &snap.Polygons[i]
			e.object(p.Object)
			e.u32(p.PointOffset)
			e.u32(p.PointCount)
			e.boolean(p.Closed)
		}
	}

	if len(snap.PolygonPoints) > 0 {
		e.chunk(ChunkPolygonPoints)
		e.u32(uint32(len(snap.PolygonPoints)))
		for _, p := range snap.PolygonPoints {
			e.f32(p.X)
			e.f32(p.Y)
		}
	}

	if len(snap.Ellipses) > 0 {
		e.chunk(ChunkEllipses)
		e.u32(uint32(len(snap.Ellipses)))
		for i := range snap.Ellipses {
			el := &snap.Ellipses[i]
			e.object(el.Object)
			e.f32(el.X)
			e.f32(el.Y)
			e.f32(el.RX)
			e.f32(el.RY)
			e.f32(el.Rotation)
		}
	}

	if len(snap.Polylines) > 0 {
		e.chunk(ChunkPolylines)
		e.u32(uint32(len(snap.Polylines)))
		for i := range snap.Polylines {
			p := &snap.Polylines[i]
			e.object(p.Object)
			e.u32(p.PointOffset)
			e.u32(p.PointCount)
			e.u8(uint8(p.Style))
		}
	}

	if len(snap.PolylinePoints) > 0 {
		e.chunk(ChunkPolylinePoints)
		e.u32(uint32(len(snap.PolylinePoints)))
		for _, p := range snap.PolylinePoints {
			e.f32(p.X)
			e.f32(p.Y)
		}
	}

	if len(snap.Arcs) > 0 {
		e.chunk(ChunkArcs)
		e.u32(uint32(len(snap.Arcs)))
		for i := range snap.Arcs {
			a := &snap.Arcs[i]
			e.object(a.Object)
			e.f32(a.X)
			e.f32(a.Y)
			e.f32(a.Radius)
			e.f32(a.StartAngle)
			e.f32(a.EndAngle)
		}
	}

	if len(snap.Texts) > 0 {
		e.chunk(ChunkTexts)
		e.u32(uint32(len(snap.Texts)))
		for i := range snap.Texts {
			t := &snap.Texts[i]
			e.object(t.Object)
			e.f32(t.X)
			e.f32(t.Y)
			e.f32(t.FontSize)
			e.u32(t.TextIndex)
			e.u32(t.FontIndex)
			e.u8(uint8(t.Align))
			e.u8(uint8(t.Baseline))
		}
	}

	writeStrings(e, ChunkTextStrings, snap.TextStrings)
	writeStrings(e, ChunkFontNames, snap.FontNames)

	if len(snap.Paths) > 0 {
		e.chunk(ChunkPaths)
		e.u32(uint32(len(snap.Paths)))
		for i := range snap.Paths {
			p := &snap.Paths[i]
			e.object(p.Object)
			e.u32(p.SegOffset)
			e.u32(p.SegCount)
			e.u32(p.ParamOffset)
			e.u32(p.ParamCount)
		}
	}

	if len(snap.PathSegments) > 0 {
		e.chunk(ChunkPathSegments)
		e.u32(uint32(len(snap.PathSegments)))
		for _, s := range snap.PathSegments {
			e.u8(uint8(s))
		}
	}

	if len(snap.PathParams) > 0 {
		e.chunk(ChunkPathParameters)
		e.u32(uint32(len(snap.PathParams)))
		for _, v := range snap.PathParams {
			e.f32(v)
		}
	}

	if len(snap.Groups) > 0 {
		e.chunk(ChunkGroups)
		e.u32(uint32(len(snap.Groups)))
		for i := range snap.Groups {
			g := &snap.Groups[i]
			e.object(g.Object)
			e.u32(g.ChildOffset)
			e.u32(g.ChildCount)
			e.f32(g.PivotX)
			e.f32(g.PivotY)
		}
	}

	if len(snap.GroupChildren) > 0 {
		e.chunk(ChunkGroupChildren)
		e.u32(uint32(len(snap.GroupChildren)))
		for _, id := range snap.GroupChildren {
			e.u32(uint32(id))
		}
	}

	if len(snap.Gradients) > 0 {
		e.chunk(ChunkGradients)
		e.u32(uint32(len(snap.Gradients)))
		for _, g := range snap.Gradients {
			e.u8(uint8(g.Kind))
			e.u8(g.StopCount)
			e.u16(g.StopOffset)
			e.f32(g.Angle)
			e.f32(g.CenterX)
			e.f32(g.CenterY)
			e.f32(g.Radius)
		}
	}

	if len(snap.GradientStops) > 0 {
		e.chunk(ChunkGradientStops)
		e.u32(uint32(len(snap.GradientStops)))
		for _, s := range snap.GradientStops {
			e.f32(s.Offset)
			e.color(s.Color)
		}
	}

	writeStrings(e, ChunkPatterns, snap.Patterns)
	writeStrings(e, ChunkObjectNames, snap.ObjectNames)

	if len(snap.Metadata) > 0 {
		e.chunk(ChunkMetadata)
		e.u32(uint32(len(snap.Metadata)))
		for _, m := range snap.Metadata {
			e.u32(m.KeyIndex)
			e.u32(m.ValueIndex)
			e.u32(m.ObjectID)
		}
	}

	writeStrings(e, ChunkMetadataKeys, snap.MetadataKeys)
	writeStrings(e, ChunkMetadataValues, snap.MetadataValues)

	e.chunk(ChunkEnd)

	if e.err != nil {
		return e.err
	}
	sketch.Logger().Debug("drawing serialized",
		"objects", d.TotalObjects(), "layers", len(d.Layers()))
	return nil
}

func writeStrings(e *encoder, t ChunkType, strs []string) {
	if len(strs) == 0 {
		return
	}
	e.chunk(t)
	e.u32(uint32(len(strs)))
	for _, s := range strs {
		e.str(s)
	}
}
