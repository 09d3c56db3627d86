package store

import (
	"math"
	"sort"
	"time"

	"github.com/gogpu/sketch/gfx"
)

// BatchStats reports what one batch operation did. Stats are returned per
// call; no shared state survives between calls.
type BatchStats struct {
	ObjectsProcessed int
	Duration         time.Duration
	ObjectsPerSecond float64
}

func finishStats(n int, start time.Time) BatchStats {
	d := time.Since(start)
	st := BatchStats{ObjectsProcessed: n, Duration: d}
	if secs := d.Seconds(); secs > 0 {
		st.ObjectsPerSecond = float64(n) / secs
	}
	return st
}

// Translate moves every listed object by (dx, dy). Variable-length kinds
// move their arena data; groups recurse into their children. Invalid ids
// are skipped and not counted.
func Translate(s *Storage, ids []ID, dx, dy float32) BatchStats {
	start := time.Now()
	n := 0
	for _, id := range ids {
		if translateOne(s, id, dx, dy) {
			n++
		}
	}
	return finishStats(n, start)
}

func translateOne(s *Storage, id ID, dx, dy float32) bool {
	switch id.Kind() {
	case KindCircle:
		if c, ok := s.Circle(id); ok {
			c.X += dx
			c.Y += dy
			return true
		}
	case KindRectangle:
		if r, ok := s.Rectangle(id); ok {
			r.X += dx
			r.Y += dy
			return true
		}
	case KindLine:
		if l, ok := s.Line(id); ok {
			l.X1 += dx
			l.Y1 += dy
			l.X2 += dx
			l.Y2 += dy
			return true
		}
	case KindEllipse:
		if e, ok := s.Ellipse(id); ok {
			e.X += dx
			e.Y += dy
			return true
		}
	case KindPolygon:
		if p, ok := s.Polygon(id); ok {
			translatePoints(s.PolygonPoints(p), dx, dy)
			return true
		}
	case KindPolyline:
		if p, ok := s.Polyline(id); ok {
			translatePoints(s.PolylinePoints(p), dx, dy)
			return true
		}
	case KindArc:
		if a, ok := s.Arc(id); ok {
			a.X += dx
			a.Y += dy
			return true
		}
	case KindText:
		if t, ok := s.Text(id); ok {
			t.X += dx
			t.Y += dy
			return true
		}
	case KindPath:
		if p, ok := s.Path(id); ok {
			translatePathParams(s.PathSegments(p), s.PathParams(p), dx, dy)
			return true
		}
	case KindGroup:
		if g, ok := s.Group(id); ok {
			for _, child := range s.GroupChildren(g) {
				translateOne(s, child, dx, dy)
			}
			g.PivotX += dx
			g.PivotY += dy
			return true
		}
	}
	return false
}

func translatePoints(pts []gfx.Point, dx, dy float32) {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}

// translatePathParams shifts every coordinate parameter; arc radii,
// rotation, and flags are left alone.
func translatePathParams(segs []SegKind, params []float32, dx, dy float32) {
	pi := 0
	for _, seg := range segs {
		n := seg.ParamCount()
		if pi+n > len(params) {
			return
		}
		switch seg {
		case SegMove, SegLine:
			params[pi] += dx
			params[pi+1] += dy
		case SegCubic:
			for j := 0; j < 6; j += 2 {
				params[pi+j] += dx
				params[pi+j+1] += dy
			}
		case SegQuad:
			for j := 0; j < 4; j += 2 {
				params[pi+j] += dx
				params[pi+j+1] += dy
			}
		case SegArc:
			params[pi+5] += dx
			params[pi+6] += dy
		}
		pi += n
	}
}

// Scale scales every listed object about center by (sx, sy). Circle and
// arc radii scale by sx (uniform-scale assumption); text scales its font
// size by sy. Groups recurse. Invalid ids are skipped and not counted.
func Scale(s *Storage, ids []ID, sx, sy float32, center gfx.Point) BatchStats {
	start := time.Now()
	n := 0
	for _, id := range ids {
		if scaleOne(s, id, sx, sy, center) {
			n++
		}
	}
	return finishStats(n, start)
}

func scalePt(x, y, sx, sy float32, c gfx.Point) (float32, float32) {
	return c.X + (x-c.X)*sx, c.Y + (y-c.Y)*sy
}

func scaleOne(s *Storage, id ID, sx, sy float32, center gfx.Point) bool {
	switch id.Kind() {
	case KindCircle:
		if c, ok := s.Circle(id); ok {
			c.X, c.Y = scalePt(c.X, c.Y, sx, sy, center)
			c.Radius *= sx
			return true
		}
	case KindRectangle:
		if r, ok := s.Rectangle(id); ok {
			r.X, r.Y = scalePt(r.X, r.Y, sx, sy, center)
			r.Width *= sx
			r.Height *= sy
			r.CornerRadius *= sx
			return true
		}
	case KindLine:
		if l, ok := s.Line(id); ok {
			l.X1, l.Y1 = scalePt(l.X1, l.Y1, sx, sy, center)
			l.X2, l.Y2 = scalePt(l.X2, l.Y2, sx, sy, center)
			return true
		}
	case KindEllipse:
		if e, ok := s.Ellipse(id); ok {
			e.X, e.Y = scalePt(e.X, e.Y, sx, sy, center)
			e.RX *= sx
			e.RY *= sy
			return true
		}
	case KindPolygon:
		if p, ok := s.Polygon(id); ok {
			scalePoints(s.PolygonPoints(p), sx, sy, center)
			return true
		}
	case KindPolyline:
		if p, ok := s.Polyline(id); ok {
			scalePoints(s.PolylinePoints(p), sx, sy, center)
			return true
		}
	case KindArc:
		if a, ok := s.Arc(id); ok {
			a.X, a.Y = scalePt(a.X, a.Y, sx, sy, center)
			a.Radius *= sx
			return true
		}
	case KindText:
		if t, ok := s.Text(id); ok {
			t.X, t.Y = scalePt(t.X, t.Y, sx, sy, center)
			t.FontSize *= sy
			return true
		}
	case KindPath:
		if p, ok := s.Path(id); ok {
			scalePathParams(s.PathSegments(p), s.PathParams(p), sx, sy, center)
			return true
		}
	case KindGroup:
		if g, ok := s.Group(id); ok {
			for _, child := range s.GroupChildren(g) {
				scaleOne(s, child, sx, sy, center)
			}
			g.PivotX, g.PivotY = scalePt(g.PivotX, g.PivotY, sx, sy, center)
			return true
		}
	}
	return false
}

func scalePoints(pts []gfx.Point, sx, sy float32, c gfx.Point) {
	for i := range pts {
		pts[i].X, pts[i].Y = scalePt(pts[i].X, pts[i].Y, sx, sy, c)
	}
}

func scalePathParams(segs []SegKind, params []float32, sx, sy float32, c gfx.Point) {
	pi := 0
	for _, seg := range segs {
		n := seg.ParamCount()
		if pi+n > len(params) {
			return
		}
		switch seg {
		case SegMove, SegLine:
			params[pi], params[pi+1] = scalePt(params[pi], params[pi+1], sx, sy, c)
		case SegCubic:
			for j := 0; j < 6; j += 2 {
				params[pi+j], params[pi+j+1] = scalePt(params[pi+j], params[pi+j+1], sx, sy, c)
			}
		case SegQuad:
			for j := 0; j < 4; j += 2 {
				params[pi+j], params[pi+j+1] = scalePt(params[pi+j], params[pi+j+1], sx, sy, c)
			}
		case SegArc:
			params[pi] *= sx
			params[pi+1] *= sy
			params[pi+5], params[pi+6] = scalePt(params[pi+5], params[pi+6], sx, sy, c)
		}
		pi += n
	}
}

// Rotate rotates every listed object about center by angle radians.
// Rectangles are skipped: the packed record is axis-aligned and cannot
// hold a rotation. Ellipses accumulate the angle into their rotation
// field; arcs shift their start and end angles. Groups recurse. Skipped
// and invalid ids are not counted.
func Rotate(s *Storage, ids []ID, angle float32, center gfx.Point) BatchStats {
	start := time.Now()
	n := 0
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	for _, id := range ids {
		if rotateOne(s, id, angle, cos, sin, center) {
			n++
		}
	}
	return finishStats(n, start)
}

func rotatePt(x, y, cos, sin float32, c gfx.Point) (float32, float32) {
	dx, dy := x-c.X, y-c.Y
	return c.X + dx*cos - dy*sin, c.Y + dx*sin + dy*cos
}

func rotateOne(s *Storage, id ID, angle, cos, sin float32, center gfx.Point) bool {
	switch id.Kind() {
	case KindCircle:
		if c, ok := s.Circle(id); ok {
			c.X, c.Y = rotatePt(c.X, c.Y, cos, sin, center)
			return true
		}
	case KindRectangle:
		return false
	case KindLine:
		if l, ok := s.Line(id); ok {
			l.X1, l.Y1 = rotatePt(l.X1, l.Y1, cos, sin, center)
			l.X2, l.Y2 = rotatePt(l.X2, l.Y2, cos, sin, center)
			return true
		}
	case KindEllipse:
		if e, ok := s.Ellipse(id); ok {
			e.X, e.Y = rotatePt(e.X, e.Y, cos, sin, center)
			e.Rotation += angle
			return true
		}
	case KindPolygon:
		if p, ok := s.Polygon(id); ok {
			rotatePoints(s.PolygonPoints(p), cos, sin, center)
			return true
		}
	case KindPolyline:
		if p, ok := s.Polyline(id); ok {
			rotatePoints(s.PolylinePoints(p), cos, sin, center)
			return true
		}
	case KindArc:
		if a, ok := s.Arc(id); ok {
			a.X, a.Y = rotatePt(a.X, a.Y, cos, sin, center)
			a.StartAngle += angle
			a.EndAngle += angle
			return true
		}
	case KindText:
		if t, ok := s.Text(id); ok {
			t.X, t.Y = rotatePt(t.X, t.Y, cos, sin, center)
			return true
		}
	case KindPath:
		if p, ok := s.Path(id); ok {
			rotatePathParams(s.PathSegments(p), s.PathParams(p), angle, cos, sin, center)
			return true
		}
	case KindGroup:
		if g, ok := s.Group(id); ok {
			for _, child := range s.GroupChildren(g) {
				rotateOne(s, child, angle, cos, sin, center)
			}
			g.PivotX, g.PivotY = rotatePt(g.PivotX, g.PivotY, cos, sin, center)
			return true
		}
	}
	return false
}

func rotatePoints(pts []gfx.Point, cos, sin float32, c gfx.Point) {
	for i := range pts {
		pts[i].X, pts[i].Y = rotatePt(pts[i].X, pts[i].Y, cos, sin, c)
	}
}

func rotatePathParams(segs []SegKind, params []float32, angle, cos, sin float32, c gfx.Point) {
	pi := 0
	for _, seg := range segs {
		n := seg.ParamCount()
		if pi+n > len(params) {
			return
		}
		switch seg {
		case SegMove, SegLine:
			params[pi], params[pi+1] = rotatePt(params[pi], params[pi+1], cos, sin, c)
		case SegCubic:
			for j := 0; j < 6; j += 2 {
				params[pi+j], params[pi+j+1] = rotatePt(params[pi+j], params[pi+j+1], cos, sin, c)
			}
		case SegQuad:
			for j := 0; j < 4; j += 2 {
				params[pi+j], params[pi+j+1] = rotatePt(params[pi+j], params[pi+j+1], cos, sin, c)
			}
		case SegArc:
			params[pi+2] += angle
			params[pi+5], params[pi+6] = rotatePt(params[pi+5], params[pi+6], cos, sin, c)
		}
		pi += n
	}
}

// UnionBoundingBox returns the union of the listed objects' bounds, or
// false when none of the ids resolves.
func UnionBoundingBox(s *Storage, ids []ID) (gfx.BoundingBox, bool) {
	var b gfx.BoundingBox
	found := false
	for _, id := range ids {
		ob, ok := s.BoundingBoxOf(id)
		if !ok {
			continue
		}
		if !found {
			b = ob
			found = true
			continue
		}
		b = b.ExpandBox(ob)
	}
	return b, found
}

// DistancesToPoint returns the distance from each object's bounding-box
// center to p, in the order of ids. Invalid ids yield NaN.
func DistancesToPoint(s *Storage, ids []ID, p gfx.Point) []float32 {
	out := make([]float32, len(ids))
	for i, id := range ids {
		b, ok := s.BoundingBoxOf(id)
		if !ok {
			out[i] = float32(math.NaN())
			continue
		}
		out[i] = b.Center().Distance(p)
	}
	return out
}

// CollisionPair records two objects whose bounding boxes overlap.
type CollisionPair struct {
	A, B ID
}

// FindCollisions returns every pair of listed objects whose bounding boxes
// intersect, in scan order (i < j over ids).
func FindCollisions(s *Storage, ids []ID) []CollisionPair {
	type entry struct {
		id ID
		b  gfx.BoundingBox
	}
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.BoundingBoxOf(id); ok {
			entries = append(entries, entry{id, b})
		}
	}
	var out []CollisionPair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].b.Intersects(entries[j].b) {
				out = append(out, CollisionPair{A: entries[i].id, B: entries[j].id})
			}
		}
	}
	return out
}

// AlignObjectsLeft moves every object so its left edge matches the leftmost edge
// in the selection.
func AlignObjectsLeft(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return union.MinX - b.MinX, 0
	})
}

// AlignObjectsRight moves every object so its right edge matches the rightmost
// edge in the selection.
func AlignObjectsRight(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return union.MaxX - b.MaxX, 0
	})
}

// AlignObjectsTop moves every object so its top edge matches the topmost edge in
// the selection.
func AlignObjectsTop(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return 0, union.MinY - b.MinY
	})
}

// AlignObjectsBottom moves every object so its bottom edge matches the lowest
// edge in the selection.
func AlignObjectsBottom(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return 0, union.MaxY - b.MaxY
	})
}

// AlignObjectsCenterH centers every object horizontally on the selection's
// center.
func AlignObjectsCenterH(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return union.Center().X - b.Center().X, 0
	})
}

// AlignObjectsCenterV centers every object vertically on the selection's center.
func AlignObjectsCenterV(s *Storage, ids []ID) BatchStats {
	return alignEdge(s, ids, func(union, b gfx.BoundingBox) (float32, float32) {
		return 0, union.Center().Y - b.Center().Y
	})
}

func alignEdge(s *Storage, ids []ID, delta func(union, b gfx.BoundingBox) (float32, float32)) BatchStats {
	start := time.Now()
	union, ok := UnionBoundingBox(s, ids)
	if !ok {
		return finishStats(0, start)
	}
	n := 0
	for _, id := range ids {
		b, ok := s.BoundingBoxOf(id)
		if !ok {
			continue
		}
		dx, dy := delta(union, b)
		if translateOne(s, id, dx, dy) {
			n++
		}
	}
	return finishStats(n, start)
}

// DistributeHorizontally lays the objects out left to right with the given
// gap between neighboring bounding boxes. A negative spacing distributes
// the objects evenly across the selection's current horizontal span.
func DistributeHorizontally(s *Storage, ids []ID, spacing float32) BatchStats {
	return distribute(s, ids, spacing, true)
}

// DistributeVertically lays the objects out top to bottom with the given
// gap between neighboring bounding boxes. A negative spacing distributes
// the objects evenly across the selection's current vertical span.
func DistributeVertically(s *Storage, ids []ID, spacing float32) BatchStats {
	return distribute(s, ids, spacing, false)
}

func distribute(s *Storage, ids []ID, spacing float32, horizontal bool) BatchStats {
	start := time.Now()
	type entry struct {
		id ID
		b  gfx.BoundingBox
	}
	entries := make([]entry, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.BoundingBoxOf(id); ok {
			entries = append(entries, entry{id, b})
		}
	}
	if len(entries) < 2 {
		return finishStats(0, start)
	}

	lo := func(b gfx.BoundingBox) float32 {
		if horizontal {
			return b.MinX
		}
		return b.MinY
	}
	extent := func(b gfx.BoundingBox) float32 {
		if horizontal {
			return b.Width()
		}
		return b.Height()
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return lo(entries[i].b) < lo(entries[j].b)
	})

	gap := spacing
	if spacing < 0 {
		var sizes float32
		for _, e := range entries {
			sizes += extent(e.b)
		}
		first, last := entries[0].b, entries[len(entries)-1].b
		var span float32
		if horizontal {
			span = last.MaxX - first.MinX
		} else {
			span = last.MaxY - first.MinY
		}
		gap = (span - sizes) / float32(len(entries)-1)
	}

	n := 0
	cursor := lo(entries[0].b)
	for _, e := range entries {
		d := cursor - lo(e.b)
		var dx, dy float32
		if horizontal {
			dx = d
		} else {
			dy = d
		}
		if translateOne(s, e.id, dx, dy) {
			n++
		}
		cursor += extent(e.b) + gap
	}
	return finishStats(n, start)
}

// CreateGrid adds rows×cols objects of the given kind (circle or
// rectangle) in a cell grid. Rectangles fill their cell; circles are
// inscribed in it. Unsupported kinds return nil.
func CreateGrid(s *Storage, kind Kind, rows, cols int, cellWidth, cellHeight, xOffset, yOffset float32) []ID {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	var out []ID
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := xOffset + float32(c)*cellWidth
			y := yOffset + float32(r)*cellHeight
			switch kind {
			case KindCircle:
				radius := min(cellWidth, cellHeight) / 2
				out = append(out, s.AddCircle(x+cellWidth/2, y+cellHeight/2, radius))
			case KindRectangle:
				out = append(out, s.AddRectangle(x, y, cellWidth, cellHeight))
			default:
				return nil
			}
		}
	}
	return out
}

// CreateCircularPattern adds count objects of the given kind (circle or
// rectangle) evenly spaced on a circle of the given radius around
// (cx, cy). Element size is a tenth of the pattern radius. Unsupported
// kinds return nil.
func CreateCircularPattern(s *Storage, kind Kind, count int, radius, cx, cy float32) []ID {
	if count <= 0 {
		return nil
	}
	size := radius * 0.1
	var out []ID
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		switch kind {
		case KindCircle:
			out = append(out, s.AddCircle(x, y, size))
		case KindRectangle:
			out = append(out, s.AddRectangle(x-size, y-size, 2*size, 2*size))
		default:
			return nil
		}
	}
	return out
}
