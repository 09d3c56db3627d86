package store

import (
	"math"

	"github.com/gogpu/sketch/gfx"
)

// FindInRect returns every object whose bounding box intersects rect
// (touching edges count). Results are in stable scan order: circles,
// rectangles, lines, ellipses, polygons, polylines, arcs, texts, paths,
// groups, each kind in insertion order.
func (s *Storage) FindInRect(rect gfx.BoundingBox) []ID {
	var out []ID
	scan := func(kind Kind, n int) {
		for i := 0; i < n; i++ {
			id := MakeID(kind, i)
			if b, ok := s.BoundingBoxOf(id); ok && b.Intersects(rect) {
				out = append(out, id)
			}
		}
	}
	scan(KindCircle, len(s.circles))
	scan(KindRectangle, len(s.rectangles))
	scan(KindLine, len(s.lines))
	scan(KindEllipse, len(s.ellipses))
	scan(KindPolygon, len(s.polygons))
	scan(KindPolyline, len(s.polylines))
	scan(KindArc, len(s.arcs))
	scan(KindText, len(s.texts))
	scan(KindPath, len(s.paths))
	scan(KindGroup, len(s.groups))
	return out
}

// FindAtPoint returns every object within tolerance of p, using
// kind-specific proximity tests: circle and ellipse outlines, rectangle
// edge-or-interior, clamped segment distance for lines and polylines, ring
// plus angle range for arcs, and tolerance-expanded bounding boxes for
// texts, paths, and groups. Polygons are matched only by FindInRect.
// Results follow the same stable scan order as FindInRect.
func (s *Storage) FindAtPoint(p gfx.Point, tolerance float32) []ID {
	var out []ID

	for i := range s.circles {
		c := &s.circles[i]
		if hitCircleOutline(p, gfx.Pt(c.X, c.Y), c.Radius, tolerance) {
			out = append(out, MakeID(KindCircle, i))
		}
	}
	for i := range s.rectangles {
		r := &s.rectangles[i]
		if hitRectangle(p, r.BoundingBox(), tolerance) {
			out = append(out, MakeID(KindRectangle, i))
		}
	}
	for i := range s.lines {
		l := &s.lines[i]
		if segmentDistance(p, gfx.Pt(l.X1, l.Y1), gfx.Pt(l.X2, l.Y2)) <= float64(tolerance) {
			out = append(out, MakeID(KindLine, i))
		}
	}
	for i := range s.ellipses {
		e := &s.ellipses[i]
		if hitEllipseOutline(p, e, tolerance) {
			out = append(out, MakeID(KindEllipse, i))
		}
	}
	for i := range s.polylines {
		pl := &s.polylines[i]
		if hitPolyline(p, s.PolylinePoints(pl), tolerance) {
			out = append(out, MakeID(KindPolyline, i))
		}
	}
	for i := range s.arcs {
		a := &s.arcs[i]
		if hitArc(p, a, tolerance) {
			out = append(out, MakeID(KindArc, i))
		}
	}
	hitBox := func(kind Kind, n int) {
		for i := 0; i < n; i++ {
			id := MakeID(kind, i)
			if b, ok := s.BoundingBoxOf(id); ok && b.Outset(tolerance).Contains(p) {
				out = append(out, id)
			}
		}
	}
	hitBox(KindText, len(s.texts))
	hitBox(KindPath, len(s.paths))
	hitBox(KindGroup, len(s.groups))
	return out
}

// hitCircleOutline tests the circle's outline ring, not its interior.
// When radius <= tolerance the inner bound clamps to zero and the whole
// disc matches.
func hitCircleOutline(p, center gfx.Point, radius, tolerance float32) bool {
	d := p.Distance(center)
	inner := max(radius-tolerance, 0)
	return d >= inner && d <= radius+tolerance
}

// hitRectangle matches points inside the rectangle outright and points
// within tolerance of its boundary.
func hitRectangle(p gfx.Point, box gfx.BoundingBox, tolerance float32) bool {
	if box.Contains(p) {
		return true
	}
	dx := math.Max(math.Max(float64(box.MinX-p.X), 0), float64(p.X-box.MaxX))
	dy := math.Max(math.Max(float64(box.MinY-p.Y), 0), float64(p.Y-box.MaxY))
	return math.Sqrt(dx*dx+dy*dy) <= float64(tolerance)
}

// hitEllipseOutline transforms p into the ellipse's rotated local frame
// and tests the ring between the tolerance-shrunk and tolerance-expanded
// ellipse equations. When a radius is <= tolerance the inner test is
// skipped (degenerate outline).
func hitEllipseOutline(p gfx.Point, e *Ellipse, tolerance float32) bool {
	cos := math.Cos(-float64(e.Rotation))
	sin := math.Sin(-float64(e.Rotation))
	dx := float64(p.X - e.X)
	dy := float64(p.Y - e.Y)
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos

	rxOut := float64(e.RX + tolerance)
	ryOut := float64(e.RY + tolerance)
	if rxOut <= 0 || ryOut <= 0 {
		return false
	}
	outer := (lx*lx)/(rxOut*rxOut) + (ly*ly)/(ryOut*ryOut)
	if outer > 1 {
		return false
	}
	if e.RX <= tolerance || e.RY <= tolerance {
		return true
	}
	rxIn := float64(e.RX - tolerance)
	ryIn := float64(e.RY - tolerance)
	inner := (lx*lx)/(rxIn*rxIn) + (ly*ly)/(ryIn*ryIn)
	return inner >= 1
}

// hitArc tests the ring |distance - radius| <= tolerance and the point's
// angle against the arc's [start, end) sweep, with wraparound when the
// normalized start exceeds the normalized end. A raw sweep of a full turn
// or more covers the whole ring; normalizing it first would collapse it
// to an empty interval.
func hitArc(p gfx.Point, a *Arc, tolerance float32) bool {
	dx := float64(p.X - a.X)
	dy := float64(p.Y - a.Y)
	d := math.Sqrt(dx*dx + dy*dy)
	if math.Abs(d-float64(a.Radius)) > float64(tolerance) {
		return false
	}
	if float64(a.EndAngle)-float64(a.StartAngle) >= 2*math.Pi {
		return true
	}
	angle := normalizeAngle(math.Atan2(dy, dx))
	start := normalizeAngle(float64(a.StartAngle))
	end := normalizeAngle(float64(a.EndAngle))
	if start <= end {
		return angle >= start && angle < end
	}
	return angle >= start || angle < end
}

func hitPolyline(p gfx.Point, pts []gfx.Point, tolerance float32) bool {
	for i := 1; i < len(pts); i++ {
		if segmentDistance(p, pts[i-1], pts[i]) <= float64(tolerance) {
			return true
		}
	}
	return false
}

// segmentDistance returns the distance from p to the nearest point on the
// clamped segment ab.
func segmentDistance(p, a, b gfx.Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	px, py := float64(p.X), float64(p.Y)
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy)
}
