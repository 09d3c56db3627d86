// Package gfx provides the geometry value types shared by the drawing
// store: colors, points, bounding boxes, affine transforms, and gradient
// definitions. All coordinates are float32 to keep packed records compact.
package gfx

import "math"

// Point represents a 2D point or vector (8 bytes).
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// DistanceSquared returns the squared distance between two points.
func (p Point) DistanceSquared(q Point) float32 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// BoundingBox is an axis-aligned min/max rectangle (16 bytes).
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float32
}

// BBox is a convenience function to create a BoundingBox.
func BBox(minX, minY, maxX, maxY float32) BoundingBox {
	return BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// BBoxAround returns the degenerate box covering a single point.
func BBoxAround(p Point) BoundingBox {
	return BoundingBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// Width returns the width of the box.
func (b BoundingBox) Width() float32 { return b.MaxX - b.MinX }

// Height returns the height of the box.
func (b BoundingBox) Height() float32 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) * 0.5, Y: (b.MinY + b.MaxY) * 0.5}
}

// Contains reports whether the point lies inside the box.
// All four edges are inclusive.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects reports whether the two boxes overlap.
// Touching edges count as intersecting.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.MaxX < other.MinX || b.MinX > other.MaxX ||
		b.MaxY < other.MinY || b.MinY > other.MaxY)
}

// ExpandPoint returns the box grown to include the point. Never shrinks.
func (b BoundingBox) ExpandPoint(p Point) BoundingBox {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// ExpandBox returns the box grown to include another box. Never shrinks.
func (b BoundingBox) ExpandBox(other BoundingBox) BoundingBox {
	if other.MinX < b.MinX {
		b.MinX = other.MinX
	}
	if other.MaxX > b.MaxX {
		b.MaxX = other.MaxX
	}
	if other.MinY < b.MinY {
		b.MinY = other.MinY
	}
	if other.MaxY > b.MaxY {
		b.MaxY = other.MaxY
	}
	return b
}

// Outset returns the box grown by margin on every side.
func (b BoundingBox) Outset(margin float32) BoundingBox {
	return BoundingBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}
