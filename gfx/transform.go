package gfx

import "math"

// Transform2D represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| M11  M12  M13 |
//	| M21  M22  M23 |
//
// This represents the transformation:
//
//	x' = M11*x + M12*y + M13
//	y' = M21*x + M22*y + M23
type Transform2D struct {
	M11, M12, M13 float32
	M21, M22, M23 float32
}

// Identity returns the identity transformation matrix.
func Identity() Transform2D {
	return Transform2D{
		M11: 1, M12: 0, M13: 0,
		M21: 0, M22: 1, M23: 0,
	}
}

// Translate creates a translation matrix.
func Translate(tx, ty float32) Transform2D {
	return Transform2D{
		M11: 1, M12: 0, M13: tx,
		M21: 0, M22: 1, M23: ty,
	}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float32) Transform2D {
	return Transform2D{
		M11: sx, M12: 0, M13: 0,
		M21: 0, M22: sy, M23: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Transform2D {
	cos := float32(math.Cos(float64(angle)))
	sin := float32(math.Sin(float64(angle)))
	return Transform2D{
		M11: cos, M12: -sin, M13: 0,
		M21: sin, M22: cos, M23: 0,
	}
}

// Apply transforms a point by the matrix.
func (t Transform2D) Apply(p Point) Point {
	return Point{
		X: t.M11*p.X + t.M12*p.Y + t.M13,
		Y: t.M21*p.X + t.M22*p.Y + t.M23,
	}
}

// Mul returns the product of two transforms (t * other).
func (t Transform2D) Mul(other Transform2D) Transform2D {
	return Transform2D{
		M11: t.M11*other.M11 + t.M12*other.M21,
		M12: t.M11*other.M12 + t.M12*other.M22,
		M13: t.M11*other.M13 + t.M12*other.M23 + t.M13,
		M21: t.M21*other.M11 + t.M22*other.M21,
		M22: t.M21*other.M12 + t.M22*other.M22,
		M23: t.M21*other.M13 + t.M22*other.M23 + t.M23,
	}
}

// IsIdentity returns true if this is the identity transformation.
func (t Transform2D) IsIdentity() bool {
	return t.M11 == 1 && t.M12 == 0 && t.M13 == 0 &&
		t.M21 == 0 && t.M22 == 1 && t.M23 == 0
}
