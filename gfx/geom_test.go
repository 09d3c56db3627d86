package gfx

import (
	"math"
	"testing"
)

func TestColorRGBA32RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    Color
	}{
		{"black", Black},
		{"white", White},
		{"transparent", Transparent},
		{"red", RGB(255, 0, 0)},
		{"translucent", RGBA(12, 34, 56, 78)},
		{"max", RGBA(255, 255, 255, 255)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRGBA32(tt.c.ToRGBA32())
			if got != tt.c {
				t.Errorf("FromRGBA32(ToRGBA32(%v)) = %v", tt.c, got)
			}
		})
	}

	// Byte order: red in the top byte.
	if got := RGB(255, 0, 0).ToRGBA32(); got != 0xFF0000FF {
		t.Errorf("red ToRGBA32() = 0x%08X, want 0xFF0000FF", got)
	}
}

func TestColorRGBA32AllChannels(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x01020304, 0x80808080, 0xFFFFFFFF, 0xDEADBEEF} {
		if got := FromRGBA32(v).ToRGBA32(); got != v {
			t.Errorf("ToRGBA32(FromRGBA32(0x%08X)) = 0x%08X", v, got)
		}
	}
}

func TestColorByName(t *testing.T) {
	c, ok := ByName("red")
	if !ok {
		t.Fatal("ByName(red) not found")
	}
	if c != RGB(255, 0, 0) {
		t.Errorf("ByName(red) = %v", c)
	}
	if _, ok := ByName("notacolor"); ok {
		t.Error("ByName(notacolor) should not resolve")
	}
}

func TestBoundingBoxContains(t *testing.T) {
	b := BBox(0, 0, 10, 10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Pt(5, 5), true},
		{"min corner", Pt(0, 0), true},
		{"max corner", Pt(10, 10), true},
		{"edge", Pt(10, 5), true},
		{"outside x", Pt(10.001, 5), false},
		{"outside y", Pt(5, -0.001), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	b := BBox(0, 0, 10, 10)
	tests := []struct {
		name  string
		other BoundingBox
		want  bool
	}{
		{"overlap", BBox(5, 5, 15, 15), true},
		{"contained", BBox(2, 2, 3, 3), true},
		{"touching edge", BBox(10, 0, 20, 10), true},
		{"touching corner", BBox(10, 10, 20, 20), true},
		{"separated x", BBox(10.5, 0, 20, 10), false},
		{"separated y", BBox(0, -5, 10, -0.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.other, got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.other.Intersects(b); got != tt.want {
				t.Errorf("reverse Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoundingBoxExpand(t *testing.T) {
	b := BBox(0, 0, 10, 10)

	got := b.ExpandPoint(Pt(20, -5))
	want := BBox(0, -5, 20, 10)
	if got != want {
		t.Errorf("ExpandPoint = %v, want %v", got, want)
	}

	// Expanding with an interior point never shrinks.
	if got := b.ExpandPoint(Pt(5, 5)); got != b {
		t.Errorf("ExpandPoint(interior) = %v, want %v", got, b)
	}

	got = b.ExpandBox(BBox(-1, 2, 5, 30))
	want = BBox(-1, 0, 10, 30)
	if got != want {
		t.Errorf("ExpandBox = %v, want %v", got, want)
	}
}

func TestBoundingBoxDimensions(t *testing.T) {
	b := BBox(10, 20, 40, 100)
	if b.Width() != 30 {
		t.Errorf("Width() = %v, want 30", b.Width())
	}
	if b.Height() != 80 {
		t.Errorf("Height() = %v, want 80", b.Height())
	}
	if c := b.Center(); c != Pt(25, 60) {
		t.Errorf("Center() = %v, want (25, 60)", c)
	}
}

func TestTransformApply(t *testing.T) {
	const eps = 1e-5

	tests := []struct {
		name string
		m    Transform2D
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 2), Pt(11, -3)},
		{"scale", Scale(2, 3), Pt(4, 5), Pt(8, 15)},
		{"rotate quarter", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"rotate half", Rotate(math.Pi), Pt(1, 0), Pt(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Apply(tt.in)
			if math.Abs(float64(got.X-tt.want.X)) > eps || math.Abs(float64(got.Y-tt.want.Y)) > eps {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformMul(t *testing.T) {
	const eps = 1e-5

	// Translate then scale, applied as scale*translate.
	m := Scale(2, 2).Mul(Translate(1, 1))
	got := m.Apply(Pt(0, 0))
	if math.Abs(float64(got.X-2)) > eps || math.Abs(float64(got.Y-2)) > eps {
		t.Errorf("composed Apply = %v, want (2, 2)", got)
	}

	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0).IsIdentity() = true")
	}
}

func TestPointDistance(t *testing.T) {
	const eps = 1e-5
	d := Pt(0, 0).Distance(Pt(3, 4))
	if math.Abs(float64(d-5)) > eps {
		t.Errorf("Distance = %v, want 5", d)
	}
	if sq := Pt(1, 1).DistanceSquared(Pt(4, 5)); sq != 25 {
		t.Errorf("DistanceSquared = %v, want 25", sq)
	}
}
