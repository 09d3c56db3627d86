package store

import (
	"math"
	"testing"

	"github.com/gogpu/sketch/gfx"
)

// populate adds one object of every kind and returns the ids keyed by kind.
func populate(t *testing.T, s *Storage) map[Kind]ID {
	t.Helper()
	ids := map[Kind]ID{
		KindCircle:    s.AddCircle(100, 100, 50),
		KindRectangle: s.AddRectangle(200, 200, 100, 80),
		KindLine:      s.AddLine(0, 0, 10, 10),
		KindEllipse:   s.AddEllipse(50, 50, 20, 10, 0),
		KindPolygon:   s.AddPolygon([]gfx.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}, true),
		KindPolyline:  s.AddPolyline([]gfx.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 0}}),
		KindArc:       s.AddArc(0, 0, 30, 0, math.Pi),
		KindText:      s.AddText(10, 20, "hello", 16, "sans-serif"),
	}
	path, err := s.AddPath("M 0 0 L 10 0 L 10 10 Z")
	if err != nil {
		t.Fatalf("AddPath: %v", err)
	}
	ids[KindPath] = path
	ids[KindGroup] = s.AddGroup([]ID{ids[KindCircle], ids[KindRectangle]})
	return ids
}

func TestIDEncoding(t *testing.T) {
	id := MakeID(KindArc, 12345)
	if id.Kind() != KindArc {
		t.Errorf("Kind() = %v, want arc", id.Kind())
	}
	if id.Index() != 12345 {
		t.Errorf("Index() = %d, want 12345", id.Index())
	}

	// Index occupies exactly the low 24 bits.
	id = MakeID(KindGroup, MaxPerKind-1)
	if id.Index() != MaxPerKind-1 {
		t.Errorf("Index() = %d, want %d", id.Index(), MaxPerKind-1)
	}
	if id.Kind() != KindGroup {
		t.Errorf("Kind() = %v, want group", id.Kind())
	}
}

func TestIDTypeSafety(t *testing.T) {
	s := New()
	ids := populate(t, s)

	// Every getter succeeds for its own kind and fails for all others.
	getters := map[Kind]func(ID) bool{
		KindCircle:    func(id ID) bool { _, ok := s.Circle(id); return ok },
		KindRectangle: func(id ID) bool { _, ok := s.Rectangle(id); return ok },
		KindLine:      func(id ID) bool { _, ok := s.Line(id); return ok },
		KindEllipse:   func(id ID) bool { _, ok := s.Ellipse(id); return ok },
		KindPolygon:   func(id ID) bool { _, ok := s.Polygon(id); return ok },
		KindPolyline:  func(id ID) bool { _, ok := s.Polyline(id); return ok },
		KindArc:       func(id ID) bool { _, ok := s.Arc(id); return ok },
		KindText:      func(id ID) bool { _, ok := s.Text(id); return ok },
		KindPath:      func(id ID) bool { _, ok := s.Path(id); return ok },
		KindGroup:     func(id ID) bool { _, ok := s.Group(id); return ok },
	}
	for kind, id := range ids {
		for gk, get := range getters {
			got := get(id)
			want := gk == kind
			if got != want {
				t.Errorf("get %v on %v id = %v, want %v", gk, kind, got, want)
			}
		}
	}

	// Out-of-range index of a valid kind.
	if _, ok := s.Circle(MakeID(KindCircle, 99)); ok {
		t.Error("Circle(out of range) should fail")
	}
}

func TestTotalObjects(t *testing.T) {
	s := New()
	populate(t, s)
	if got := s.TotalObjects(); got != 10 {
		t.Errorf("TotalObjects() = %d, want 10", got)
	}
	if s.MemoryUsage() <= 0 {
		t.Error("MemoryUsage() should be positive")
	}
}

func TestBoundingBoxExactness(t *testing.T) {
	s := New()

	circle := s.AddCircle(100, 100, 50)
	if b, _ := s.BoundingBoxOf(circle); b != gfx.BBox(50, 50, 150, 150) {
		t.Errorf("circle bbox = %v, want (50,50,150,150)", b)
	}

	rect := s.AddRectangle(200, 200, 100, 80)
	if b, _ := s.BoundingBoxOf(rect); b != gfx.BBox(200, 200, 300, 280) {
		t.Errorf("rectangle bbox = %v, want (200,200,300,280)", b)
	}

	line := s.AddLine(10, 30, 2, 5)
	if b, _ := s.BoundingBoxOf(line); b != gfx.BBox(2, 5, 10, 30) {
		t.Errorf("line bbox = %v, want (2,5,10,30)", b)
	}

	poly := s.AddPolygon([]gfx.Point{{X: 3, Y: 7}, {X: -2, Y: 4}, {X: 9, Y: -1}}, true)
	if b, _ := s.BoundingBoxOf(poly); b != gfx.BBox(-2, -1, 9, 7) {
		t.Errorf("polygon bbox = %v, want (-2,-1,9,7)", b)
	}
}

func TestConservativeBoundingBoxes(t *testing.T) {
	s := New()

	// Rotated ellipse: bounds use the larger radius on both axes.
	e := s.AddEllipse(0, 0, 20, 10, 1.0)
	if b, _ := s.BoundingBoxOf(e); b != gfx.BBox(-20, -20, 20, 20) {
		t.Errorf("ellipse bbox = %v, want (-20,-20,20,20)", b)
	}

	// Arc: bounds of the full circle.
	a := s.AddArc(5, 5, 10, 0, 1)
	if b, _ := s.BoundingBoxOf(a); b != gfx.BBox(-5, -5, 15, 15) {
		t.Errorf("arc bbox = %v, want (-5,-5,15,15)", b)
	}
}

func TestGroupBoundingBox(t *testing.T) {
	s := New()
	c := s.AddCircle(100, 100, 50)
	r := s.AddRectangle(200, 200, 100, 80)
	inner := s.AddGroup([]ID{c})
	outer := s.AddGroup([]ID{inner, r})

	b, ok := s.BoundingBoxOf(outer)
	if !ok {
		t.Fatal("group bbox not found")
	}
	if b != gfx.BBox(50, 50, 300, 280) {
		t.Errorf("nested group bbox = %v, want (50,50,300,280)", b)
	}
}

func TestBatchStyleSetters(t *testing.T) {
	s := New()
	ids := populate(t, s)

	all := make([]ID, 0, len(ids))
	for _, id := range ids {
		all = append(all, id)
	}
	// Invalid ids are skipped silently.
	all = append(all, MakeID(KindCircle, 999), ID(0xFF000001))

	red := gfx.RGB(255, 0, 0)
	s.SetFillColor(all, red)
	s.SetStrokeColor(all, gfx.RGB(0, 0, 255))
	s.SetOpacity(all, 2.5) // clamps to 1

	for kind, id := range ids {
		h, ok := s.Header(id)
		if !ok {
			t.Fatalf("Header(%v) missing", kind)
		}
		if h.Fill != red {
			t.Errorf("%v fill = %v, want red", kind, h.Fill)
		}
		if !h.Flags.Has(FlagHasStroke) {
			t.Errorf("%v missing HasStroke after SetStrokeColor", kind)
		}
		if h.Opacity != 1 {
			t.Errorf("%v opacity = %v, want 1", kind, h.Opacity)
		}
	}

	s.SetOpacity(all, -3)
	if h, _ := s.Header(ids[KindCircle]); h.Opacity != 0 {
		t.Errorf("opacity = %v, want clamp to 0", h.Opacity)
	}
}

func TestNamesAndMetadata(t *testing.T) {
	s := New()
	c := s.AddCircle(0, 0, 1)
	r := s.AddRectangle(0, 0, 1, 1)

	if _, ok := s.Name(c); ok {
		t.Error("fresh object should have no name")
	}
	if !s.SetName(c, "sun") {
		t.Fatal("SetName failed")
	}
	if name, ok := s.Name(c); !ok || name != "sun" {
		t.Errorf("Name = %q, %v; want sun", name, ok)
	}

	if !s.SetMetadata(c, "author", "ada") {
		t.Fatal("SetMetadata failed")
	}
	s.SetMetadata(c, "tag", "warm")
	s.SetMetadata(r, "author", "grace")
	// Replacing an existing key updates in place.
	s.SetMetadata(c, "author", "lovelace")

	if v, ok := s.Metadata(c, "author"); !ok || v != "lovelace" {
		t.Errorf("Metadata(author) = %q, %v", v, ok)
	}
	if v, ok := s.Metadata(r, "author"); !ok || v != "grace" {
		t.Errorf("other object Metadata(author) = %q, %v", v, ok)
	}
	if _, ok := s.Metadata(c, "missing"); ok {
		t.Error("missing key should not resolve")
	}

	all := s.AllMetadata(c)
	if len(all) != 2 || all["author"] != "lovelace" || all["tag"] != "warm" {
		t.Errorf("AllMetadata = %v", all)
	}

	h, _ := s.Header(c)
	if !h.Flags.Has(FlagHasMetadata) {
		t.Error("HasMetadata flag not set")
	}
}

func TestGradientsAndPatterns(t *testing.T) {
	s := New()
	c := s.AddCircle(0, 0, 1)

	stops := []gfx.GradientStop{
		{Offset: 0, Color: gfx.Black},
		{Offset: 1, Color: gfx.White},
	}
	lin := s.AddLinearGradient(stops, float32(math.Pi/4))
	rad := s.AddRadialGradient(stops, 5, 5, 10)
	if lin == 0 || rad == 0 || lin == rad {
		t.Fatalf("gradient ids = %d, %d", lin, rad)
	}

	g, ok := s.Gradient(rad)
	if !ok {
		t.Fatal("Gradient(rad) missing")
	}
	if g.Kind != gfx.GradientRadial || g.Radius != 10 {
		t.Errorf("radial gradient = %+v", g)
	}
	if got := s.GradientStops(g); len(got) != 2 || got[1].Offset != 1 {
		t.Errorf("GradientStops = %v", got)
	}

	if !s.SetGradient(c, lin) {
		t.Fatal("SetGradient failed")
	}
	h, _ := s.Header(c)
	if h.GradientID != lin || !h.Flags.Has(FlagHasGradient) {
		t.Errorf("header after SetGradient = %+v", h)
	}
	if s.SetGradient(c, 99) {
		t.Error("SetGradient with unknown id should fail")
	}

	pid := s.AddPattern("hatch")
	if name, ok := s.Pattern(pid); !ok || name != "hatch" {
		t.Errorf("Pattern = %q, %v", name, ok)
	}
	if !s.SetPattern(c, pid) {
		t.Error("SetPattern failed")
	}
}

func TestFontInterning(t *testing.T) {
	s := New()
	a := s.AddText(0, 0, "a", 12, "mono")
	b := s.AddText(0, 0, "b", 12, "mono")
	c := s.AddText(0, 0, "c", 12, "serif")

	ta, _ := s.Text(a)
	tb, _ := s.Text(b)
	tc, _ := s.Text(c)
	if ta.FontIndex != tb.FontIndex {
		t.Error("same font name should share an index")
	}
	if ta.FontIndex == tc.FontIndex {
		t.Error("different font names should not share an index")
	}
	if s.FontName(tc) != "serif" {
		t.Errorf("FontName = %q", s.FontName(tc))
	}
}

func TestTextBoundingBox(t *testing.T) {
	s := New()
	id := s.AddText(100, 100, "abcd", 10, "sans")
	txt, _ := s.Text(id)

	boxNear := func(t *testing.T, got, want gfx.BoundingBox) {
		t.Helper()
		if !near(got.MinX, want.MinX) || !near(got.MinY, want.MinY) ||
			!near(got.MaxX, want.MaxX) || !near(got.MaxY, want.MaxY) {
			t.Errorf("bbox = %v, want %v", got, want)
		}
	}

	// Left + alphabetic: width 0.6*10*4 = 24, height 10, top at y-8.
	b, _ := s.BoundingBoxOf(id)
	boxNear(t, b, gfx.BBox(100, 92, 124, 102))

	txt.Align = AlignCenter
	txt.Baseline = BaselineMiddle
	b, _ = s.BoundingBoxOf(id)
	boxNear(t, b, gfx.BBox(88, 95, 112, 105))
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	ids := populate(t, s)
	s.SetName(ids[KindCircle], "sun")
	s.SetMetadata(ids[KindCircle], "k", "v")
	s.AddLinearGradient([]gfx.GradientStop{{Offset: 0, Color: gfx.Black}}, 0)

	restored := FromSnapshot(s.Snapshot())
	if restored.TotalObjects() != s.TotalObjects() {
		t.Fatalf("TotalObjects = %d, want %d", restored.TotalObjects(), s.TotalObjects())
	}
	c, ok := restored.Circle(ids[KindCircle])
	if !ok || c.X != 100 || c.Radius != 50 {
		t.Errorf("restored circle = %+v, %v", c, ok)
	}
	if name, ok := restored.Name(ids[KindCircle]); !ok || name != "sun" {
		t.Errorf("restored name = %q, %v", name, ok)
	}
	if v, ok := restored.Metadata(ids[KindCircle], "k"); !ok || v != "v" {
		t.Errorf("restored metadata = %q, %v", v, ok)
	}
}
