package format

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/gfx"
	"github.com/gogpu/sketch/store"
)

// jsonTimeLayout is the timestamp format stamped on every exported object.
const jsonTimeLayout = "2006-01-02T15:04:05Z"

type jsonPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type jsonStroke struct {
	Color string  `json:"color"`
	Width float32 `json:"width"`
	Style string  `json:"style"`
}

type jsonFill struct {
	Color string `json:"color"`
}

type jsonTransform struct {
	M11 float32 `json:"m11"`
	M12 float32 `json:"m12"`
	M13 float32 `json:"m13"`
	M21 float32 `json:"m21"`
	M22 float32 `json:"m22"`
	M23 float32 `json:"m23"`
}

type jsonObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`

	Center       *jsonPoint  `json:"center,omitempty"`
	Radius       *float32    `json:"radius,omitempty"`
	X            *float32    `json:"x,omitempty"`
	Y            *float32    `json:"y,omitempty"`
	Width        *float32    `json:"width,omitempty"`
	Height       *float32    `json:"height,omitempty"`
	CornerRadius *float32    `json:"corner_radius,omitempty"`
	Start        *jsonPoint  `json:"start,omitempty"`
	End          *jsonPoint  `json:"end,omitempty"`
	LineStyle    string      `json:"line_style,omitempty"`
	Points       []jsonPoint `json:"points,omitempty"`
	Closed       *bool       `json:"closed,omitempty"`
	RX           *float32    `json:"rx,omitempty"`
	RY           *float32    `json:"ry,omitempty"`
	Rotation     *float32    `json:"rotation,omitempty"`
	StartAngle   *float32    `json:"start_angle,omitempty"`
	EndAngle     *float32    `json:"end_angle,omitempty"`
	Text         *string     `json:"text,omitempty"`
	FontSize     *float32    `json:"font_size,omitempty"`
	FontFamily   string      `json:"font_family,omitempty"`
	Align        string      `json:"align,omitempty"`
	Baseline     string      `json:"baseline,omitempty"`
	D            string      `json:"d,omitempty"`
	Children     []string    `json:"children,omitempty"`
	Pivot        *jsonPoint  `json:"pivot,omitempty"`

	Stroke    *jsonStroke       `json:"stroke"`
	Fill      *jsonFill         `json:"fill"`
	Opacity   float32           `json:"opacity"`
	Transform jsonTransform     `json:"transform"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt string            `json:"created_at"`
	UpdatedAt string            `json:"updated_at"`
}

type jsonLayer struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Visible bool         `json:"visible"`
	Locked  bool         `json:"locked"`
	Opacity float32      `json:"opacity"`
	ZIndex  int          `json:"z_index"`
	Objects []jsonObject `json:"objects"`
}

type jsonDocument struct {
	Width           float32           `json:"width"`
	Height          float32           `json:"height"`
	BackgroundColor string            `json:"background_color"`
	Metadata        map[string]string `json:"metadata"`
	Layers          []jsonLayer       `json:"layers"`
}

// ExportJSON writes the drawing as an indented, human-readable JSON
// document. The export is one-way: there is no JSON loader. Object
// timestamps are the export wall-clock time, so re-exporting the same
// drawing later yields different timestamp strings.
func ExportJSON(w io.Writer, d *sketch.Drawing) error {
	now := time.Now().UTC().Format(jsonTimeLayout)
	s := d.Store()

	doc := jsonDocument{
		Width:           d.Width(),
		Height:          d.Height(),
		BackgroundColor: hexColor(d.Background()),
		Metadata:        map[string]string{},
		Layers:          make([]jsonLayer, 0, len(d.Layers())),
	}

	for z, l := range d.Layers() {
		jl := jsonLayer{
			ID:      fmt.Sprintf("layer-%d", l.ID),
			Name:    l.Name,
			Visible: l.Visible,
			Locked:  l.Locked,
			Opacity: l.Opacity,
			ZIndex:  z,
			Objects: make([]jsonObject, 0, len(l.Objects())),
		}
		for _, id := range l.Objects() {
			obj, ok := exportObject(s, id, now)
			if !ok {
				continue
			}
			jl.Objects = append(jl.Objects, obj)
		}
		doc.Layers = append(doc.Layers, jl)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("format: marshal json: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte{'\n'})
	return err
}

func exportObject(s *store.Storage, id store.ID, now string) (jsonObject, bool) {
	h, ok := s.Header(id)
	if !ok {
		return jsonObject{}, false
	}

	obj := jsonObject{
		ID:        objectIDString(id),
		Type:      id.Kind().String(),
		Opacity:   h.Opacity,
		Transform: jsonTransform{M11: 1, M22: 1},
		Metadata:  map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if name, ok := s.Name(id); ok {
		obj.Name = name
	}
	if h.Flags.Has(store.FlagHasStroke) {
		obj.Stroke = &jsonStroke{
			Color: hexColor(h.Stroke),
			Width: h.StrokeWidth,
			Style: "solid",
		}
	}
	if h.Flags.Has(store.FlagHasFill) {
		obj.Fill = &jsonFill{Color: hexColor(h.Fill)}
	}

	switch id.Kind() {
	case store.KindCircle:
		c, _ := s.Circle(id)
		obj.Center = &jsonPoint{c.X, c.Y}
		obj.Radius = ptr(c.Radius)

	case store.KindRectangle:
		r, _ := s.Rectangle(id)
		obj.X = ptr(r.X)
		obj.Y = ptr(r.Y)
		obj.Width = ptr(r.Width)
		obj.Height = ptr(r.Height)
		obj.CornerRadius = ptr(r.CornerRadius)

	case store.KindLine:
		l, _ := s.Line(id)
		obj.Start = &jsonPoint{l.X1, l.Y1}
		obj.End = &jsonPoint{l.X2, l.Y2}
		obj.LineStyle = l.Style.String()
		if obj.Stroke != nil {
			obj.Stroke.Style = l.Style.String()
		}

	case store.KindPolygon:
		p, _ := s.Polygon(id)
		obj.Points = exportPoints(s.PolygonPoints(p))
		obj.Closed = ptr(p.Closed)

	case store.KindPolyline:
		p, _ := s.Polyline(id)
		obj.Points = exportPoints(s.PolylinePoints(p))
		obj.LineStyle = p.Style.String()

	case store.KindEllipse:
		e, _ := s.Ellipse(id)
		obj.Center = &jsonPoint{e.X, e.Y}
		obj.RX = ptr(e.RX)
		obj.RY = ptr(e.RY)
		obj.Rotation = ptr(e.Rotation)

	case store.KindArc:
		a, _ := s.Arc(id)
		obj.Center = &jsonPoint{a.X, a.Y}
		obj.Radius = ptr(a.Radius)
		obj.StartAngle = ptr(a.StartAngle)
		obj.EndAngle = ptr(a.EndAngle)

	case store.KindText:
		t, _ := s.Text(id)
		obj.X = ptr(t.X)
		obj.Y = ptr(t.Y)
		obj.Text = ptr(s.TextString(t))
		obj.FontSize = ptr(t.FontSize)
		obj.FontFamily = s.FontName(t)
		obj.Align = t.Align.String()
		obj.Baseline = t.Baseline.String()

	case store.KindPath:
		p, _ := s.Path(id)
		obj.D = s.PathData(p)

	case store.KindGroup:
		g, _ := s.Group(id)
		children := s.GroupChildren(g)
		obj.Children = make([]string, len(children))
		for i, child := range children {
			obj.Children[i] = objectIDString(child)
		}
		obj.Pivot = &jsonPoint{g.PivotX, g.PivotY}
	}

	return obj, true
}

func exportPoints(pts []gfx.Point) []jsonPoint {
	out := make([]jsonPoint, len(pts))
	for i, p := range pts {
		out[i] = jsonPoint{p.X, p.Y}
	}
	return out
}

// objectIDString synthesizes a stable-looking UUID-shaped identifier from
// the 32-bit object id.
func objectIDString(id store.ID) string {
	return fmt.Sprintf("%08x-0000-0000-0000-%012x", uint32(id), uint32(id))
}

func hexColor(c gfx.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func ptr[T any](v T) *T { return &v }
