package sketch

import (
	"errors"

	"github.com/gogpu/sketch/gfx"
	"github.com/gogpu/sketch/store"
)

// Default drawing dimensions, used when NewDrawing is given non-positive
// values.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// MaxLayers is the largest number of layers a drawing can hold; layer ids
// are single bytes stored in every object record.
const MaxLayers = 255

// ErrTooManyLayers reports an AddLayer call on a drawing that already
// holds MaxLayers layers.
var ErrTooManyLayers = errors.New("sketch: too many layers")

// Drawing is the facade over the object store: canvas dimensions, a
// background color, an ordered layer list, and the Storage holding every
// object. Add* calls route the new object into both the Storage and the
// active layer.
//
// Drawing has no internal locking; callers must serialize access.
type Drawing struct {
	width, height float32
	background    gfx.Color

	layers []*Layer
	active uint8

	storage *store.Storage
}

// NewDrawing creates a drawing with the given canvas size, a white
// background, and one default layer. Non-positive dimensions fall back to
// DefaultWidth×DefaultHeight.
func NewDrawing(width, height float32) *Drawing {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	d := &Drawing{
		width:      width,
		height:     height,
		background: gfx.White,
		storage:    store.New(),
	}
	d.layers = append(d.layers, newLayer(0, "Default"))
	return d
}

// Restore assembles a drawing from previously serialized parts. The
// drawing takes ownership of the layer list and the storage.
func Restore(width, height float32, background gfx.Color, layers []*Layer, storage *store.Storage) *Drawing {
	d := &Drawing{
		width:      width,
		height:     height,
		background: background,
		layers:     layers,
		storage:    storage,
	}
	if len(d.layers) == 0 {
		d.layers = append(d.layers, newLayer(0, "Default"))
	}
	if storage == nil {
		d.storage = store.New()
	}
	return d
}

// Width returns the canvas width.
func (d *Drawing) Width() float32 { return d.width }

// Height returns the canvas height.
func (d *Drawing) Height() float32 { return d.height }

// SetSize changes the canvas dimensions. Object coordinates are untouched.
func (d *Drawing) SetSize(width, height float32) {
	d.width = width
	d.height = height
}

// Background returns the canvas background color.
func (d *Drawing) Background() gfx.Color { return d.background }

// SetBackground sets the canvas background color.
func (d *Drawing) SetBackground(c gfx.Color) { d.background = c }

// Store exposes the underlying object storage for direct queries and
// batch operations. The storage is borrowed, never replaced.
func (d *Drawing) Store() *store.Storage { return d.storage }

// AddLayer appends a new layer and returns it. Layer ids are assigned in
// insertion order.
func (d *Drawing) AddLayer(name string) (*Layer, error) {
	if len(d.layers) >= MaxLayers {
		return nil, ErrTooManyLayers
	}
	l := newLayer(uint8(len(d.layers)), name)
	d.layers = append(d.layers, l)
	return l, nil
}

// Layer returns the layer with the given id.
func (d *Drawing) Layer(id uint8) (*Layer, bool) {
	if int(id) >= len(d.layers) {
		return nil, false
	}
	return d.layers[id], true
}

// Layers returns the ordered layer list. The slice is borrowed.
func (d *Drawing) Layers() []*Layer { return d.layers }

// SetActiveLayer selects the layer that receives subsequently added
// objects.
func (d *Drawing) SetActiveLayer(id uint8) bool {
	if int(id) >= len(d.layers) {
		return false
	}
	d.active = id
	return true
}

// ActiveLayer returns the layer currently receiving new objects.
func (d *Drawing) ActiveLayer() *Layer { return d.layers[d.active] }

// track stamps the object's layer id and records it on the active layer.
func (d *Drawing) track(id store.ID) store.ID {
	d.storage.SetLayerID(id, d.active)
	d.layers[d.active].Add(id)
	return id
}

// AddCircle adds a circle to the active layer.
func (d *Drawing) AddCircle(x, y, radius float32) store.ID {
	return d.track(d.storage.AddCircle(x, y, radius))
}

// AddRectangle adds a rectangle to the active layer.
func (d *Drawing) AddRectangle(x, y, width, height float32) store.ID {
	return d.track(d.storage.AddRectangle(x, y, width, height))
}

// AddLine adds a line segment to the active layer.
func (d *Drawing) AddLine(x1, y1, x2, y2 float32) store.ID {
	return d.track(d.storage.AddLine(x1, y1, x2, y2))
}

// AddEllipse adds an ellipse to the active layer. rotation is in radians.
func (d *Drawing) AddEllipse(x, y, rx, ry, rotation float32) store.ID {
	return d.track(d.storage.AddEllipse(x, y, rx, ry, rotation))
}

// AddPolygon adds a polygon to the active layer.
func (d *Drawing) AddPolygon(points []gfx.Point, closed bool) store.ID {
	return d.track(d.storage.AddPolygon(points, closed))
}

// AddPolyline adds a polyline to the active layer.
func (d *Drawing) AddPolyline(points []gfx.Point) store.ID {
	return d.track(d.storage.AddPolyline(points))
}

// AddArc adds a circular arc to the active layer. Angles are in radians.
func (d *Drawing) AddArc(x, y, radius, startAngle, endAngle float32) store.ID {
	return d.track(d.storage.AddArc(x, y, radius, startAngle, endAngle))
}

// AddText adds a text object to the active layer.
func (d *Drawing) AddText(x, y float32, text string, fontSize float32, font string) store.ID {
	return d.track(d.storage.AddText(x, y, text, fontSize, font))
}

// AddPath parses SVG path data and adds the path to the active layer.
func (d *Drawing) AddPath(svgData string) (store.ID, error) {
	id, err := d.storage.AddPath(svgData)
	if err != nil {
		return 0, err
	}
	return d.track(id), nil
}

// AddGroup adds a group of existing objects to the active layer.
func (d *Drawing) AddGroup(children []store.ID) store.ID {
	return d.track(d.storage.AddGroup(children))
}

// AddLinearGradient registers a linear gradient. angle is in radians.
func (d *Drawing) AddLinearGradient(stops []gfx.GradientStop, angle float32) uint16 {
	return d.storage.AddLinearGradient(stops, angle)
}

// AddRadialGradient registers a radial gradient.
func (d *Drawing) AddRadialGradient(stops []gfx.GradientStop, cx, cy, radius float32) uint16 {
	return d.storage.AddRadialGradient(stops, cx, cy, radius)
}

// SetGradient attaches a registered gradient to an object.
func (d *Drawing) SetGradient(id store.ID, gradientID uint16) bool {
	return d.storage.SetGradient(id, gradientID)
}

// AddPattern registers a named pattern.
func (d *Drawing) AddPattern(name string) uint16 {
	return d.storage.AddPattern(name)
}

// SetPattern attaches a registered pattern to an object.
func (d *Drawing) SetPattern(id store.ID, patternID uint16) bool {
	return d.storage.SetPattern(id, patternID)
}

// SetName assigns a display name to an object.
func (d *Drawing) SetName(id store.ID, name string) bool {
	return d.storage.SetName(id, name)
}

// SetMetadata attaches a key/value pair to an object.
func (d *Drawing) SetMetadata(id store.ID, key, value string) bool {
	return d.storage.SetMetadata(id, key, value)
}

// BoundingBox returns the union of the bounds of every object on visible
// layers, or a zero box for an empty drawing.
func (d *Drawing) BoundingBox() gfx.BoundingBox {
	var b gfx.BoundingBox
	found := false
	for _, l := range d.layers {
		if !l.Visible {
			continue
		}
		for _, id := range l.objects {
			ob, ok := d.storage.BoundingBoxOf(id)
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
	}
	return b
}

// TotalObjects returns the number of objects in the drawing's storage.
func (d *Drawing) TotalObjects() int { return d.storage.TotalObjects() }

// MemoryUsage estimates the bytes held by the drawing's storage arrays.
func (d *Drawing) MemoryUsage() int { return d.storage.MemoryUsage() }
