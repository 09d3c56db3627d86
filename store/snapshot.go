package store

import "github.com/gogpu/sketch/gfx"

// Snapshot is an exported view of every array in a Storage, in the order
// the binary format writes them. The slices alias the storage's arrays —
// a Snapshot borrows, it does not copy — so it must not outlive mutation
// of the Storage that produced it.
type Snapshot struct {
	Circles    []Circle
	Rectangles []Rectangle
	Lines      []Line
	Ellipses   []Ellipse
	Polygons   []Polygon
	Polylines  []Polyline
	Arcs       []Arc
	Texts      []Text
	Paths      []Path
	Groups     []Group

	PolygonPoints  []gfx.Point
	PolylinePoints []gfx.Point
	PathSegments   []SegKind
	PathParams     []float32
	GroupChildren  []ID

	TextStrings []string
	FontNames   []string
	ObjectNames []string

	Gradients     []gfx.Gradient
	GradientStops []gfx.GradientStop
	Patterns      []string

	Metadata       []MetadataEntry
	MetadataKeys   []string
	MetadataValues []string
}

// Snapshot returns a borrowed view of the storage's arrays.
func (s *Storage) Snapshot() Snapshot {
	return Snapshot{
		Circles:    s.circles,
		Rectangles: s.rectangles,
		Lines:      s.lines,
		Ellipses:   s.ellipses,
		Polygons:   s.polygons,
		Polylines:  s.polylines,
		Arcs:       s.arcs,
		Texts:      s.texts,
		Paths:      s.paths,
		Groups:     s.groups,

		PolygonPoints:  s.polygonPoints,
		PolylinePoints: s.polylinePoints,
		PathSegments:   s.pathSegments,
		PathParams:     s.pathParams,
		GroupChildren:  s.groupChildren,

		TextStrings: s.textStrings,
		FontNames:   s.fontNames,
		ObjectNames: s.objectNames,

		Gradients:     s.gradients,
		GradientStops: s.gradientStops,
		Patterns:      s.patterns,

		Metadata:       s.metadata,
		MetadataKeys:   s.metadataKeys,
		MetadataValues: s.metadataValues,
	}
}

// FromSnapshot builds a Storage that takes ownership of the snapshot's
// slices. Used by the deserializer to materialize a loaded file.
func FromSnapshot(snap Snapshot) *Storage {
	return &Storage{
		circles:    snap.Circles,
		rectangles: snap.Rectangles,
		lines:      snap.Lines,
		ellipses:   snap.Ellipses,
		polygons:   snap.Polygons,
		polylines:  snap.Polylines,
		arcs:       snap.Arcs,
		texts:      snap.Texts,
		paths:      snap.Paths,
		groups:     snap.Groups,

		polygonPoints:  snap.PolygonPoints,
		polylinePoints: snap.PolylinePoints,
		pathSegments:   snap.PathSegments,
		pathParams:     snap.PathParams,
		groupChildren:  snap.GroupChildren,

		textStrings: snap.TextStrings,
		fontNames:   snap.FontNames,
		objectNames: snap.ObjectNames,

		gradients:     snap.Gradients,
		gradientStops: snap.GradientStops,
		patterns:      snap.Patterns,

		metadata:       snap.Metadata,
		metadataKeys:   snap.MetadataKeys,
		metadataValues: snap.MetadataValues,
	}
}
