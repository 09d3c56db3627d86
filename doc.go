// Package sketch provides a compact, cache-friendly data store for 2D
// vector drawings.
//
// # Overview
//
// sketch represents scenes of geometric primitives (circles, rectangles,
// lines, ellipses, polygons, polylines, arcs, text, paths, and groups) in
// a structure-of-arrays layout. Objects are addressed through opaque
// 32-bit identifiers, mutated with batch transforms, queried spatially,
// and round-tripped through a chunked binary format.
//
// # Quick Start
//
//	import "github.com/gogpu/sketch"
//
//	d := sketch.NewDrawing(800, 600)
//	c := d.AddCircle(100, 100, 50)
//	r := d.AddRectangle(200, 200, 100, 80)
//
//	d.Store().SetFillColor([]store.ID{c, r}, gfx.RGB(255, 0, 0))
//	box := d.BoundingBox()
//
// # Architecture
//
// The library is organized into:
//   - sketch: the Drawing/Layer facade and logger configuration
//   - sketch/gfx: geometry value types (Color, Point, BoundingBox, Transform2D)
//   - sketch/store: the packed object storage engine
//   - sketch/format: binary and JSON serialization
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Concurrency
//
// A Drawing and its Storage have no internal locking; callers must
// serialize access. Independent Drawing instances are fully independent.
package sketch

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
