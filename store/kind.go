// Package store implements the packed object storage engine: one
// structure-of-arrays table per object kind, shared auxiliary arenas for
// variable-length payloads (points, path data, strings, group children),
// tagged 32-bit object identifiers, spatial queries, and batch transforms.
//
// Storage has no internal locking. All mutation assumes exclusive caller
// access; callers that share a Storage across goroutines must serialize
// access themselves.
package store

// Kind identifies an object kind. The kind value is embedded in the top
// byte of every ID, so the numbering is part of the on-disk format.
type Kind uint8

const (
	KindNone      Kind = 0
	KindLine      Kind = 1
	KindCircle    Kind = 2
	KindEllipse   Kind = 3
	KindRectangle Kind = 4
	KindPolygon   Kind = 5
	KindPolyline  Kind = 6
	KindArc       Kind = 7
	KindText      Kind = 8
	KindPath      Kind = 9
	KindGroup     Kind = 10
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	case KindPolyline:
		return "polyline"
	case KindArc:
		return "arc"
	case KindText:
		return "text"
	case KindPath:
		return "path"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Flags is the per-object flag bitset stored in every record header.
type Flags uint16

const (
	FlagVisible      Flags = 1 << 0
	FlagLocked       Flags = 1 << 1
	FlagSelected     Flags = 1 << 2
	FlagHasFill      Flags = 1 << 3
	FlagHasStroke    Flags = 1 << 4
	FlagHasTransform Flags = 1 << 5
	FlagHasGradient  Flags = 1 << 6
	FlagHasPattern   Flags = 1 << 7
	FlagHasMetadata  Flags = 1 << 8

	// DefaultFlags is the flag set assigned to freshly added objects.
	DefaultFlags = FlagVisible | FlagHasFill
)

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// LineStyle selects the stroke dash pattern for lines and polylines.
type LineStyle uint8

const (
	LineSolid   LineStyle = 0
	LineDashed  LineStyle = 1
	LineDotted  LineStyle = 2
	LineDashDot LineStyle = 3
)

// String returns a lowercase name for the line style.
func (s LineStyle) String() string {
	switch s {
	case LineSolid:
		return "solid"
	case LineDashed:
		return "dashed"
	case LineDotted:
		return "dotted"
	case LineDashDot:
		return "dashdot"
	default:
		return "unknown"
	}
}
