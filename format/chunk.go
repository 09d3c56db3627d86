// Package format implements serialization for drawings: a versioned,
// chunked binary format that mirrors the storage arrays exactly, file
// helpers with atomic replace and optional s2 compression, and a one-way
// JSON export.
package format

import "errors"

// Magic identifies a drawing file: "DRWG" read as a big-endian u32.
const Magic uint32 = 0x44525747

// Version is the current format version. Version 2 encodes every field
// explicitly in little-endian order, so files are portable across
// architectures; version 1 raw struct dumps are not accepted.
const Version uint32 = 2

// ChunkType tags one section of the file. Each chunk mirrors one storage
// array (or the drawing header / a layer).
type ChunkType uint16

const (
	ChunkHeader         ChunkType = 1
	ChunkLayer          ChunkType = 2
	ChunkCircles        ChunkType = 3
	ChunkRectangles     ChunkType = 4
	ChunkLines          ChunkType = 5
	ChunkPolygons       ChunkType = 6
	ChunkPolygonPoints  ChunkType = 7
	ChunkEllipses       ChunkType = 8
	ChunkPolylines      ChunkType = 9
	ChunkPolylinePoints ChunkType = 10
	ChunkArcs           ChunkType = 11
	ChunkTexts          ChunkType = 12
	ChunkTextStrings    ChunkType = 13
	ChunkFontNames      ChunkType = 14
	ChunkPaths          ChunkType = 15
	ChunkPathSegments   ChunkType = 16
	ChunkPathParameters ChunkType = 17
	ChunkGroups         ChunkType = 18
	ChunkGroupChildren  ChunkType = 19
	ChunkGradients      ChunkType = 20
	ChunkGradientStops  ChunkType = 21
	ChunkPatterns       ChunkType = 22
	ChunkObjectNames    ChunkType = 23
	ChunkMetadata       ChunkType = 24
	ChunkMetadataKeys   ChunkType = 25
	ChunkMetadataValues ChunkType = 26
	ChunkEnd            ChunkType = 999
)

// Sanity ceilings applied to every serialized count before allocation,
// guarding against corrupt or hostile length fields.
const (
	maxElements  = 10_000_000
	maxStringLen = 1_000_000
)

var (
	// ErrInvalidMagic reports a stream that does not start with Magic.
	ErrInvalidMagic = errors.New("format: invalid magic")
	// ErrInvalidVersion reports a version other than Version. There is no
	// forward or backward compatibility.
	ErrInvalidVersion = errors.New("format: unsupported version")
	// ErrCorrupt reports a malformed stream: truncation, an unknown chunk
	// type, or inconsistent counts.
	ErrCorrupt = errors.New("format: corrupt stream")
	// ErrTooLarge reports a count field beyond the sanity ceiling.
	ErrTooLarge = errors.New("format: count exceeds sanity limit")
)
