package store

import (
	"github.com/gogpu/sketch/gfx"
	"golang.org/x/text/unicode/norm"
)

// TextAlign selects the horizontal anchoring of a text object.
type TextAlign uint8

const (
	AlignLeft   TextAlign = 0
	AlignCenter TextAlign = 1
	AlignRight  TextAlign = 2
)

// String returns a lowercase name for the alignment.
func (a TextAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// TextBaseline selects the vertical anchoring of a text object.
type TextBaseline uint8

const (
	BaselineTop        TextBaseline = 0
	BaselineMiddle     TextBaseline = 1
	BaselineBottom     TextBaseline = 2
	BaselineAlphabetic TextBaseline = 3
)

// String returns a lowercase name for the baseline.
func (b TextBaseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	case BaselineAlphabetic:
		return "alphabetic"
	default:
		return "unknown"
	}
}

// textWidthFactor is the assumed average glyph advance as a fraction of
// the font size. There are no real font metrics in the store; the extent
// is an estimate.
const textWidthFactor = 0.6

// textExtent estimates the bounds of a text run from its font size and
// NFC-normalized rune count, anchored at (x, y) per align and baseline.
func textExtent(text string, x, y, fontSize float32, align TextAlign, baseline TextBaseline) gfx.BoundingBox {
	runes := 0
	for range norm.NFC.String(text) {
		runes++
	}
	w := fontSize * textWidthFactor * float32(runes)
	h := fontSize

	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}

	var top float32
	switch baseline {
	case BaselineTop:
		top = y
	case BaselineMiddle:
		top = y - h/2
	case BaselineBottom:
		top = y - h
	case BaselineAlphabetic:
		top = y - 0.8*h
	}

	return gfx.BBox(x, top, x+w, top+h)
}
