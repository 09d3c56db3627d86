package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/sketch/gfx"
)

// SegKind is a path segment opcode. Each opcode consumes a fixed number of
// float parameters from the parameter arena.
type SegKind uint8

const (
	SegMove  SegKind = 0 // x, y
	SegLine  SegKind = 1 // x, y
	SegCubic SegKind = 2 // c1x, c1y, c2x, c2y, x, y
	SegQuad  SegKind = 3 // cx, cy, x, y
	SegArc   SegKind = 4 // rx, ry, rotation, largeArc, sweep, x, y
	SegClose SegKind = 5 // no parameters
)

// ParamCount returns the number of float parameters the opcode consumes.
func (k SegKind) ParamCount() int {
	switch k {
	case SegMove, SegLine:
		return 2
	case SegCubic:
		return 6
	case SegQuad:
		return 4
	case SegArc:
		return 7
	default:
		return 0
	}
}

// pathScanner tokenizes SVG path data: command letters and floats
// separated by whitespace or commas.
type pathScanner struct {
	data string
	pos  int
}

func (s *pathScanner) skipSeparators() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			s.pos++
			continue
		}
		return
	}
}

// peekCommand returns the next command letter without consuming it, or 0
// if the next token is not a letter.
func (s *pathScanner) peekCommand() byte {
	s.skipSeparators()
	if s.pos >= len(s.data) {
		return 0
	}
	c := s.data[s.pos]
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		return c
	}
	return 0
}

func (s *pathScanner) nextCommand() byte {
	c := s.peekCommand()
	if c != 0 {
		s.pos++
	}
	return c
}

func (s *pathScanner) done() bool {
	s.skipSeparators()
	return s.pos >= len(s.data)
}

// number consumes one float token.
func (s *pathScanner) number() (float32, error) {
	s.skipSeparators()
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	digits := false
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		digits = true
	}
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("path data: expected number at offset %d", start)
	}
	if s.pos < len(s.data) && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		expDigits := false
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			expDigits = true
		}
		if !expDigits {
			s.pos = mark
		}
	}
	v, err := strconv.ParseFloat(s.data[start:s.pos], 32)
	if err != nil {
		return 0, fmt.Errorf("path data: bad number %q: %w", s.data[start:s.pos], err)
	}
	return float32(v), nil
}

// parsePathData parses SVG path data (M, L, C, Q, A, Z and their relative
// forms, with implicit command repetition) into opcode and parameter runs.
// Relative coordinates are resolved to absolute during parsing, so the
// stored form is always absolute.
func parsePathData(data string) ([]SegKind, []float32, error) {
	var segs []SegKind
	var params []float32

	s := &pathScanner{data: data}
	var cur, start gfx.Point
	var lastCmd byte

	for !s.done() {
		cmd := s.nextCommand()
		if cmd == 0 {
			// A bare number continues the previous command; after an
			// initial M/m the continuation is an implicit L/l.
			switch lastCmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			case 0:
				return nil, nil, fmt.Errorf("path data: must start with a command letter")
			default:
				cmd = lastCmd
			}
		}
		lastCmd = cmd

		rel := cmd >= 'a'
		base := gfx.Point{}
		if rel {
			base = cur
		}

		switch cmd {
		case 'M', 'm':
			x, err := s.number()
			if err != nil {
				return nil, nil, err
			}
			y, err := s.number()
			if err != nil {
				return nil, nil, err
			}
			cur = gfx.Pt(base.X+x, base.Y+y)
			start = cur
			segs = append(segs, SegMove)
			params = append(params, cur.X, cur.Y)

		case 'L', 'l':
			x, err := s.number()
			if err != nil {
				return nil, nil, err
			}
			y, err := s.number()
			if err != nil {
				return nil, nil, err
			}
			cur = gfx.Pt(base.X+x, base.Y+y)
			segs = append(segs, SegLine)
			params = append(params, cur.X, cur.Y)

		case 'C', 'c':
			var v [6]float32
			for i := range v {
				n, err := s.number()
				if err != nil {
					return nil, nil, err
				}
				v[i] = n
			}
			cur = gfx.Pt(base.X+v[4], base.Y+v[5])
			segs = append(segs, SegCubic)
			params = append(params,
				base.X+v[0], base.Y+v[1],
				base.X+v[2], base.Y+v[3],
				cur.X, cur.Y)

		case 'Q', 'q':
			var v [4]float32
			for i := range v {
				n, err := s.number()
				if err != nil {
					return nil, nil, err
				}
				v[i] = n
			}
			cur = gfx.Pt(base.X+v[2], base.Y+v[3])
			segs = append(segs, SegQuad)
			params = append(params,
				base.X+v[0], base.Y+v[1],
				cur.X, cur.Y)

		case 'A', 'a':
			var v [7]float32
			for i := range v {
				n, err := s.number()
				if err != nil {
					return nil, nil, err
				}
				v[i] = n
			}
			cur = gfx.Pt(base.X+v[5], base.Y+v[6])
			segs = append(segs, SegArc)
			params = append(params,
				v[0], v[1], v[2], v[3], v[4],
				cur.X, cur.Y)

		case 'Z', 'z':
			cur = start
			segs = append(segs, SegClose)

		default:
			return nil, nil, fmt.Errorf("path data: unsupported command %q", cmd)
		}
	}

	return segs, params, nil
}

// emitPathData reconstructs SVG path data from opcode and parameter runs.
// The output uses absolute commands only.
func emitPathData(segs []SegKind, params []float32) string {
	var sb strings.Builder
	pi := 0
	num := func() string {
		if pi >= len(params) {
			return "0"
		}
		v := params[pi]
		pi++
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	for i, seg := range segs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch seg {
		case SegMove:
			sb.WriteString("M " + num() + " " + num())
		case SegLine:
			sb.WriteString("L " + num() + " " + num())
		case SegCubic:
			sb.WriteString("C " + num() + " " + num() + " " + num() + " " + num() + " " + num() + " " + num())
		case SegQuad:
			sb.WriteString("Q " + num() + " " + num() + " " + num() + " " + num())
		case SegArc:
			sb.WriteString("A " + num() + " " + num() + " " + num() + " " + num() + " " + num() + " " + num() + " " + num())
		case SegClose:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// pathBBox computes bounds over every endpoint and control point. Curves
// stay inside the convex hull of their control points, so the result is
// conservative but never an under-estimate. Arc segments contribute the
// full ellipse around the endpoint as a coarse bound.
func pathBBox(segs []SegKind, params []float32) (gfx.BoundingBox, bool) {
	var b gfx.BoundingBox
	found := false
	add := func(x, y float32) {
		p := gfx.Pt(x, y)
		if !found {
			b = gfx.BBoxAround(p)
			found = true
			return
		}
		b = b.ExpandPoint(p)
	}
	pi := 0
	for _, seg := range segs {
		n := seg.ParamCount()
		if pi+n > len(params) {
			break
		}
		v := params[pi : pi+n]
		pi += n
		switch seg {
		case SegMove, SegLine:
			add(v[0], v[1])
		case SegCubic:
			add(v[0], v[1])
			add(v[2], v[3])
			add(v[4], v[5])
		case SegQuad:
			add(v[0], v[1])
			add(v[2], v[3])
		case SegArc:
			rx, ry := v[0], v[1]
			x, y := v[5], v[6]
			add(x-rx, y-ry)
			add(x+rx, y+ry)
		}
	}
	return b, found
}
