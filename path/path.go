// Package path stores glyph outlines as a compact verb/point sequence.
//
// A Path holds two parallel buffers: the verbs, and the points consumed by
// those verbs in order. MoveTo and LineTo take one point, QuadTo two,
// CubicTo three and Close none. Commands walks the buffers lazily and can
// be restarted any number of times.
package path

import (
	"fmt"
	"iter"
)

// Verb is a path drawing operation.
type Verb uint8

const (
	// MoveTo starts a new contour at Points[0].
	MoveTo Verb = iota
	// LineTo draws a line to Points[0].
	LineTo
	// QuadTo draws a quadratic curve through control Points[0] to Points[1].
	QuadTo
	// CubicTo draws a cubic curve through controls Points[0] and Points[1]
	// to Points[2].
	CubicTo
	// Close closes the current contour.
	Close
)

// NumPoints returns the number of points the verb consumes.
func (v Verb) NumPoints() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Close:
		return "Close"
	default:
		return fmt.Sprintf("Verb(%d)", uint8(v))
	}
}

func (v Verb) valid() bool { return v <= Close }

// Point is a 2D point in font design units.
type Point struct {
	X, Y float32
}

// Command is one verb with its points. Only the first Verb.NumPoints
// entries of Points are meaningful.
type Command struct {
	Verb   Verb
	Points [3]Point
}

// Pts returns the meaningful points of the command.
func (c Command) Pts() []Point {
	return c.Points[:c.Verb.NumPoints()]
}

// Path is a sequence of drawing commands. The zero value is an empty path.
type Path struct {
	verbs  []Verb
	points []Point
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// MoveTo starts a new contour at (x, y).
func (p *Path) MoveTo(x, y float32) {
	p.verbs = append(p.verbs, MoveTo)
	p.points = append(p.points, Point{x, y})
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float32) {
	p.verbs = append(p.verbs, LineTo)
	p.points = append(p.points, Point{x, y})
}

// QuadTo adds a quadratic curve with control (cx, cy) ending at (x, y).
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.verbs = append(p.verbs, QuadTo)
	p.points = append(p.points, Point{cx, cy}, Point{x, y})
}

// CubicTo adds a cubic curve with controls (c1x, c1y), (c2x, c2y) ending
// at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.verbs = append(p.verbs, CubicTo)
	p.points = append(p.points, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
}

// Close closes the current contour.
func (p *Path) Close() {
	p.verbs = append(p.verbs, Close)
}

// Append adds a command, copying Verb.NumPoints points from c.Points.
// It panics if the verb is not one of the five known verbs.
func (p *Path) Append(c Command) {
	if !c.Verb.valid() {
		panic(fmt.Sprintf("path: unknown verb %d", uint8(c.Verb)))
	}
	p.verbs = append(p.verbs, c.Verb)
	p.points = append(p.points, c.Points[:c.Verb.NumPoints()]...)
}

// Commands returns an iterator over the path's commands. Each call starts
// from the beginning. Iteration stops early, without error, if the point
// buffer holds fewer points than the remaining verbs need.
func (p *Path) Commands() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		pi := 0
		for _, v := range p.verbs {
			n := v.NumPoints()
			if pi+n > len(p.points) {
				return
			}
			c := Command{Verb: v}
			copy(c.Points[:], p.points[pi:pi+n])
			pi += n
			if !yield(c) {
				return
			}
		}
	}
}

// Verbs returns the verb buffer. The slice aliases the path.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the point buffer. The slice aliases the path.
func (p *Path) Points() []Point { return p.points }

// Len returns the number of verbs.
func (p *Path) Len() int { return len(p.verbs) }

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// Reset empties the path, keeping its capacity.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	return &Path{
		verbs:  append([]Verb(nil), p.verbs...),
		points: append([]Point(nil), p.points...),
	}
}

// FromBuffers builds a path over the given buffers without validating
// them. A short point buffer truncates iteration.
func FromBuffers(verbs []Verb, points []Point) *Path {
	return &Path{verbs: verbs, points: points}
}
