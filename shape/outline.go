package shape

import (
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/textrun/font"
	"github.com/gogpu/textrun/internal/logx"
	"github.com/gogpu/textrun/path"
)

// DrawFunc receives one outline command. pts holds exactly
// verb.NumPoints() points and is only valid during the call.
type DrawFunc func(verb path.Verb, pts []path.Point)

// Outliner extracts glyph outlines in font design units.
type Outliner interface {
	DrawGlyph(f *font.Font, id uint32, draw DrawFunc)
}

// GlyphOutliner reads outlines from the glyf, CFF and CFF2 tables, or the
// fallback outline of SVG and bitmap glyphs. Every contour is terminated
// with Close. The font's synthesis is applied: embolden grows the outline
// by Embolden*upem and slant shears it by Slant.
//
// GlyphOutliner is safe for concurrent use.
type GlyphOutliner struct{}

// NewOutliner returns the default Outliner.
func NewOutliner() *GlyphOutliner {
	return &GlyphOutliner{}
}

// DrawGlyph implements Outliner. Glyphs without outline data, such as a
// space, produce no commands. It panics if the font yields an unknown
// segment operation.
func (GlyphOutliner) DrawGlyph(f *font.Font, id uint32, draw DrawFunc) {
	var segs []gotext.Segment
	f.WithFace(func(face *gotext.Face) {
		segs = outlineSegments(face, id)
	})
	if len(segs) == 0 {
		return
	}

	syn := f.Synthesis()
	if syn.IsZero() {
		emitSegments(segs, draw)
		return
	}

	p := path.New()
	emitSegments(segs, func(v path.Verb, pts []path.Point) {
		p.Append(command(v, pts))
	})
	if syn.Embolden != 0 {
		p.Embolden(syn.Embolden * float32(f.Upem()))
	}
	if syn.Slant != 0 {
		p.Transform(path.Shear(syn.Slant))
	}
	for c := range p.Commands() {
		draw(c.Verb, c.Pts())
	}
}

func outlineSegments(face *gotext.Face, id uint32) []gotext.Segment {
	switch g := face.GlyphData(gotext.GID(id)).(type) {
	case gotext.GlyphOutline:
		return g.Segments
	case gotext.GlyphSVG:
		return g.Outline.Segments
	case gotext.GlyphBitmap:
		if g.Outline != nil {
			return g.Outline.Segments
		}
	case nil:
	default:
		logx.L().Warn("shape: glyph has no outline", "glyph", id, "kind", fmt.Sprintf("%T", g))
	}
	return nil
}

// emitSegments translates go-text segments into path commands. Contours
// start with MoveTo and are closed before the next MoveTo and at the end.
func emitSegments(segs []gotext.Segment, draw DrawFunc) {
	var buf [3]path.Point
	open := false
	for _, s := range segs {
		var verb path.Verb
		switch s.Op {
		case ot.SegmentOpMoveTo:
			if open {
				draw(path.Close, nil)
			}
			open = true
			verb = path.MoveTo
		case ot.SegmentOpLineTo:
			verb = path.LineTo
		case ot.SegmentOpQuadTo:
			verb = path.QuadTo
		case ot.SegmentOpCubeTo:
			verb = path.CubicTo
		default:
			panic(fmt.Sprintf("shape: unknown outline segment op %d", s.Op))
		}
		n := verb.NumPoints()
		for i := range n {
			buf[i] = path.Point{X: s.Args[i].X, Y: s.Args[i].Y}
		}
		draw(verb, buf[:n])
	}
	if open {
		draw(path.Close, nil)
	}
}

func command(v path.Verb, pts []path.Point) path.Command {
	c := path.Command{Verb: v}
	copy(c.Points[:], pts)
	return c
}

// GlyphPath collects the outline of one glyph into a new path.
func GlyphPath(o Outliner, f *font.Font, id uint32) *path.Path {
	p := path.New()
	o.DrawGlyph(f, id, func(v path.Verb, pts []path.Point) {
		p.Append(command(v, pts))
	})
	return p
}
