package textrun

import (
	"github.com/gogpu/textrun/font"
	"github.com/gogpu/textrun/path"
	"github.com/gogpu/textrun/shape"
)

// Layout is segmented text ready for shaping. It is immutable and safe
// for concurrent use as long as its fonts stay open.
type Layout struct {
	fonts     []*font.Font
	text      []rune
	runs      []FontRun
	baseLevel uint8
	cfg       config
}

// Fonts returns the fallback font list FontRun.FontIndex refers to.
func (l *Layout) Fonts() []*font.Font { return l.fonts }

// Text returns the layout's codepoints.
func (l *Layout) Text() []rune { return l.text }

// Runs returns the font runs, in visual order within each bidi run.
func (l *Layout) Runs() []FontRun { return l.runs }

// RunText returns the codepoints of run i.
func (l *Layout) RunText(i int) []rune {
	r := l.runs[i]
	return l.text[r.Offset:r.End()]
}

// ParagraphBaseLevel returns the base embedding level of the first
// paragraph: 0 for left-to-right, 1 for right-to-left.
func (l *Layout) ParagraphBaseLevel() uint8 { return l.baseLevel }

// Shape shapes every run, in run order. Runs that need synthetic bold or
// slant are shaped with a synthesized font when the corresponding
// parameter is non-zero. The whole text is passed to the shaper as
// context for each run.
func (l *Layout) Shape(params ShapeParams) []GlyphRun {
	if len(l.runs) == 0 {
		return nil
	}
	lang := params.Language
	if lang == "" {
		lang = l.cfg.language
	}

	out := make([]GlyphRun, 0, len(l.runs))
	for i, run := range l.runs {
		out = append(out, l.shapeRun(i, run, params, lang))
	}
	return out
}

func (l *Layout) shapeRun(i int, run FontRun, params ShapeParams, lang string) GlyphRun {
	f := l.fonts[run.FontIndex]

	var syn font.Synthesis
	if run.SyntheticBold && params.EmboldenStrength != 0 {
		syn.Embolden = params.EmboldenStrength
	}
	if run.SyntheticSlant && params.Slant != 0 {
		syn.Slant = params.Slant
	}
	if !syn.IsZero() {
		f = f.Synthesize(syn)
		defer f.Close()
		Logger().Debug("textrun: synthesizing run", "run", i, "embolden", syn.Embolden, "slant", syn.Slant)
	}

	gr := GlyphRun{
		FontRunIndex: i,
		Glyphs: l.cfg.shaper.Shape(shape.Input{
			Text:     l.text,
			Offset:   run.Offset,
			Length:   run.Length,
			Font:     f,
			Level:    run.BidiLevel,
			Script:   run.Script,
			Language: lang,
		}),
	}
	if params.EmitPaths {
		gr.Paths = make([]*path.Path, len(gr.Glyphs))
		for j, g := range gr.Glyphs {
			gr.Paths[j] = shape.GlyphPath(l.cfg.outliner, f, g.ID)
		}
	}
	return gr
}
