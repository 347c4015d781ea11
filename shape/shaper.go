// Package shape turns runs of text into positioned glyphs and glyphs into
// outlines, using the HarfBuzz port from go-text/typesetting.
//
// All positions are in font design units, so results are independent of
// any rendering size.
package shape

import (
	"math"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textrun/font"
	"github.com/gogpu/textrun/internal/cache"
	"github.com/gogpu/textrun/internal/logx"
)

// Glyph is a shaped glyph in font design units.
type Glyph struct {
	ID       uint32
	XOffset  int32
	YOffset  int32
	XAdvance int32
	YAdvance int32
	// Cluster is the index, in the whole input text, of the first
	// codepoint the glyph was shaped from.
	Cluster int
}

// Input describes one run to shape. Text is the whole buffer and serves
// as context; only [Offset, Offset+Length) produces glyphs.
type Input struct {
	Text   []rune
	Offset int
	Length int
	Font   *font.Font
	// Level is the bidi embedding level; odd levels shape right-to-left.
	Level  uint8
	Script language.Script
	// Language is a BCP 47 tag. Empty selects the process default.
	Language string
}

// Shaper converts a run into glyphs.
type Shaper interface {
	Shape(in Input) []Glyph
}

// DefaultShaperCacheLimit bounds the number of per-face shaping states a
// HarfbuzzShaper keeps.
const DefaultShaperCacheLimit = 64

// HarfbuzzShaper shapes with go-text's HarfBuzz implementation.
//
// Synthetic bold carried by the font widens every non-zero advance by
// the embolden strength; synthetic slant shifts each glyph horizontally in
// proportion to its vertical offset.
//
// HarfbuzzShaper is safe for concurrent use. The go-text shaper caches a
// font bound to the first face it sees, so one shaper is kept per face
// and only used while that face is locked. A face's shaper is dropped when
// the last handle to the font is closed.
type HarfbuzzShaper struct {
	shapers *cache.Cache[*gotext.Face, *shaping.HarfbuzzShaper]
}

// NewHarfbuzzShaper creates a HarfbuzzShaper.
func NewHarfbuzzShaper() *HarfbuzzShaper {
	s := &HarfbuzzShaper{
		shapers: cache.New[*gotext.Face, *shaping.HarfbuzzShaper](DefaultShaperCacheLimit),
	}
	s.shapers.OnEvict(func(face *gotext.Face, _ *shaping.HarfbuzzShaper) {
		logx.L().Debug("shape: dropped shaper", "upem", face.Upem())
	})
	return s
}

// Shape implements Shaper.
func (s *HarfbuzzShaper) Shape(in Input) []Glyph {
	if in.Length <= 0 || in.Font == nil {
		return nil
	}
	upem := int(in.Font.Upem())

	var out shaping.Output
	in.Font.WithFace(func(face *gotext.Face) {
		hb, _ := s.shapers.GetOrCreate(face, func() (*shaping.HarfbuzzShaper, error) {
			in.Font.OnRelease(s, func() { s.shapers.Delete(face) })
			return &shaping.HarfbuzzShaper{}, nil
		})
		out = hb.Shape(shaping.Input{
			Text:      in.Text,
			RunStart:  in.Offset,
			RunEnd:    in.Offset + in.Length,
			Direction: direction(in.Level),
			Face:      face,
			Size:      fixed.I(upem),
			Script:    in.Script,
			Language:  lang(in.Language),
		})
	})

	glyphs := make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			ID:       uint32(g.GlyphID),
			XOffset:  int32(g.XOffset.Round()),
			YOffset:  int32(g.YOffset.Round()),
			XAdvance: int32(g.XAdvance.Round()),
			YAdvance: int32(g.YAdvance.Round()),
			Cluster:  g.ClusterIndex,
		}
	}
	applySynthesis(glyphs, in.Font.Synthesis(), upem)
	return glyphs
}

// applySynthesis adjusts positions for synthetic bold and slant.
func applySynthesis(glyphs []Glyph, syn font.Synthesis, upem int) {
	if syn.IsZero() {
		return
	}
	grow := int32(math.Round(float64(syn.Embolden) * float64(upem)))
	for i := range glyphs {
		g := &glyphs[i]
		if grow != 0 && g.XAdvance != 0 {
			g.XAdvance += grow
		}
		if syn.Slant != 0 && g.YOffset != 0 {
			g.XOffset += int32(math.Round(float64(syn.Slant) * float64(g.YOffset)))
		}
	}
}

func direction(level uint8) di.Direction {
	if level%2 == 1 {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func lang(tag string) language.Language {
	if tag == "" {
		return language.DefaultLanguage()
	}
	return language.NewLanguage(tag)
}
