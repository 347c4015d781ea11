package textrun

import (
	"fmt"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/textrun/font"
	"github.com/gogpu/textrun/path"
	"github.com/gogpu/textrun/shape"
)

// FontRun is a span of codepoints shaped with one font at one bidi level
// in one script and one requested style.
type FontRun struct {
	// Offset and Length locate the run in the layout's codepoints.
	Offset int
	Length int

	BidiLevel uint8
	Script    language.Script

	// FontIndex selects the font in the layout's font list.
	FontIndex int
	// Style is the requested style.
	Style font.Style

	// SyntheticBold is set when the requested weight exceeds the font's.
	SyntheticBold bool
	// SyntheticSlant is set when italic was requested from an upright font.
	SyntheticSlant bool
}

// End returns the index one past the run's last codepoint.
func (r FontRun) End() int { return r.Offset + r.Length }

// IsRTL reports whether the run is right-to-left.
func (r FontRun) IsRTL() bool { return r.BidiLevel%2 == 1 }

func (r FontRun) String() string {
	return fmt.Sprintf("[%d,%d) level=%d script=%s font=%d style=%v",
		r.Offset, r.End(), r.BidiLevel, r.Script, r.FontIndex, r.Style)
}

// GlyphRun is the shaped form of one FontRun.
type GlyphRun struct {
	// FontRunIndex is the index of the source run in Layout.Runs.
	FontRunIndex int
	Glyphs       []shape.Glyph
	// Paths holds one outline per glyph when paths were requested,
	// and is nil otherwise.
	Paths []*path.Path
}

// ShapeParams controls Layout.Shape.
type ShapeParams struct {
	// EmboldenStrength is the synthetic bold stroke growth as a fraction
	// of the em. Zero disables synthetic bold.
	EmboldenStrength float32
	// Slant is the synthetic oblique shear. Zero disables synthetic slant.
	Slant float32
	// EmitPaths requests one outline per glyph.
	EmitPaths bool
	// Language overrides the builder's language for this call.
	Language string
}
