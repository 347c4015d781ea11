// Package font provides reference-counted font handles, the style model
// used to request font variants, and the matcher that picks a fallback
// font for a codepoint.
//
// Fonts are parsed with go-text/typesetting. A *Font is a handle to a
// shared parsed face: Clone returns another handle to the same face,
// Synthesize returns one carrying synthetic bold or slant parameters, and
// each handle is released with Close. The face is freed when the last
// handle is closed.
package font

import (
	"math"
	"sync"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"

	"github.com/gogpu/textrun/internal/logx"
)

// Synthesis holds the parameters of a synthetic style variant.
// The zero value means no synthesis.
type Synthesis struct {
	// Embolden is the stroke growth as a fraction of the em size.
	Embolden float32
	// Slant is the horizontal shear applied per unit of height.
	Slant float32
}

// IsZero reports whether s applies no synthesis.
func (s Synthesis) IsZero() bool { return s.Embolden == 0 && s.Slant == 0 }

// Extents are the font-wide vertical metrics in design units.
// Descender is negative below the baseline.
type Extents struct {
	Ascender  int32
	Descender int32
	LineGap   int32
}

// face is the shared state behind every handle of one parsed font.
type face struct {
	refs atomic.Int32

	font     *gotext.Font
	style    Style
	family   string
	source   string
	coverage *coverage

	// mu guards gface, which caches glyph data and is not safe for
	// concurrent use.
	mu    sync.Mutex
	gface *gotext.Face

	// hooksMu is separate from mu so hooks can be registered while the
	// face is locked.
	hooksMu sync.Mutex
	hooks   map[any]func()
}

// Font is a handle to a parsed font face.
//
// A Font is safe for concurrent use. A handle must not be used after
// Close; doing so panics.
type Font struct {
	face   *face
	synth  Synthesis
	closed atomic.Bool
}

// newFont wraps a parsed font in a fresh shared face with one handle.
func newFont(ft *gotext.Font, source string) *Font {
	desc := ft.Describe()
	fc := &face{
		font: ft,
		style: Style{
			Italic: desc.Aspect.Style == gotext.StyleItalic,
			Weight: float32(desc.Aspect.Weight),
			Width:  float32(desc.Aspect.Stretch) * 100,
		}.Normalize(),
		family:   desc.Family,
		source:   source,
		coverage: newCoverage(),
		gface:    gotext.NewFace(ft),
	}
	fc.refs.Store(1)
	return &Font{face: fc}
}

func (f *Font) shared() *face {
	if f.closed.Load() {
		panic("font: use of released Font")
	}
	return f.face
}

// Clone returns a new handle to the same face with the same synthesis.
// The clone must be closed independently.
func (f *Font) Clone() *Font {
	fc := f.shared()
	fc.refs.Add(1)
	return &Font{face: fc, synth: f.synth}
}

// Synthesize returns a new handle to the same face that carries the given
// synthesis parameters. The returned font must be closed independently.
func (f *Font) Synthesize(s Synthesis) *Font {
	fc := f.shared()
	fc.refs.Add(1)
	logx.L().Debug("font: synthesize", "family", fc.family, "embolden", s.Embolden, "slant", s.Slant)
	return &Font{face: fc, synth: s}
}

// Close releases the handle. The shared face is freed, and its release
// hooks run, when its last handle is closed. Closing a handle twice panics.
func (f *Font) Close() {
	if f.closed.Swap(true) {
		panic("font: Font closed twice")
	}
	fc := f.face
	if fc.refs.Add(-1) != 0 {
		return
	}
	fc.mu.Lock()
	fc.gface = nil
	fc.font = nil
	fc.mu.Unlock()

	fc.hooksMu.Lock()
	hooks := fc.hooks
	fc.hooks = nil
	fc.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	logx.L().Debug("font: face released", "family", fc.family, "source", fc.source, "hooks", len(hooks))
}

// OnRelease registers fn to run once, when the last handle to the face is
// closed. A later registration under the same key replaces the earlier
// one. It may be called from inside WithFace.
func (f *Font) OnRelease(key any, fn func()) {
	fc := f.shared()
	fc.hooksMu.Lock()
	defer fc.hooksMu.Unlock()
	if fc.hooks == nil {
		fc.hooks = make(map[any]func())
	}
	fc.hooks[key] = fn
}

// SameFace reports whether f and g share the same parsed face.
func (f *Font) SameFace(g *Font) bool {
	return f != nil && g != nil && f.shared() == g.shared()
}

// HasGlyph reports whether the font's character map covers r.
// Answers are memoised per face.
func (f *Font) HasGlyph(r rune) bool {
	fc := f.shared()
	return fc.coverage.lookup(r, func(r rune) bool {
		_, ok := fc.font.NominalGlyph(r)
		return ok
	})
}

// GlyphIndex returns the nominal glyph for r from the character map.
func (f *Font) GlyphIndex(r rune) (uint32, bool) {
	gid, ok := f.shared().font.NominalGlyph(r)
	return uint32(gid), ok
}

// Style returns the style the font declares.
func (f *Font) Style() Style { return f.shared().style }

// Family returns the font family name.
func (f *Font) Family() string { return f.shared().family }

// Source returns the path or name the font was loaded from.
func (f *Font) Source() string { return f.shared().source }

// Upem returns the number of design units per em.
func (f *Font) Upem() uint16 { return f.shared().font.Upem() }

// Synthesis returns the synthesis parameters carried by this handle.
func (f *Font) Synthesis() Synthesis { return f.synth }

// HorizontalExtents returns the ascender, descender and line gap used for
// horizontal layout.
func (f *Font) HorizontalExtents() (Extents, bool) {
	var (
		ext gotext.FontExtents
		ok  bool
	)
	f.WithFace(func(gf *gotext.Face) { ext, ok = gf.FontHExtents() })
	return toExtents(ext), ok
}

// VerticalExtents returns the extents used for vertical layout.
func (f *Font) VerticalExtents() (Extents, bool) {
	var (
		ext gotext.FontExtents
		ok  bool
	)
	f.WithFace(func(gf *gotext.Face) { ext, ok = gf.FontVExtents() })
	return toExtents(ext), ok
}

// WithFace calls fn with exclusive access to the underlying go-text face.
// fn must not retain the face.
func (f *Font) WithFace(fn func(*gotext.Face)) {
	fc := f.shared()
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fn(fc.gface)
}

// Typeface returns the underlying go-text font, which is safe for
// concurrent use.
func (f *Font) Typeface() *gotext.Font { return f.shared().font }

func toExtents(e gotext.FontExtents) Extents {
	return Extents{
		Ascender:  int32(math.Round(float64(e.Ascender))),
		Descender: int32(math.Round(float64(e.Descender))),
		LineGap:   int32(math.Round(float64(e.LineGap))),
	}
}
