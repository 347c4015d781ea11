package textrun

import (
	"slices"

	"github.com/gogpu/textrun/font"
)

// Builder accumulates styled text and builds a Layout from it.
//
// The builder borrows its fonts: they must stay open for the lifetime of
// the builder and of every layout it builds. A Builder is not safe for
// concurrent use.
type Builder struct {
	fonts  []*font.Font
	cfg    config
	text   []rune
	styles []styleRange
}

// styleRange applies style to codepoints before end.
type styleRange struct {
	end   int
	style font.Style
}

// NewBuilder creates a builder over a fallback list of fonts. Earlier
// fonts win ties in font matching, and the first font is used for
// codepoints no font covers. It panics if fonts is empty.
func NewBuilder(fonts []*font.Font, opts ...Option) *Builder {
	if len(fonts) == 0 {
		panic("textrun: NewBuilder requires at least one font")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder{
		fonts: slices.Clone(fonts),
		cfg:   cfg,
	}
}

// Push appends text with the requested style. The zero Style is treated
// as font.DefaultStyle().
func (b *Builder) Push(text string, style font.Style) {
	b.PushRunes([]rune(text), style)
}

// PushRunes appends codepoints with the requested style.
func (b *Builder) PushRunes(text []rune, style font.Style) {
	if len(text) == 0 {
		return
	}
	b.text = append(b.text, text...)
	b.styles = append(b.styles, styleRange{end: len(b.text), style: style.Normalize()})
}

// Len returns the number of codepoints pushed since the last Build or
// Clear.
func (b *Builder) Len() int { return len(b.text) }

// Fonts returns the builder's font list.
func (b *Builder) Fonts() []*font.Font { return b.fonts }

// HasMissingGlyphs reports whether some pushed codepoint is covered by
// none of the fonts.
func (b *Builder) HasMissingGlyphs() bool {
	for _, r := range b.text {
		if !slices.ContainsFunc(b.fonts, func(f *font.Font) bool { return f.HasGlyph(r) }) {
			return true
		}
	}
	return false
}

// Clear discards pushed text, keeping fonts and options.
func (b *Builder) Clear() {
	b.text = b.text[:0]
	b.styles = b.styles[:0]
}

// Build segments the pushed text into a Layout. The builder's buffers
// move into the layout, leaving the builder empty and reusable.
func (b *Builder) Build() *Layout {
	l := &Layout{
		fonts: b.fonts,
		text:  b.text,
		cfg:   b.cfg,
	}
	styles := b.expandStyles()
	b.text, b.styles = nil, nil

	if len(l.text) == 0 {
		return l
	}

	analysis := b.cfg.detector.Detect(l.text)
	l.baseLevel = analysis.BaseLevel
	l.runs = segment(l.text, styles, analysis.Runs, l.fonts)

	Logger().Debug("textrun: built layout",
		"codepoints", len(l.text),
		"bidi_runs", len(analysis.Runs),
		"font_runs", len(l.runs),
		"base_level", l.baseLevel)
	return l
}

// expandStyles returns the requested style of every codepoint.
func (b *Builder) expandStyles() []font.Style {
	styles := make([]font.Style, len(b.text))
	start := 0
	for _, sr := range b.styles {
		for i := start; i < sr.end; i++ {
			styles[i] = sr.style
		}
		start = sr.end
	}
	return styles
}
