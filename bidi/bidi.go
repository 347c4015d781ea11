// Package bidi splits text into runs of uniform bidirectional embedding
// level and script.
//
// The Unicode Bidirectional Algorithm comes from golang.org/x/text and
// script properties from go-text/typesetting. Runs are reported in logical
// order and together cover the whole input.
package bidi

import (
	"github.com/go-text/typesetting/language"
	xbidi "golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textrun/internal/logx"
)

// Run is a span of codepoints with one embedding level and one script.
// Odd levels are right-to-left.
type Run struct {
	Offset int
	Length int
	Level  uint8
	Script language.Script
}

// End returns the index one past the last codepoint of the run.
func (r Run) End() int { return r.Offset + r.Length }

// IsRTL reports whether the run is right-to-left.
func (r Run) IsRTL() bool { return r.Level%2 == 1 }

// Analysis is the result of running a Detector over a text.
type Analysis struct {
	// BaseLevel is the embedding level of the first paragraph:
	// 0 for left-to-right, 1 for right-to-left.
	BaseLevel uint8
	Runs      []Run
}

// Detector computes bidi levels and scripts.
type Detector interface {
	Detect(text []rune) Analysis
}

// Direction selects how a paragraph's base direction is chosen.
type Direction uint8

const (
	// Auto uses the first strong character, defaulting to left-to-right.
	Auto Direction = iota
	// LTR forces left-to-right paragraphs.
	LTR
	// RTL forces right-to-left paragraphs.
	RTL
)

// Option configures the default detector.
type Option func(*UnicodeDetector)

// WithDirection sets the paragraph base direction policy.
func WithDirection(d Direction) Option {
	return func(u *UnicodeDetector) {
		u.direction = d
	}
}

// UnicodeDetector is the default Detector. Each paragraph, terminated by
// a paragraph separator, is resolved independently; the separator takes
// its paragraph's base level. Within a level run, Common and Inherited
// codepoints take the script of the preceding strong codepoint, or of the
// following one at the start of the run.
//
// Levels are derived from the direction of each run x/text reports: the
// paragraph base level when the direction matches it, base+1 otherwise.
// Deeper levels are not distinguished. Text inside explicit embeddings
// (LRE, RLE, LRO, RLO, PDF) or isolates that resolves to the base
// direction gets the base level, so "abc RLE shalom abc PDF def" puts the
// inner "abc" at level 0, not 2. Numbers following right-to-left text in
// a left-to-right paragraph also keep level 0.
//
// UnicodeDetector is safe for concurrent use.
type UnicodeDetector struct {
	direction Direction
}

// NewDetector returns the default detector.
func NewDetector(opts ...Option) *UnicodeDetector {
	u := &UnicodeDetector{}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Detect implements Detector.
func (u *UnicodeDetector) Detect(text []rune) Analysis {
	var a Analysis
	if len(text) == 0 {
		return a
	}

	first := true
	for start := 0; start < len(text); {
		end := paragraphEnd(text, start)
		base := u.baseLevel(text[start:end])
		if first {
			a.BaseLevel = base
			first = false
		}
		levels := paragraphLevels(text[start:end], base)
		a.Runs = appendLevelRuns(a.Runs, text, start, levels)
		start = end
	}
	return a
}

func (u *UnicodeDetector) baseLevel(para []rune) uint8 {
	switch u.direction {
	case LTR:
		return 0
	case RTL:
		return 1
	default:
		return firstStrongLevel(para)
	}
}

// paragraphEnd returns the index after the paragraph separator that ends
// the paragraph starting at start, or len(text).
func paragraphEnd(text []rune, start int) int {
	for i := start; i < len(text); i++ {
		if class(text[i]) == xbidi.B {
			return i + 1
		}
	}
	return len(text)
}

func class(r rune) xbidi.Class {
	props, _ := xbidi.LookupRune(r)
	return props.Class()
}

// firstStrongLevel applies rules P2 and P3: the first L, R or AL
// character decides the paragraph level.
func firstStrongLevel(para []rune) uint8 {
	for _, r := range para {
		switch class(r) {
		case xbidi.L:
			return 0
		case xbidi.R, xbidi.AL:
			return 1
		}
	}
	return 0
}

// paragraphLevels resolves one embedding level per codepoint. The bidi
// engine reports direction only, so levels are reconstructed relative to
// the base: same direction as the base keeps it, the opposite one adds 1.
func paragraphLevels(para []rune, base uint8) []uint8 {
	levels := make([]uint8, len(para))
	for i := range levels {
		levels[i] = base
	}

	dir := xbidi.LeftToRight
	if base%2 == 1 {
		dir = xbidi.RightToLeft
	}

	var p xbidi.Paragraph
	// SetString stops at the separator, which keeps the base level.
	if _, err := p.SetString(string(para), xbidi.DefaultDirection(dir)); err != nil {
		logx.L().Warn("bidi: paragraph rejected", "err", err)
		return levels
	}
	order, err := p.Order()
	if err != nil {
		logx.L().Warn("bidi: ordering failed", "err", err)
		return levels
	}

	for i := range order.NumRuns() {
		run := order.Run(i)
		lo, hi := run.Pos()
		lvl := base
		if (run.Direction() == xbidi.RightToLeft) != (base%2 == 1) {
			lvl = base + 1
		}
		for j := lo; j <= hi && j < len(levels); j++ {
			levels[j] = lvl
		}
	}
	return levels
}

// appendLevelRuns groups equal levels of one paragraph into runs, split
// further at script changes.
func appendLevelRuns(runs []Run, text []rune, start int, levels []uint8) []Run {
	for i := 0; i < len(levels); {
		j := i + 1
		for j < len(levels) && levels[j] == levels[i] {
			j++
		}
		runs = appendScriptRuns(runs, text[start+i:start+j], start+i, levels[i])
		i = j
	}
	return runs
}

func appendScriptRuns(runs []Run, seg []rune, offset int, level uint8) []Run {
	scripts := resolveScripts(seg)
	begin := 0
	for i := 1; i <= len(seg); i++ {
		if i < len(seg) && scripts[i] == scripts[begin] {
			continue
		}
		runs = append(runs, Run{
			Offset: offset + begin,
			Length: i - begin,
			Level:  level,
			Script: scripts[begin],
		})
		begin = i
	}
	return runs
}

// resolveScripts assigns a script to every codepoint of a level run.
// Common and Inherited codepoints take the last strong script seen;
// leading ones take the first strong script after them. A run without
// any strong codepoint stays Common or Inherited.
func resolveScripts(seg []rune) []language.Script {
	scripts := make([]language.Script, len(seg))
	var last language.Script
	haveLast, backward := false, false

	for i, r := range seg {
		s := language.LookupScript(r)
		scripts[i] = s
		if s.Strong() {
			last, haveLast = s, true
			continue
		}
		if haveLast {
			scripts[i] = last
		} else {
			backward = true
		}
	}

	if backward {
		haveLast = false
		for i := len(scripts) - 1; i >= 0; i-- {
			if scripts[i].Strong() {
				last, haveLast = scripts[i], true
			} else if haveLast {
				scripts[i] = last
			}
		}
	}
	return scripts
}
