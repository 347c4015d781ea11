package textrun

import (
	"iter"

	"github.com/emirpasic/gods/lists/doublylinkedlist"

	"github.com/gogpu/textrun/bidi"
	"github.com/gogpu/textrun/font"
)

// splitRun yields maximal sub-ranges of [start, end) over which key is
// constant, with the key of each range. An empty range yields nothing.
func splitRun[T comparable](start, end int, key func(i int) T) iter.Seq2[[2]int, T] {
	return func(yield func([2]int, T) bool) {
		for i := start; i < end; {
			k := key(i)
			j := i + 1
			for j < end && key(j) == k {
				j++
			}
			if !yield([2]int{i, j}, k) {
				return
			}
			i = j
		}
	}
}

// segment splits text into font runs. Each detector run is split by
// requested style, then by the best matching font per codepoint; a
// codepoint no font covers uses font 0. Within a detector run the pieces
// are placed in visual order: right-to-left runs put each piece in front
// of the previous ones. Detector runs keep their logical order.
func segment[C font.Candidate](text []rune, styles []font.Style, runs []bidi.Run, fonts []C) []FontRun {
	out := make([]FontRun, 0, len(runs))
	acc := doublylinkedlist.New()

	for _, br := range runs {
		for styleSpan, style := range splitRun(br.Offset, br.End(), func(i int) font.Style { return styles[i] }) {
			match := func(i int) int {
				idx, _ := font.FindBestMatch(fonts, text[i], style)
				return idx
			}
			for fontSpan, idx := range splitRun(styleSpan[0], styleSpan[1], match) {
				actual := fonts[idx].Style()
				fr := FontRun{
					Offset:         fontSpan[0],
					Length:         fontSpan[1] - fontSpan[0],
					BidiLevel:      br.Level,
					Script:         br.Script,
					FontIndex:      idx,
					Style:          style,
					SyntheticBold:  style.Weight > actual.Weight,
					SyntheticSlant: style.Italic && !actual.Italic,
				}
				if br.IsRTL() {
					acc.Prepend(fr)
				} else {
					acc.Append(fr)
				}
			}
		}
		for _, v := range acc.Values() {
			out = append(out, v.(FontRun))
		}
		acc.Clear()
	}
	return out
}
