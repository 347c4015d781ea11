package font

// Candidate is a font the matcher can choose from.
type Candidate interface {
	HasGlyph(r rune) bool
	Style() Style
}

// Score limits. The width score dominates, then slant, then weight.
const (
	maxWidthScore  = 225
	maxWeightScore = 1000

	italicMatch    = 3
	italicMismatch = 1
)

// FindBestMatch returns the index of the font that covers r and whose
// style is closest to want. Closeness ranks width first, then slant, then
// weight, following the CSS font matching bands. Ties go to the lowest
// index. It returns false if no font covers r.
func FindBestMatch[C Candidate](fonts []C, r rune, want Style) (int, bool) {
	want = want.Normalize()
	best, bestScore := 0, 0.0
	for i, f := range fonts {
		if !f.HasGlyph(r) {
			continue
		}
		if s := Score(want, f.Style()); s > bestScore {
			best, bestScore = i, s
		}
	}
	if bestScore == 0 {
		return 0, false
	}
	return best, true
}

// Score rates how well a font with style have serves a request for want.
// Higher is better and every score is positive.
func Score(want, have Style) float64 {
	have = have.Normalize()
	return widthScore(want.Width, have.Width)*1e7 +
		italicScore(want.Italic, have.Italic)*1e4 +
		weightScore(want.Weight, have.Weight)
}

// widthScore prefers narrower fonts for condensed requests and wider
// fonts for expanded ones.
func widthScore(want, have float32) float64 {
	w, h := float64(want), float64(have)
	if w <= float64(WidthNormal) {
		if have <= want {
			return maxWidthScore - w + h
		}
		return maxWidthScore - h
	}
	if have > want {
		return maxWidthScore + w - h
	}
	return h
}

func italicScore(want, have bool) float64 {
	if want == have {
		return italicMatch
	}
	return italicMismatch
}

// weightScore implements the CSS weight fallback: below 400 look lighter
// first, 400 to 500 look up to 500 then lighter, above 500 look heavier.
func weightScore(want, have float32) float64 {
	w, h := float64(want), float64(have)
	switch {
	case w == h:
		return maxWeightScore
	case w < float64(WeightNormal):
		if h <= w {
			return maxWeightScore - w + h
		}
		return maxWeightScore - h
	case w <= float64(WeightMedium):
		if h > w && h <= float64(WeightMedium) {
			return maxWeightScore + w - h
		}
		if h < w {
			return float64(WeightMedium) + h
		}
		return maxWeightScore - h
	default:
		if h > w {
			return maxWeightScore + w - h
		}
		return h
	}
}
