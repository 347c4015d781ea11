package font

import "fmt"

// Standard weight and width values.
const (
	WeightNormal float32 = 400
	WeightMedium float32 = 500
	WeightBold   float32 = 700
	WidthNormal  float32 = 100
)

// Style describes the visual variant requested for a span of text or
// provided by a font.
//
// Weight follows the CSS scale (100 to 900, 400 normal). Width is a
// percentage of normal width (50 to 200, 100 normal).
type Style struct {
	Italic bool
	Weight float32
	Width  float32
}

// DefaultStyle returns the regular style: upright, weight 400, width 100.
func DefaultStyle() Style {
	return Style{Weight: WeightNormal, Width: WidthNormal}
}

// Bold returns the upright bold style.
func Bold() Style {
	return Style{Weight: WeightBold, Width: WidthNormal}
}

// Italic returns the italic style at normal weight.
func Italic() Style {
	return Style{Italic: true, Weight: WeightNormal, Width: WidthNormal}
}

// BoldItalic returns the italic bold style.
func BoldItalic() Style {
	return Style{Italic: true, Weight: WeightBold, Width: WidthNormal}
}

// Normalize replaces a zero weight or width with the normal value, so that
// the zero Style behaves like DefaultStyle.
func (s Style) Normalize() Style {
	if s.Weight == 0 {
		s.Weight = WeightNormal
	}
	if s.Width == 0 {
		s.Width = WidthNormal
	}
	return s
}

// String returns a compact description such as "italic 700 100%".
func (s Style) String() string {
	slant := "upright"
	if s.Italic {
		slant = "italic"
	}
	return fmt.Sprintf("%s %g %g%%", slant, s.Weight, s.Width)
}
