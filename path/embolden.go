package path

import "math"

// Embolden thickens the outline by strength design units: every contour
// edge moves outward by strength/2 and the result is shifted by
// (strength/2, strength/2) so the glyph keeps its left side bearing and
// baseline. Points are moved along the miter of their two adjacent edges,
// with the miter length limited on short edges and nearly reversing turns.
//
// Orientation is taken from the sign of the whole path's area so that
// counters (holes) shrink while outer contours grow.
func (p *Path) Embolden(strength float32) {
	if strength == 0 || len(p.points) == 0 {
		return
	}
	area := p.Area()
	if area == 0 {
		return
	}
	ccw := area > 0
	half := float64(strength) / 2

	shifted := make([]Point, len(p.points))
	copy(shifted, p.points)

	for _, c := range p.contours() {
		emboldenContour(p.points[c.start:c.end], shifted[c.start:c.end], half, ccw)
	}
	for i, pt := range shifted {
		shifted[i] = Point{pt.X + float32(half), pt.Y + float32(half)}
	}
	p.points = shifted
}

type span struct{ start, end int }

// contours returns the point index ranges of each contour.
func (p *Path) contours() []span {
	var out []span
	pi, start := 0, -1
	for _, v := range p.verbs {
		if v == MoveTo {
			if start >= 0 && pi > start {
				out = append(out, span{start, pi})
			}
			start = pi
		}
		pi += v.NumPoints()
		if pi > len(p.points) {
			pi = len(p.points)
			break
		}
	}
	if start >= 0 && pi > start {
		out = append(out, span{start, pi})
	}
	return out
}

func emboldenContour(src, dst []Point, half float64, ccw bool) {
	n := len(src)
	// A closing point equal to the first is shifted with it.
	if n > 1 && src[n-1] == src[0] {
		n--
		defer func() { dst[len(src)-1] = dst[0] }()
	}
	if n < 2 {
		return
	}

	for i := range n {
		prev := distinct(src[:n], i, -1)
		next := distinct(src[:n], i, +1)
		if prev < 0 || next < 0 {
			continue
		}
		inX, inY, lin := unit(src[prev], src[i])
		outX, outY, lout := unit(src[i], src[next])

		d := inX*outX + inY*outY
		if d <= -0.9375 {
			continue
		}
		d++

		// Outward normal sum: right of travel for counter-clockwise paths.
		sx, sy := inY+outY, -(inX + outX)
		q := inX*outY - inY*outX
		if !ccw {
			sx, sy = -sx, -sy
			q = -q
		}

		l := math.Min(lin, lout)
		var k float64
		if half*q <= l*d {
			k = half / d
		} else {
			k = l / q
		}
		dst[i] = Point{
			X: src[i].X + float32(sx*k),
			Y: src[i].Y + float32(sy*k),
		}
	}
}

// distinct finds the nearest point index from i in direction step, cycling,
// whose position differs from src[i]. It returns -1 if there is none.
func distinct(src []Point, i, step int) int {
	n := len(src)
	for k := 1; k < n; k++ {
		j := ((i+step*k)%n + n) % n
		if src[j] != src[i] {
			return j
		}
	}
	return -1
}

func unit(a, b Point) (x, y, length float64) {
	x, y = float64(b.X-a.X), float64(b.Y-a.Y)
	length = math.Hypot(x, y)
	return x / length, y / length, length
}
