package path

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Bounds returns the control-point bounding box of the path. The box
// contains every curve, though it may be larger than the tight bounds.
// An empty path yields the zero Rect.
func (p *Path) Bounds() Rect {
	if len(p.points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: p.points[0].X, MinY: p.points[0].Y, MaxX: p.points[0].X, MaxY: p.points[0].Y}
	for _, pt := range p.points[1:] {
		r.MinX = min(r.MinX, pt.X)
		r.MinY = min(r.MinY, pt.Y)
		r.MaxX = max(r.MaxX, pt.X)
		r.MaxY = max(r.MaxY, pt.Y)
	}
	return r
}

// Area returns the signed area enclosed by the path, counting every
// contour as closed. In y-up coordinates counter-clockwise contours are
// positive. Curves are integrated exactly with Green's theorem.
func (p *Path) Area() float64 {
	var area float64
	var start, cur Point
	open := false

	for c := range p.Commands() {
		switch c.Verb {
		case MoveTo:
			if open {
				area += cross(cur, start) / 2
			}
			start, cur = c.Points[0], c.Points[0]
			open = true
		case LineTo:
			area += cross(cur, c.Points[0]) / 2
			cur = c.Points[0]
		case QuadTo:
			area += quadArea(cur, c.Points[0], c.Points[1])
			cur = c.Points[1]
		case CubicTo:
			area += cubicArea(cur, c.Points[0], c.Points[1], c.Points[2])
			cur = c.Points[2]
		case Close:
			area += cross(cur, start) / 2
			cur = start
			open = false
		}
	}
	if open {
		area += cross(cur, start) / 2
	}
	return area
}

func cross(a, b Point) float64 {
	return float64(a.X)*float64(b.Y) - float64(a.Y)*float64(b.X)
}

func quadArea(p0, p1, p2 Point) float64 {
	return (2*cross(p0, p1) + 2*cross(p1, p2) + cross(p0, p2)) / 6
}

func cubicArea(p0, p1, p2, p3 Point) float64 {
	return (6*cross(p0, p1) + 3*cross(p0, p2) + cross(p0, p3) +
		3*cross(p1, p2) + 3*cross(p1, p3) + 6*cross(p2, p3)) / 20
}
